package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is an identity that can sign in and hold roles.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"unique;size:50;not null"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Roles        []Role `gorm:"many2many:account_roles;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default table naming.
func (Account) TableName() string {
	return "accounts"
}

// SetPassword replaces the stored credential with a bcrypt hash of the
// given plaintext. The plaintext is never persisted.
func (a *Account) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// bcrypt's comparison is safe against timing attacks.
func (a *Account) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)) == nil
}

// RoleNames returns the names of the account's roles, in load order.
// Roles must have been preloaded.
func (a *Account) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		names = append(names, role.Name)
	}
	return names
}
