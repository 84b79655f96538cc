package model

import "time"

// Role is a named group of permissions. Accounts hold roles; roles hold
// permissions.
type Role struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"unique;size:50;not null"`
	Description string       `gorm:"size:255"`
	Permissions []Permission `gorm:"many2many:role_permissions;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default table naming.
func (Role) TableName() string {
	return "roles"
}

// PermissionNames returns the names of the role's permissions, in load
// order. Permissions must have been preloaded.
func (r *Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, permission := range r.Permissions {
		names = append(names, permission.Name)
	}
	return names
}
