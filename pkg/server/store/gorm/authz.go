package gorm

import (
	"gorm.io/gorm"

	"gatehouse/pkg/server/store"
)

// Ensure AuthzStore implements store.AuthzStore
var _ store.AuthzStore = (*AuthzStore)(nil)

// AuthzStore implements store.AuthzStore using GORM
type AuthzStore struct {
	db *gorm.DB
}

// NewAuthzStore creates a new AuthzStore
func NewAuthzStore(db *gorm.DB) *AuthzStore {
	return &AuthzStore{db: db}
}

// HasPermission checks if an account holds a permission through any of its roles.
func (s *AuthzStore) HasPermission(accountID uint, permission string) bool {
	var permitted bool
	s.db.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM permissions p
			JOIN role_permissions rp ON rp.permission_id = p.id
			JOIN account_roles ar ON ar.role_id = rp.role_id
			WHERE ar.account_id = ? AND p.name = ?
		)
	`, accountID, permission).Scan(&permitted)
	return permitted
}

// EffectivePermissions returns the distinct permission names an account
// holds through its roles.
func (s *AuthzStore) EffectivePermissions(accountID uint) ([]string, error) {
	var names []string
	err := s.db.Raw(`
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN account_roles ar ON ar.role_id = rp.role_id
		WHERE ar.account_id = ?
		ORDER BY p.name
	`, accountID).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
