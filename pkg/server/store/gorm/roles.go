package gorm

import (
	"errors"

	"gorm.io/gorm"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

// ListRoles returns all roles with their permissions preloaded
func (s *RolesStore) ListRoles() ([]model.Role, error) {
	var roles []model.Role
	err := s.db.Preload("Permissions").Order("name").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// FetchRole retrieves a role by ID with permissions preloaded
func (s *RolesStore) FetchRole(id uint) (*model.Role, error) {
	var role model.Role
	err := s.db.Preload("Permissions").First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole creates a role with the given permissions
func (s *RolesStore) CreateRole(name, description string, permissionIDs []uint) (*model.Role, error) {
	role := model.Role{Name: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrDuplicateName
		}

		if err := tx.Create(&role).Error; err != nil {
			return err
		}

		if len(permissionIDs) == 0 {
			return nil
		}

		var permissions []model.Permission
		if err := tx.Find(&permissions, permissionIDs).Error; err != nil {
			return err
		}
		return tx.Model(&role).Association("Permissions").Append(&permissions)
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole updates a role's name and description
func (s *RolesStore) UpdateRole(id uint, name, description string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.First(&role, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.Role{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrDuplicateName
		}

		return tx.Model(&role).Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
	})
}

// ReplacePermissions replaces the role's permission set with exactly permissionIDs
func (s *RolesStore) ReplacePermissions(id uint, permissionIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.First(&role, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		permissions := []model.Permission{}
		if len(permissionIDs) > 0 {
			if err := tx.Find(&permissions, permissionIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(&role).Association("Permissions").Replace(&permissions)
	})
}

// DeleteRole deletes a role, its permission assignments, and its account assignments
func (s *RolesStore) DeleteRole(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.First(&role, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&role).Association("Permissions").Clear(); err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM account_roles WHERE role_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
}
