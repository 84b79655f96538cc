package gorm

import (
	"errors"

	"gorm.io/gorm"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// ListPermissions returns all permissions ordered by name
func (s *PermissionsStore) ListPermissions() ([]model.Permission, error) {
	var permissions []model.Permission
	err := s.db.Order("name").Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// FetchPermission retrieves a permission by ID
func (s *PermissionsStore) FetchPermission(id uint) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.First(&permission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// CreatePermission creates a permission with a normalized name
func (s *PermissionsStore) CreatePermission(name, description string) (*model.Permission, error) {
	permission := model.Permission{
		Name:        model.NormalizePermissionName(name),
		Description: description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Permission{}).Where("name = ?", permission.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrDuplicateName
		}
		return tx.Create(&permission).Error
	})
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// UpdatePermission updates a permission's name and description. Reserved
// permissions keep their name but may change description.
func (s *PermissionsStore) UpdatePermission(id uint, name, description string) error {
	name = model.NormalizePermissionName(name)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var permission model.Permission
		if err := tx.First(&permission, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		if permission.Reserved() && name != permission.Name {
			return store.ErrProtectedResource
		}

		var count int64
		if err := tx.Model(&model.Permission{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrDuplicateName
		}

		return tx.Model(&permission).Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
	})
}

// DeletePermission deletes a permission and its role assignments
func (s *PermissionsStore) DeletePermission(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var permission model.Permission
		if err := tx.First(&permission, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		if permission.Reserved() {
			return store.ErrProtectedResource
		}

		if err := tx.Exec(`DELETE FROM role_permissions WHERE permission_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&permission).Error
	})
}
