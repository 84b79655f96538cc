package store

import "gatehouse/pkg/model"

// PermissionsStore abstracts permission storage operations
type PermissionsStore interface {
	// ListPermissions returns all permissions ordered by name.
	ListPermissions() ([]model.Permission, error)

	// FetchPermission retrieves a permission by ID.
	// Returns ErrNotFound if the permission doesn't exist.
	FetchPermission(id uint) (*model.Permission, error)

	// CreatePermission creates a permission. The name is normalized to
	// lowercase. Returns ErrDuplicateName if the name is taken.
	CreatePermission(name, description string) (*model.Permission, error)

	// UpdatePermission updates a permission's name and description.
	// Returns ErrProtectedResource when renaming a reserved permission,
	// ErrDuplicateName if the new name is taken by another permission.
	// The description of a reserved permission may still be changed.
	UpdatePermission(id uint, name, description string) error

	// DeletePermission deletes a permission and its role assignments.
	// Returns ErrProtectedResource for reserved permissions,
	// ErrNotFound if the permission doesn't exist.
	DeletePermission(id uint) error
}
