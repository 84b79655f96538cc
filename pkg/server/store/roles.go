package store

import "gatehouse/pkg/model"

// RolesStore abstracts role storage operations
type RolesStore interface {
	// ListRoles returns all roles with their permissions preloaded,
	// ordered by name.
	ListRoles() ([]model.Role, error)

	// FetchRole retrieves a role by ID with permissions preloaded.
	// Returns ErrNotFound if the role doesn't exist.
	FetchRole(id uint) (*model.Role, error)

	// CreateRole creates a role with the given permissions.
	// Returns ErrDuplicateName if the name is taken.
	CreateRole(name, description string, permissionIDs []uint) (*model.Role, error)

	// UpdateRole updates a role's name and description.
	// Returns ErrDuplicateName if the new name is taken by another role.
	UpdateRole(id uint, name, description string) error

	// ReplacePermissions replaces the role's permission set with
	// exactly permissionIDs.
	ReplacePermissions(id uint, permissionIDs []uint) error

	// DeleteRole deletes a role, its permission assignments, and its
	// account assignments. Returns ErrNotFound if the role doesn't exist.
	DeleteRole(id uint) error
}
