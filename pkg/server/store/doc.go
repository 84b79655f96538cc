// Package store provides storage abstractions for the Gatehouse server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - AccountsStore: Account CRUD, credential checks and role assignment
//   - RolesStore: Role CRUD and permission assignment
//   - PermissionsStore: Permission CRUD with reserved-name protection
//   - AuthzStore: Permission checks for the RBAC guard
//
// # Usage
//
//	accounts := gorm.NewAccountsStore(db)
//	account, err := accounts.FetchAccountByName("admin")
//	if err != nil {
//	    if errors.Is(err, store.ErrNotFound) {
//	        // Handle not found
//	    }
//	}
package store
