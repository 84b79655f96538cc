package store

import "gatehouse/pkg/model"

// AccountsStore abstracts account storage operations
type AccountsStore interface {
	// ListAccounts returns all accounts with their roles preloaded,
	// ordered by name.
	ListAccounts() ([]model.Account, error)

	// FetchAccount retrieves an account by ID with roles preloaded.
	// Returns ErrNotFound if the account doesn't exist.
	FetchAccount(id uint) (*model.Account, error)

	// FetchAccountByName retrieves an account by name with roles preloaded.
	// Returns ErrNotFound if the account doesn't exist.
	FetchAccountByName(name string) (*model.Account, error)

	// CreateAccount creates an account with a hashed password and the
	// given roles. Returns ErrDuplicateName if the name is taken.
	CreateAccount(name, password string, roleIDs []uint) (*model.Account, error)

	// ReplaceRoles replaces the account's role set with exactly roleIDs.
	ReplaceRoles(id uint, roleIDs []uint) error

	// UpdatePassword replaces the account's password hash.
	UpdatePassword(id uint, password string) error

	// DeleteAccount deletes an account and its role assignments.
	// Returns ErrNotFound if the account doesn't exist.
	DeleteAccount(id uint) error

	// VerifyCredentials checks a name and password. It returns the
	// matching account, or (nil, nil) when the name is unknown or the
	// password doesn't match.
	VerifyCredentials(name, password string) (*model.Account, error)
}
