package store

// AuthzStore abstracts authorization checks
type AuthzStore interface {
	// HasPermission checks if an account holds a permission through
	// any of its roles.
	HasPermission(accountID uint, permission string) bool

	// EffectivePermissions returns the distinct permission names an
	// account holds through its roles, ordered by name.
	EffectivePermissions(accountID uint) ([]string, error)
}
