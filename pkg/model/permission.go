package model

import (
	"strings"
	"time"
)

// Permission is a named capability token. Names are stored lowercase.
type Permission struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;size:50;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default table naming.
func (Permission) TableName() string {
	return "permissions"
}

// ReservedPermissions are the permission names the system guarantees
// always exist. They cannot be deleted or renamed.
var ReservedPermissions = []string{"create", "read", "update", "delete"}

// IsReservedPermission reports whether name is one of the reserved
// system permissions. The name is normalized before comparison.
func IsReservedPermission(name string) bool {
	name = NormalizePermissionName(name)
	for _, reserved := range ReservedPermissions {
		if name == reserved {
			return true
		}
	}
	return false
}

// NormalizePermissionName lowercases and trims a permission name.
// Every path that writes or compares permission names goes through this.
func NormalizePermissionName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Reserved reports whether this permission is a reserved system
// permission.
func (p Permission) Reserved() bool {
	return IsReservedPermission(p.Name)
}
