package gorm

import (
	"log"

	"gorm.io/gorm"

	"gatehouse/pkg/model"
)

// DefaultAdminName is the bootstrap administrator account name.
const DefaultAdminName = "admin"

// DefaultAdminPassword is the bootstrap administrator password. It is
// meant to be changed right after the first sign-in.
const DefaultAdminPassword = "admin123"

// Seed ensures the reserved permissions exist, and on an empty database
// creates the default roles and the bootstrap administrator account.
// It is safe to run on every startup.
func Seed(db *gorm.DB) error {
	if err := EnsureReservedPermissions(db); err != nil {
		return err
	}

	var roleCount int64
	if err := db.Model(&model.Role{}).Count(&roleCount).Error; err != nil {
		return err
	}
	if roleCount > 0 {
		return nil
	}

	log.Println("INFO: empty database, seeding default roles and admin account")
	return seedDefaults(db)
}

// EnsureReservedPermissions inserts the reserved permissions if missing.
func EnsureReservedPermissions(db *gorm.DB) error {
	descriptions := map[string]string{
		"create": "Create new records",
		"read":   "View records",
		"update": "Modify existing records",
		"delete": "Remove records",
	}
	for _, name := range model.ReservedPermissions {
		err := db.Exec(
			`INSERT INTO permissions (name, description, created_at, updated_at)
			 VALUES (?, ?, now(), now()) ON CONFLICT (name) DO NOTHING`,
			name, descriptions[name],
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDefaults(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var permissions []model.Permission
		if err := tx.Where("name IN ?", model.ReservedPermissions).Find(&permissions).Error; err != nil {
			return err
		}

		byName := make(map[string]model.Permission, len(permissions))
		for _, p := range permissions {
			byName[p.Name] = p
		}
		pick := func(names ...string) []model.Permission {
			picked := make([]model.Permission, 0, len(names))
			for _, n := range names {
				if p, ok := byName[n]; ok {
					picked = append(picked, p)
				}
			}
			return picked
		}

		roles := []model.Role{
			{
				Name:        "administrator",
				Description: "Full access to all records and settings",
				Permissions: pick("create", "read", "update", "delete"),
			},
			{
				Name:        "editor",
				Description: "Can create, view and modify records",
				Permissions: pick("create", "read", "update"),
			},
			{
				Name:        "reader",
				Description: "Read-only access to records",
				Permissions: pick("read"),
			},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return err
		}

		admin := model.Account{Name: DefaultAdminName}
		if err := admin.SetPassword(DefaultAdminPassword); err != nil {
			return err
		}
		admin.Roles = roles[:1]
		return tx.Create(&admin).Error
	})
}
