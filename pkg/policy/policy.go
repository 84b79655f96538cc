// Package policy loads declarative access policy documents. A policy
// document declares permissions, roles and accounts in YAML; applying
// it makes the database match the document.
package policy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"gatehouse/pkg/model"
)

// PermissionDecl declares a permission
type PermissionDecl struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// RoleDecl declares a role and its permission set
type RoleDecl struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
}

// AccountDecl declares an account and its role set. The password is
// only used when the account doesn't exist yet.
type AccountDecl struct {
	Name     string   `yaml:"name"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles"`
}

// Document is a parsed policy document
type Document struct {
	Permissions []PermissionDecl `yaml:"permissions"`
	Roles       []RoleDecl       `yaml:"roles"`
	Accounts    []AccountDecl    `yaml:"accounts"`
}

// Parse parses a policy document from YAML
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile parses a policy document from a YAML file
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks the document for empty names, duplicates and
// references to permissions or roles it doesn't declare. Referencing
// the built-in permissions is always allowed.
func (d *Document) Validate() error {
	permissions := make(map[string]bool)
	for _, name := range model.ReservedPermissions {
		permissions[name] = true
	}
	declared := make(map[string]bool)
	for _, p := range d.Permissions {
		name := model.NormalizePermissionName(p.Name)
		if name == "" {
			return fmt.Errorf("policy declares a permission with an empty name")
		}
		if declared[name] {
			return fmt.Errorf("policy declares permission %q twice", name)
		}
		declared[name] = true
		permissions[name] = true
	}

	roles := make(map[string]bool)
	for _, r := range d.Roles {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return fmt.Errorf("policy declares a role with an empty name")
		}
		if roles[name] {
			return fmt.Errorf("policy declares role %q twice", name)
		}
		roles[name] = true

		for _, p := range r.Permissions {
			if !permissions[model.NormalizePermissionName(p)] {
				return fmt.Errorf("role %q references undeclared permission %q", name, p)
			}
		}
	}

	accounts := make(map[string]bool)
	for _, a := range d.Accounts {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("policy declares an account with an empty name")
		}
		if accounts[name] {
			return fmt.Errorf("policy declares account %q twice", name)
		}
		accounts[name] = true

		for _, r := range a.Roles {
			if !roles[r] {
				return fmt.Errorf("account %q references undeclared role %q", name, r)
			}
		}
	}

	return nil
}

// Apply makes the database match the document. Declared permissions,
// roles and accounts are created if missing; role permission sets and
// account role sets are replaced with exactly what the document
// declares. Records the document doesn't mention are left alone.
func Apply(db *gorm.DB, doc *Document) error {
	return db.Transaction(func(tx *gorm.DB) error {
		permissionsByName := make(map[string]model.Permission)

		ensurePermission := func(name, description string) error {
			name = model.NormalizePermissionName(name)
			if _, ok := permissionsByName[name]; ok {
				return nil
			}
			var p model.Permission
			err := tx.Where("name = ?", name).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				p = model.Permission{Name: name, Description: description}
				err = tx.Create(&p).Error
			}
			if err != nil {
				return err
			}
			permissionsByName[name] = p
			return nil
		}

		for _, name := range model.ReservedPermissions {
			if err := ensurePermission(name, ""); err != nil {
				return err
			}
		}
		for _, decl := range doc.Permissions {
			if err := ensurePermission(decl.Name, decl.Description); err != nil {
				return err
			}
		}

		rolesByName := make(map[string]model.Role)
		for _, decl := range doc.Roles {
			var role model.Role
			err := tx.Where("name = ?", decl.Name).First(&role).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				role = model.Role{Name: decl.Name, Description: decl.Description}
				err = tx.Create(&role).Error
			}
			if err != nil {
				return err
			}

			permissions := make([]model.Permission, 0, len(decl.Permissions))
			for _, name := range decl.Permissions {
				permissions = append(permissions, permissionsByName[model.NormalizePermissionName(name)])
			}
			if err := tx.Model(&role).Association("Permissions").Replace(&permissions); err != nil {
				return err
			}
			rolesByName[decl.Name] = role
		}

		for _, decl := range doc.Accounts {
			var account model.Account
			err := tx.Where("name = ?", decl.Name).First(&account).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				account = model.Account{Name: decl.Name}
				if decl.Password == "" {
					return fmt.Errorf("new account %q needs a password", decl.Name)
				}
				if err := account.SetPassword(decl.Password); err != nil {
					return err
				}
				err = tx.Create(&account).Error
			}
			if err != nil {
				return err
			}

			roles := make([]model.Role, 0, len(decl.Roles))
			for _, name := range decl.Roles {
				roles = append(roles, rolesByName[name])
			}
			if err := tx.Model(&account).Association("Roles").Replace(&roles); err != nil {
				return err
			}
		}

		return nil
	})
}
