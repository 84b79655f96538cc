package gorm

import (
	"errors"

	"gorm.io/gorm"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server/store"
)

// Ensure AccountsStore implements store.AccountsStore
var _ store.AccountsStore = (*AccountsStore)(nil)

// AccountsStore implements store.AccountsStore using GORM
type AccountsStore struct {
	db *gorm.DB
}

// NewAccountsStore creates a new AccountsStore
func NewAccountsStore(db *gorm.DB) *AccountsStore {
	return &AccountsStore{db: db}
}

// ListAccounts returns all accounts with their roles preloaded
func (s *AccountsStore) ListAccounts() ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.Preload("Roles").Order("name").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// FetchAccount retrieves an account by ID with roles preloaded
func (s *AccountsStore) FetchAccount(id uint) (*model.Account, error) {
	var account model.Account
	err := s.db.Preload("Roles").First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FetchAccountByName retrieves an account by name with roles preloaded
func (s *AccountsStore) FetchAccountByName(name string) (*model.Account, error) {
	var account model.Account
	err := s.db.Preload("Roles").Where("name = ?", name).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount creates an account with a hashed password and the given roles
func (s *AccountsStore) CreateAccount(name, password string, roleIDs []uint) (*model.Account, error) {
	account := model.Account{Name: name}
	if err := account.SetPassword(password); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrDuplicateName
		}

		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		if len(roleIDs) == 0 {
			return nil
		}

		var roles []model.Role
		if err := tx.Find(&roles, roleIDs).Error; err != nil {
			return err
		}
		return tx.Model(&account).Association("Roles").Append(&roles)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ReplaceRoles replaces the account's role set with exactly roleIDs
func (s *AccountsStore) ReplaceRoles(id uint, roleIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var account model.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		roles := []model.Role{}
		if len(roleIDs) > 0 {
			if err := tx.Find(&roles, roleIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(&account).Association("Roles").Replace(&roles)
	})
}

// UpdatePassword replaces the account's password hash
func (s *AccountsStore) UpdatePassword(id uint, password string) error {
	var account model.Account
	if err := s.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	if err := account.SetPassword(password); err != nil {
		return err
	}
	return s.db.Model(&account).Update("password_hash", account.PasswordHash).Error
}

// DeleteAccount deletes an account and its role assignments
func (s *AccountsStore) DeleteAccount(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var account model.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&account).Association("Roles").Clear(); err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
}

// VerifyCredentials checks a name and password. It returns (nil, nil)
// when the name is unknown or the password doesn't match, so callers
// can't distinguish the two cases.
func (s *AccountsStore) VerifyCredentials(name, password string) (*model.Account, error) {
	account, err := s.FetchAccountByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !account.CheckPassword(password) {
		return nil, nil
	}
	return account, nil
}
