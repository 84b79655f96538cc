package endpoints

import (
	"github.com/stretchr/testify/mock"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server/store"
)

// MockAccountsStore implements store.AccountsStore for testing using testify/mock
type MockAccountsStore struct {
	mock.Mock
}

func NewMockAccountsStore() *MockAccountsStore {
	return &MockAccountsStore{}
}

func (m *MockAccountsStore) ListAccounts() ([]model.Account, error) {
	args := m.Called()
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountsStore) FetchAccount(id uint) (*model.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountsStore) FetchAccountByName(name string) (*model.Account, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountsStore) CreateAccount(name, password string, roleIDs []uint) (*model.Account, error) {
	args := m.Called(name, password, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountsStore) ReplaceRoles(id uint, roleIDs []uint) error {
	args := m.Called(id, roleIDs)
	return args.Error(0)
}

func (m *MockAccountsStore) UpdatePassword(id uint, password string) error {
	args := m.Called(id, password)
	return args.Error(0)
}

func (m *MockAccountsStore) DeleteAccount(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccountsStore) VerifyCredentials(name, password string) (*model.Account, error) {
	args := m.Called(name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockRolesStore implements store.RolesStore for testing using testify/mock
type MockRolesStore struct {
	mock.Mock
}

func NewMockRolesStore() *MockRolesStore {
	return &MockRolesStore{}
}

func (m *MockRolesStore) ListRoles() ([]model.Role, error) {
	args := m.Called()
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRolesStore) FetchRole(id uint) (*model.Role, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRolesStore) CreateRole(name, description string, permissionIDs []uint) (*model.Role, error) {
	args := m.Called(name, description, permissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRolesStore) UpdateRole(id uint, name, description string) error {
	args := m.Called(id, name, description)
	return args.Error(0)
}

func (m *MockRolesStore) ReplacePermissions(id uint, permissionIDs []uint) error {
	args := m.Called(id, permissionIDs)
	return args.Error(0)
}

func (m *MockRolesStore) DeleteRole(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPermissionsStore implements store.PermissionsStore for testing using testify/mock
type MockPermissionsStore struct {
	mock.Mock
}

func NewMockPermissionsStore() *MockPermissionsStore {
	return &MockPermissionsStore{}
}

func (m *MockPermissionsStore) ListPermissions() ([]model.Permission, error) {
	args := m.Called()
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockPermissionsStore) FetchPermission(id uint) (*model.Permission, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockPermissionsStore) CreatePermission(name, description string) (*model.Permission, error) {
	args := m.Called(name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockPermissionsStore) UpdatePermission(id uint, name, description string) error {
	args := m.Called(id, name, description)
	return args.Error(0)
}

func (m *MockPermissionsStore) DeletePermission(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAuthzStore implements store.AuthzStore for testing using testify/mock
type MockAuthzStore struct {
	mock.Mock
}

func NewMockAuthzStore() *MockAuthzStore {
	return &MockAuthzStore{}
}

func (m *MockAuthzStore) HasPermission(accountID uint, permission string) bool {
	args := m.Called(accountID, permission)
	return args.Bool(0)
}

func (m *MockAuthzStore) EffectivePermissions(accountID uint) ([]string, error) {
	args := m.Called(accountID)
	return args.Get(0).([]string), args.Error(1)
}

// Interface guards
var (
	_ store.AccountsStore    = (*MockAccountsStore)(nil)
	_ store.RolesStore       = (*MockRolesStore)(nil)
	_ store.PermissionsStore = (*MockPermissionsStore)(nil)
	_ store.AuthzStore       = (*MockAuthzStore)(nil)
)
