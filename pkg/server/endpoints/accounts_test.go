package endpoints

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server/store"
)

func TestListAccountsRequiresReadPermission(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "read").Return(false)

	rec := env.do(getRequest("/accounts", cookies))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestListAccounts(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "read").Return(true)
	env.accounts.On("ListAccounts").Return([]model.Account{
		{ID: 1, Name: "admin", Roles: []model.Role{{Name: "administrator"}}},
		{ID: 2, Name: "bob"},
	}, nil)

	rec := env.do(getRequest("/accounts", cookies))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin")
	assert.Contains(t, rec.Body.String(), "bob")
}

func TestCreateAccount(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "create").Return(true)
	env.accounts.On("CreateAccount", "carol", "secret", []uint{2, 3}).
		Return(&model.Account{ID: 5, Name: "carol"}, nil)

	form := url.Values{
		"name":     {"carol"},
		"password": {"secret"},
		"roles":    {"2", "3"},
	}
	rec := env.do(formRequest("/accounts/new", form, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accounts", rec.Header().Get("Location"))
	env.accounts.AssertExpectations(t)
}

func TestCreateAccountDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "create").Return(true)
	env.accounts.On("CreateAccount", "admin", "secret", []uint{}).
		Return(nil, store.ErrDuplicateName)

	form := url.Values{"name": {"admin"}, "password": {"secret"}}
	rec := env.do(formRequest("/accounts/new", form, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accounts/new", rec.Header().Get("Location"))
}

func TestUpdateAccountReplacesRoles(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "update").Return(true)
	env.accounts.On("ReplaceRoles", uint(2), []uint{4}).Return(nil)

	rec := env.do(formRequest("/accounts/2/edit", url.Values{"roles": {"4"}}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accounts", rec.Header().Get("Location"))
	env.accounts.AssertExpectations(t)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "delete").Return(true)
	env.accounts.On("DeleteAccount", uint(2)).Return(nil)

	rec := env.do(formRequest("/accounts/2/delete", url.Values{}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accounts", rec.Header().Get("Location"))
	env.accounts.AssertExpectations(t)
}

func TestDeleteOwnAccountRefused(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "delete").Return(true)

	rec := env.do(formRequest("/accounts/1/delete", url.Values{}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accounts", rec.Header().Get("Location"))
	env.accounts.AssertNotCalled(t, "DeleteAccount", uint(1))
}

func TestDeleteAccountNotFound(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "delete").Return(true)
	env.accounts.On("DeleteAccount", uint(9)).Return(store.ErrNotFound)

	rec := env.do(formRequest("/accounts/9/delete", url.Values{}, cookies))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
