package endpoints

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server/store"
)

func TestListPermissions(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "read").Return(true)
	env.permissions.On("ListPermissions").Return([]model.Permission{
		{ID: 1, Name: "create"},
		{ID: 5, Name: "publish"},
	}, nil)

	rec := env.do(getRequest("/permissions", cookies))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "publish")
	assert.Contains(t, rec.Body.String(), "built-in")
}

func TestCreatePermission(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "create").Return(true)
	env.permissions.On("CreatePermission", "Publish", "Publish articles").
		Return(&model.Permission{ID: 5, Name: "publish"}, nil)

	form := url.Values{"name": {"Publish"}, "description": {"Publish articles"}}
	rec := env.do(formRequest("/permissions/new", form, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/permissions", rec.Header().Get("Location"))
	env.permissions.AssertExpectations(t)
}

func TestDeleteReservedPermissionRefused(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "delete").Return(true)
	env.permissions.On("DeletePermission", uint(1)).Return(store.ErrProtectedResource)

	rec := env.do(formRequest("/permissions/1/delete", url.Values{}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/permissions", rec.Header().Get("Location"))
}

func TestRenameReservedPermissionRefused(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "update").Return(true)
	env.permissions.On("UpdatePermission", uint(1), "renamed", "").
		Return(store.ErrProtectedResource)

	rec := env.do(formRequest("/permissions/1/edit", url.Values{"name": {"renamed"}}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/permissions", rec.Header().Get("Location"))
}

func TestRolesDeleteEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "delete").Return(true)
	env.roles.On("DeleteRole", uint(3)).Return(nil)

	rec := env.do(formRequest("/roles/3/delete", url.Values{}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/roles", rec.Header().Get("Location"))
	env.roles.AssertExpectations(t)
}

func TestUpdateRoleReplacesPermissions(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "admin")

	env.authz.On("HasPermission", uint(1), "update").Return(true)
	env.roles.On("UpdateRole", uint(3), "editor", "Editors").Return(nil)
	env.roles.On("ReplacePermissions", uint(3), []uint{1, 2}).Return(nil)

	form := url.Values{
		"name":        {"editor"},
		"description": {"Editors"},
		"permissions": {"1", "2"},
	}
	rec := env.do(formRequest("/roles/3/edit", form, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/roles", rec.Header().Get("Location"))
	env.roles.AssertExpectations(t)
}

func TestRecordsPageHidesEditWithoutUpdate(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.signInCookies(t, 1, "reader")

	env.authz.On("HasPermission", uint(1), "read").Return(true)
	env.authz.On("HasPermission", uint(1), "update").Return(false)

	rec := env.do(getRequest("/records", cookies))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Record 1")
	assert.NotContains(t, rec.Body.String(), "/records/1/edit")
}
