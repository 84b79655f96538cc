package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/pkg/session"
)

type stubAuthz struct {
	granted map[string]bool
}

func (s *stubAuthz) HasPermission(accountID uint, permission string) bool {
	return s.granted[permission]
}

func (s *stubAuthz) EffectivePermissions(accountID uint) ([]string, error) {
	names := make([]string, 0, len(s.granted))
	for name, ok := range s.granted {
		if ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func newTestGuard(granted map[string]bool) *Guard {
	sessions := session.NewManager(
		[]byte("0123456789abcdef0123456789abcdef"),
		"gatehouse_session",
		session.DefaultLockoutPolicy(),
	)
	return NewGuard(sessions, &stubAuthz{granted: granted})
}

func signedInRequest(t *testing.T, g *Guard, target string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, g.Sessions.Save(w, r, session.Context{AccountID: 1, AccountName: "admin"}))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestRequireAuthenticatedRedirectsAnonymous(t *testing.T) {
	g := newTestGuard(nil)

	handler := g.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthenticatedPassesSignedIn(t *testing.T) {
	g := newTestGuard(nil)

	called := false
	handler := g.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		ctx, ok := session.Get(r)
		require.True(t, ok)
		assert.Equal(t, "admin", ctx.AccountName)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedInRequest(t, g, "/dashboard"))

	assert.True(t, called)
}

func TestRequirePermissionForbiddenRedirectsToDashboard(t *testing.T) {
	g := newTestGuard(map[string]bool{"read": true})

	handler := g.RequirePermission("delete", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedInRequest(t, g, "/accounts/1/delete"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestRequirePermissionAnonymousRedirectsToLogin(t *testing.T) {
	g := newTestGuard(map[string]bool{"read": true})

	handler := g.RequirePermission("read", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequirePermissionGranted(t *testing.T) {
	g := newTestGuard(map[string]bool{"read": true})

	called := false
	handler := g.RequirePermission("read", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedInRequest(t, g, "/accounts"))

	assert.True(t, called)
}
