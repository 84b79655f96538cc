package endpoints

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gatehouse/pkg/server"
	"gatehouse/pkg/server/middleware"
	"gatehouse/pkg/server/web"
	"gatehouse/pkg/session"
)

type testEnv struct {
	srv         *server.Server
	sessions    *session.Manager
	accounts    *MockAccountsStore
	roles       *MockRolesStore
	permissions *MockPermissionsStore
	authz       *MockAuthzStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sessions := session.NewManager(
		[]byte("0123456789abcdef0123456789abcdef"),
		"gatehouse_session",
		session.DefaultLockoutPolicy(),
	)
	renderer, err := web.NewRenderer(sessions)
	require.NoError(t, err)

	env := &testEnv{
		sessions:    sessions,
		accounts:    NewMockAccountsStore(),
		roles:       NewMockRolesStore(),
		permissions: NewMockPermissionsStore(),
		authz:       NewMockAuthzStore(),
	}

	h := &Handlers{
		Accounts:    env.accounts,
		Roles:       env.roles,
		Permissions: env.permissions,
		Authz:       env.authz,
		Sessions:    sessions,
		Renderer:    renderer,
		Guard:       middleware.NewGuard(sessions, env.authz),
		Tokens:      middleware.NewTokenAuthenticator([]byte("fedcba9876543210fedcba9876543210"), time.Minute),
	}

	srv := server.NewServer(sessions, nil, "127.0.0.1", "0")
	h.RegisterLoginEndpoints(srv)
	h.RegisterDashboardEndpoint(srv)
	h.RegisterAccountsEndpoints(srv)
	h.RegisterRolesEndpoints(srv)
	h.RegisterPermissionsEndpoints(srv)
	h.RegisterRecordsEndpoints(srv)
	h.RegisterGuideEndpoint(srv)
	h.RegisterAPIEndpoints(srv)

	env.srv = srv
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.srv.Router.ServeHTTP(rec, req)
	return rec
}

// signInCookies fabricates a signed-in session and returns its cookies.
func (e *testEnv) signInCookies(t *testing.T, accountID uint, name string) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, e.sessions.Save(w, r, session.Context{AccountID: accountID, AccountName: name}))
	return w.Result().Cookies()
}

func formRequest(target string, values url.Values, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func getRequest(target string, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// followCookies merges Set-Cookie headers from a response into an
// existing cookie set, later values winning.
func followCookies(existing []*http.Cookie, rec *httptest.ResponseRecorder) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	for _, c := range existing {
		byName[c.Name] = c
	}
	for _, c := range rec.Result().Cookies() {
		byName[c.Name] = c
	}
	merged := make([]*http.Cookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	return merged
}
