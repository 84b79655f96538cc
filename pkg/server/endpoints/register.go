package endpoints

import (
	"net/http"

	"gatehouse/pkg/server"
	"gatehouse/pkg/server/middleware"
	"gatehouse/pkg/server/store"
	gormstore "gatehouse/pkg/server/store/gorm"
	"gatehouse/pkg/server/web"
	"gatehouse/pkg/session"
)

// Handlers carries the dependencies shared by all endpoints.
type Handlers struct {
	Accounts    store.AccountsStore
	Roles       store.RolesStore
	Permissions store.PermissionsStore
	Authz       store.AuthzStore
	Sessions    *session.Manager
	Renderer    *web.Renderer
	Guard       *middleware.Guard
	Tokens      *middleware.TokenAuthenticator
}

// RegisterAll registers all web pages and API endpoints on the server
func RegisterAll(srv *server.Server, tokens *middleware.TokenAuthenticator) error {
	renderer, err := web.NewRenderer(srv.Sessions)
	if err != nil {
		return err
	}

	authz := gormstore.NewAuthzStore(srv.DB)
	h := &Handlers{
		Accounts:    gormstore.NewAccountsStore(srv.DB),
		Roles:       gormstore.NewRolesStore(srv.DB),
		Permissions: gormstore.NewPermissionsStore(srv.DB),
		Authz:       authz,
		Sessions:    srv.Sessions,
		Renderer:    renderer,
		Guard:       middleware.NewGuard(srv.Sessions, authz),
		Tokens:      tokens,
	}

	h.RegisterLoginEndpoints(srv)
	h.RegisterDashboardEndpoint(srv)
	h.RegisterAccountsEndpoints(srv)
	h.RegisterRolesEndpoints(srv)
	h.RegisterPermissionsEndpoints(srv)
	h.RegisterRecordsEndpoints(srv)
	h.RegisterGuideEndpoint(srv)
	h.RegisterAPIEndpoints(srv)

	srv.Router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}).Methods("GET")

	return nil
}

// page wraps a handler with a permission check.
func (h *Handlers) page(permission string, fn http.HandlerFunc) http.Handler {
	return h.Guard.RequirePermission(permission, fn)
}
