package endpoints

import (
	"log"
	"net/http"

	"gatehouse/pkg/server"
	"gatehouse/pkg/session"
)

type dashboardData struct {
	Roles       []string
	Permissions []string
}

// RegisterDashboardEndpoint registers the dashboard page. It only
// requires authentication, so it is a safe landing page for denied
// permission checks.
func (h *Handlers) RegisterDashboardEndpoint(s *server.Server) {
	s.Router.Handle("/dashboard",
		h.Guard.RequireAuthenticated(h.handleDashboard())).Methods("GET")
}

func (h *Handlers) handleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := session.Get(r)

		data := dashboardData{}
		account, err := h.Accounts.FetchAccount(ctx.AccountID)
		if err == nil {
			data.Roles = account.RoleNames()
		}

		data.Permissions, err = h.Authz.EffectivePermissions(ctx.AccountID)
		if err != nil {
			log.Printf("ERROR: fetching permissions: %v", err)
		}

		h.Renderer.Render(w, r, "dashboard", "Dashboard", data)
	}
}
