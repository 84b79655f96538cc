package endpoints

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server"
	"gatehouse/pkg/server/store"
	"gatehouse/pkg/session"
)

type accountFormData struct {
	Account         *model.Account
	Roles           []model.Role
	AssignedRoleIDs map[uint]bool
}

// RegisterAccountsEndpoints registers the account management pages
func (h *Handlers) RegisterAccountsEndpoints(s *server.Server) {
	r := s.Router
	r.Handle("/accounts", h.page("read", h.handleListAccounts())).Methods("GET")
	r.Handle("/accounts/new", h.page("create", h.handleNewAccountPage())).Methods("GET")
	r.Handle("/accounts/new", h.page("create", h.handleCreateAccount())).Methods("POST")
	r.Handle("/accounts/{id}/edit", h.page("update", h.handleEditAccountPage())).Methods("GET")
	r.Handle("/accounts/{id}/edit", h.page("update", h.handleUpdateAccount())).Methods("POST")
	r.Handle("/accounts/{id}/delete", h.page("delete", h.handleDeleteAccount())).Methods("POST")
}

func (h *Handlers) handleListAccounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := h.Accounts.ListAccounts()
		if err != nil {
			log.Printf("ERROR: listing accounts: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "accounts_list", "Accounts", struct {
			Accounts []model.Account
		}{accounts})
	}
}

func (h *Handlers) handleNewAccountPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := h.Roles.ListRoles()
		if err != nil {
			log.Printf("ERROR: listing roles: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "account_form", "New account", accountFormData{
			Roles:           roles,
			AssignedRoleIDs: map[uint]bool{},
		})
	}
}

func (h *Handlers) handleCreateAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.PostFormValue("name"))
		password := r.PostFormValue("password")
		if name == "" || password == "" {
			_ = h.Sessions.Flash(w, r, "danger", "Username and password are required.")
			http.Redirect(w, r, "/accounts/new", http.StatusSeeOther)
			return
		}

		_, err := h.Accounts.CreateAccount(name, password, formIDs(r, "roles"))
		if errors.Is(err, store.ErrDuplicateName) {
			_ = h.Sessions.Flash(w, r, "danger", "That username already exists.")
			http.Redirect(w, r, "/accounts/new", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Printf("ERROR: creating account: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Account created successfully.")
		http.Redirect(w, r, "/accounts", http.StatusSeeOther)
	}
}

func (h *Handlers) handleEditAccountPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		account, err := h.Accounts.FetchAccount(id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Printf("ERROR: fetching account: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		roles, err := h.Roles.ListRoles()
		if err != nil {
			log.Printf("ERROR: listing roles: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		assigned := make([]uint, 0, len(account.Roles))
		for _, role := range account.Roles {
			assigned = append(assigned, role.ID)
		}
		h.Renderer.Render(w, r, "account_form", "Edit account", accountFormData{
			Account:         account,
			Roles:           roles,
			AssignedRoleIDs: idSet(assigned),
		})
	}
}

func (h *Handlers) handleUpdateAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		err := h.Accounts.ReplaceRoles(id, formIDs(r, "roles"))
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Printf("ERROR: updating account: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Account updated successfully.")
		http.Redirect(w, r, "/accounts", http.StatusSeeOther)
	}
}

func (h *Handlers) handleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		if ctx, ok := session.Get(r); ok && ctx.AccountID == id {
			_ = h.Sessions.Flash(w, r, "danger", "You cannot delete your own account.")
			http.Redirect(w, r, "/accounts", http.StatusSeeOther)
			return
		}

		err := h.Accounts.DeleteAccount(id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Printf("ERROR: deleting account: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Account deleted successfully.")
		http.Redirect(w, r, "/accounts", http.StatusSeeOther)
	}
}
