package endpoints

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server"
	"gatehouse/pkg/server/store"
)

type roleFormData struct {
	Role                  *model.Role
	Permissions           []model.Permission
	AssignedPermissionIDs map[uint]bool
}

// RegisterRolesEndpoints registers the role management pages
func (h *Handlers) RegisterRolesEndpoints(s *server.Server) {
	r := s.Router
	r.Handle("/roles", h.page("read", h.handleListRoles())).Methods("GET")
	r.Handle("/roles/new", h.page("create", h.handleNewRolePage())).Methods("GET")
	r.Handle("/roles/new", h.page("create", h.handleCreateRole())).Methods("POST")
	r.Handle("/roles/{id}/edit", h.page("update", h.handleEditRolePage())).Methods("GET")
	r.Handle("/roles/{id}/edit", h.page("update", h.handleUpdateRole())).Methods("POST")
	r.Handle("/roles/{id}/delete", h.page("delete", h.handleDeleteRole())).Methods("POST")
}

func (h *Handlers) handleListRoles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := h.Roles.ListRoles()
		if err != nil {
			log.Printf("ERROR: listing roles: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "roles_list", "Roles", struct {
			Roles []model.Role
		}{roles})
	}
}

func (h *Handlers) handleNewRolePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		permissions, err := h.Permissions.ListPermissions()
		if err != nil {
			log.Printf("ERROR: listing permissions: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "role_form", "New role", roleFormData{
			Permissions:           permissions,
			AssignedPermissionIDs: map[uint]bool{},
		})
	}
}

func (h *Handlers) handleCreateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.PostFormValue("name"))
		if name == "" {
			_ = h.Sessions.Flash(w, r, "danger", "Role name is required.")
			http.Redirect(w, r, "/roles/new", http.StatusSeeOther)
			return
		}

		_, err := h.Roles.CreateRole(name, r.PostFormValue("description"), formIDs(r, "permissions"))
		if errors.Is(err, store.ErrDuplicateName) {
			_ = h.Sessions.Flash(w, r, "danger", "That role name already exists.")
			http.Redirect(w, r, "/roles/new", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Printf("ERROR: creating role: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Role created successfully.")
		http.Redirect(w, r, "/roles", http.StatusSeeOther)
	}
}

func (h *Handlers) handleEditRolePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		role, err := h.Roles.FetchRole(id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Printf("ERROR: fetching role: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		permissions, err := h.Permissions.ListPermissions()
		if err != nil {
			log.Printf("ERROR: listing permissions: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		assigned := make([]uint, 0, len(role.Permissions))
		for _, p := range role.Permissions {
			assigned = append(assigned, p.ID)
		}
		h.Renderer.Render(w, r, "role_form", "Edit role", roleFormData{
			Role:                  role,
			Permissions:           permissions,
			AssignedPermissionIDs: idSet(assigned),
		})
	}
}

func (h *Handlers) handleUpdateRole() http.HandlerFunc {
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
		name := strings.TrimSpace(r.PostFormValue("name"))
		if name == "" {
			_ = h.Sessions.Flash(w, r, "danger", "Role name is required.")
			http.Redirect(w, r, "/roles", http.StatusSeeOther)
			return
		}

		err := h.Roles.UpdateRole(id, name, r.PostFormValue("description"))
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if errors.Is(err, store.ErrDuplicateName) {
			_ = h.Sessions.Flash(w, r, "danger", "That role name already exists.")
			http.Redirect(w, r, "/roles", http.StatusSeeOther)
			return
		}
		if err == nil {
			err = h.Roles.ReplacePermissions(id, formIDs(r, "permissions"))
		}
		if err != nil {
			log.Printf("ERROR: updating role: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Role updated successfully.")
		http.Redirect(w, r, "/roles", http.StatusSeeOther)
	}
}

func (h *Handlers) handleDeleteRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		err := h.Roles.DeleteRole(id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Printf("ERROR: deleting role: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Role deleted successfully.")
		http.Redirect(w, r, "/roles", http.StatusSeeOther)
	}
}
