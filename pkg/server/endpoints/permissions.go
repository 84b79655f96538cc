package endpoints

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gatehouse/pkg/model"
	"gatehouse/pkg/server"
	"gatehouse/pkg/server/store"
)

type permissionFormData struct {
	Permission *model.Permission
}

// RegisterPermissionsEndpoints registers the permission management pages
func (h *Handlers) RegisterPermissionsEndpoints(s *server.Server) {
	r := s.Router
	r.Handle("/permissions", h.page("read", h.handleListPermissions())).Methods("GET")
	r.Handle("/permissions/new", h.page("create", h.handleNewPermissionPage())).Methods("GET")
	r.Handle("/permissions/new", h.page("create", h.handleCreatePermission())).Methods("POST")
	r.Handle("/permissions/{id}/edit", h.page("update", h.handleEditPermissionPage())).Methods("GET")
	r.Handle("/permissions/{id}/edit", h.page("update", h.handleUpdatePermission())).Methods("POST")
	r.Handle("/permissions/{id}/delete", h.page("delete", h.handleDeletePermission())).Methods("POST")
}

func (h *Handlers) handleListPermissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		permissions, err := h.Permissions.ListPermissions()
		if err != nil {
			log.Printf("ERROR: listing permissions: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "permissions_list", "Permissions", struct {
			Permissions []model.Permission
		}{permissions})
	}
}

func (h *Handlers) handleNewPermissionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Renderer.Render(w, r, "permission_form", "New permission", permissionFormData{})
	}
}

func (h *Handlers) handleCreatePermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.PostFormValue("name"))
		if name == "" {
			_ = h.Sessions.Flash(w, r, "danger", "Permission name is required.")
			http.Redirect(w, r, "/permissions/new", http.StatusSeeOther)
			return
		}

		permission, err := h.Permissions.CreatePermission(name, r.PostFormValue("description"))
		if errors.Is(err, store.ErrDuplicateName) {
			_ = h.Sessions.Flash(w, r, "danger", "That permission already exists.")
			http.Redirect(w, r, "/permissions/new", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Printf("ERROR: creating permission: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success",
			fmt.Sprintf("Permission %q created successfully.", permission.Name))
		http.Redirect(w, r, "/permissions", http.StatusSeeOther)
	}
}

func (h *Handlers) handleEditPermissionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		permission, err := h.Permissions.FetchPermission(id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Printf("ERROR: fetching permission: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, r, "permission_form", "Edit permission", permissionFormData{
			Permission: permission,
		})
	}
}

func (h *Handlers) handleUpdatePermission() http.HandlerFunc {
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
			_ = h.Sessions.Flash(w, r, "danger", "Permission name is required.")
			http.Redirect(w, r, "/permissions", http.StatusSeeOther)
			return
		}

		err := h.Permissions.UpdatePermission(id, name, r.PostFormValue("description"))
		switch {
		case errors.Is(err, store.ErrNotFound):
			http.NotFound(w, r)
			return
		case errors.Is(err, store.ErrProtectedResource):
			_ = h.Sessions.Flash(w, r, "danger", "Built-in permissions cannot be renamed.")
			http.Redirect(w, r, "/permissions", http.StatusSeeOther)
			return
		case errors.Is(err, store.ErrDuplicateName):
			_ = h.Sessions.Flash(w, r, "danger", "A permission with that name already exists.")
			http.Redirect(w, r, "/permissions", http.StatusSeeOther)
			return
		case err != nil:
			log.Printf("ERROR: updating permission: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Permission updated.")
		http.Redirect(w, r, "/permissions", http.StatusSeeOther)
	}
}

func (h *Handlers) handleDeletePermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		err := h.Permissions.DeletePermission(id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			http.NotFound(w, r)
			return
		case errors.Is(err, store.ErrProtectedResource):
			_ = h.Sessions.Flash(w, r, "danger", "Built-in permissions cannot be deleted.")
			http.Redirect(w, r, "/permissions", http.StatusSeeOther)
			return
		case err != nil:
			log.Printf("ERROR: deleting permission: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		_ = h.Sessions.Flash(w, r, "success", "Permission deleted successfully.")
		http.Redirect(w, r, "/permissions", http.StatusSeeOther)
	}
}
