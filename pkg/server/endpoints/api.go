package endpoints

import (
	"encoding/json"
	"log"
	"net/http"

	"gatehouse/pkg/server"
	"gatehouse/pkg/server/middleware"
)

// AuthenticateRequest is the JSON body for POST /api/authenticate
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticateResponse carries an issued API token
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// WhoamiResponse represents the response from GET /api/whoami
type WhoamiResponse struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
}

// PermissionsResponse represents the response from GET /api/permissions
type PermissionsResponse struct {
	Permissions []string `json:"permissions"`
}

// RegisterAPIEndpoints registers the JSON API. The authenticate
// endpoint is registered on the main router so the token middleware
// only covers the protected subrouter.
func (h *Handlers) RegisterAPIEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/authenticate", h.handleAPIAuthenticate()).Methods("POST")

	api := s.Router.PathPrefix("/api").Subrouter()
	api.Use(h.Tokens.Middleware)
	api.HandleFunc("/whoami", h.handleAPIWhoami()).Methods("GET")
	api.HandleFunc("/permissions", h.handleAPIPermissions()).Methods("GET")
}

func (h *Handlers) handleAPIAuthenticate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthenticateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		account, err := h.Accounts.VerifyCredentials(req.Username, req.Password)
		if err != nil {
			log.Printf("ERROR: verifying credentials: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		if account == nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := h.Tokens.IssueToken(account.ID, account.Name)
		if err != nil {
			log.Printf("ERROR: issuing token: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Internal error")
			return
		}

		respondWithJSON(w, http.StatusOK, AuthenticateResponse{Token: token})
	}
}

func (h *Handlers) handleAPIWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetAPIIdentity(r)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}
		respondWithJSON(w, http.StatusOK, WhoamiResponse{
			AccountID: claims.AccountID,
			Username:  claims.Name,
		})
	}
}

func (h *Handlers) handleAPIPermissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetAPIIdentity(r)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		permissions, err := h.Authz.EffectivePermissions(claims.AccountID)
		if err != nil {
			log.Printf("ERROR: fetching permissions: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		if permissions == nil {
			permissions = []string{}
		}
		respondWithJSON(w, http.StatusOK, PermissionsResponse{Permissions: permissions})
	}
}
