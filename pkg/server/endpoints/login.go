package endpoints

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"gatehouse/pkg/server"
	"gatehouse/pkg/session"
)

// RegisterLoginEndpoints registers the login and logout endpoints
func (h *Handlers) RegisterLoginEndpoints(s *server.Server) {
	s.Router.HandleFunc("/login", h.handleLoginPage()).Methods("GET")
	s.Router.HandleFunc("/login", h.handleLogin()).Methods("POST")
	s.Router.HandleFunc("/logout", h.handleLogout()).Methods("GET")
}

func (h *Handlers) handleLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Renderer.Render(w, r, "login", "Sign in", nil)
	}
}

func (h *Handlers) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		ctx := h.Sessions.Load(r)
		ctx.Lockout.Expire(now)

		if ctx.Lockout.State(now) == session.StateLocked {
			remaining := session.FormatRemaining(ctx.Lockout.Remaining(now))
			_ = h.Sessions.Save(w, r, ctx)
			_ = h.Sessions.Flash(w, r, "danger",
				fmt.Sprintf("Too many failed attempts. Try again in %s.", remaining))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		name := r.PostFormValue("username")
		password := r.PostFormValue("password")

		account, err := h.Accounts.VerifyCredentials(name, password)
		if err != nil {
			log.Printf("ERROR: verifying credentials: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if account != nil {
			ctx.AccountID = account.ID
			ctx.AccountName = account.Name
			ctx.Lockout.Reset()
			_ = h.Sessions.Save(w, r, ctx)
			_ = h.Sessions.Flash(w, r, "success", "Signed in successfully.")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}

		remaining := ctx.Lockout.Fail(now, h.Sessions.Policy)
		_ = h.Sessions.Save(w, r, ctx)
		if remaining == 0 {
			_ = h.Sessions.Flash(w, r, "danger", "Too many failed attempts. Try again later.")
		} else {
			_ = h.Sessions.Flash(w, r, "warning",
				fmt.Sprintf("Incorrect username or password. Attempts remaining: %d", remaining))
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (h *Handlers) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = h.Sessions.SignOut(w, r)
		_ = h.Sessions.Flash(w, r, "info", "You have been signed out.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
