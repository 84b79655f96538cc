package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// Session value keys.
const (
	keyAccountID    = "account_id"
	keyAccountName  = "account_name"
	keyAttempts     = "login_attempts"
	keyLockoutUntil = "lockout_until"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Context is the signed-in identity and lockout counter carried by a
// session cookie.
type Context struct {
	AccountID   uint
	AccountName string
	Lockout     Lockout
}

// Authenticated reports whether the session belongs to a signed-in account.
func (c Context) Authenticated() bool {
	return c.AccountID != 0
}

// Manager loads and saves session Contexts through a cookie store.
type Manager struct {
	store  sessions.Store
	name   string
	Policy LockoutPolicy
}

// NewManager builds a Manager over an HMAC-signed cookie store.
func NewManager(secret []byte, cookieName string, policy LockoutPolicy) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: cookieName, Policy: policy}
}

// Load reads the session Context from the request cookie. A missing or
// undecodable cookie yields a zero Context rather than an error.
func (m *Manager) Load(r *http.Request) Context {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		// Tampered or stale cookie. Get still returns a fresh session.
		return Context{}
	}

	var ctx Context
	if v, ok := s.Values[keyAccountID].(uint); ok {
		ctx.AccountID = v
	}
	if v, ok := s.Values[keyAccountName].(string); ok {
		ctx.AccountName = v
	}
	if v, ok := s.Values[keyAttempts].(int); ok {
		ctx.Lockout.Attempts = v
	}
	if v, ok := s.Values[keyLockoutUntil].(int64); ok && v != 0 {
		ctx.Lockout.Until = time.Unix(v, 0)
	}
	return ctx
}

// Save writes the session Context back to the cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, ctx Context) error {
	s, _ := m.store.Get(r, m.name)

	s.Values[keyAccountID] = ctx.AccountID
	s.Values[keyAccountName] = ctx.AccountName
	s.Values[keyAttempts] = ctx.Lockout.Attempts
	if ctx.Lockout.Until.IsZero() {
		s.Values[keyLockoutUntil] = int64(0)
	} else {
		s.Values[keyLockoutUntil] = ctx.Lockout.Until.Unix()
	}

	return s.Save(r, w)
}

// SignOut clears all session values, including the lockout counter.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, m.name)
	for k := range s.Values {
		delete(s.Values, k)
	}
	return s.Save(r, w)
}

// Flash queues a one-shot message for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, category, message string) error {
	s, _ := m.store.Get(r, m.name)
	s.AddFlash(Flash{Category: category, Message: message})
	return s.Save(r, w)
}

// Flashes drains queued flash messages and persists their removal.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s, _ := m.store.Get(r, m.name)

	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		return nil
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

type contextKey struct{}

// Set attaches a session Context to the request context.
func Set(r *http.Request, ctx Context) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, ctx))
}

// Get retrieves the session Context attached by middleware. The second
// return value is false when no middleware ran for this request.
func Get(r *http.Request) (Context, bool) {
	ctx, ok := r.Context().Value(contextKey{}).(Context)
	return ctx, ok
}
