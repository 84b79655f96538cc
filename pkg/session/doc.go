// Package session manages browser sessions for the Gatehouse console.
//
// Sessions are stored in signed cookies via gorilla/sessions. Each session
// carries the signed-in account identity, any pending flash messages, and
// the sign-in lockout counter.
//
// # Lockout
//
// Failed sign-ins are counted per session. Once the attempt limit is
// reached, the session is locked for a fixed duration and sign-in is
// refused without checking credentials. The lockout walks through three
// states:
//
//   - open: no failed attempts recorded
//   - counting: some failures, below the limit
//   - locked: limit reached, refused until the deadline passes
//
// Because the counter lives in the cookie, the lockout is scoped to one
// browser session rather than to the account.
//
// # Usage
//
//	manager := session.NewManager(key, "gatehouse_session", policy)
//	ctx := manager.Load(r)
//	if ctx.Authenticated() {
//	    // signed in as ctx.AccountName
//	}
package session
