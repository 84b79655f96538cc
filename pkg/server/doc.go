// Package server provides the HTTP server for the Gatehouse admin console.
//
// This package implements the core HTTP server that serves the web console
// and the token API. It uses gorilla/mux for routing and gorilla/handlers
// for request logging.
//
// # Server Setup
//
//	srv := server.NewServer(sessions, db, "0.0.0.0", "8080")
//	if err := endpoints.RegisterAll(srv, tokens); err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - Sessions: cookie session manager with the lockout policy
//   - Router: HTTP request router
//   - DB: database connection shared by the stores
//
// # Endpoints
//
// Routes are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv, tokens)
//
// This registers the console pages and the API:
//
//   - /login, /logout - session sign-in and sign-out
//   - /dashboard - signed-in landing page
//   - /accounts, /roles, /permissions - management pages
//   - /records - sample protected resource
//   - /guide - rendered operator guide
//   - /api/authenticate, /api/whoami, /api/permissions - token API
package server
