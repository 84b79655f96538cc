// Package main provides gatehousectl, the CLI for the Gatehouse
// admin console.
//
// Gatehouse is a server-rendered web application for managing accounts,
// roles and permissions, with session-based authentication, a per-page
// permission guard and a sign-in lockout.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: page handlers and the JSON API
//   - pkg/server/store: storage interfaces and GORM implementations
//   - pkg/session: cookie sessions, flash messages and the lockout
//   - pkg/policy: declarative access policy loading
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Generate signing keys
//	head -c 32 /dev/urandom | base64
//	export GATEHOUSE_SESSION_KEY=<key>
//	export GATEHOUSE_TOKEN_KEY=<key>
//
//	# Run database migrations
//	gatehousectl db migrate
//
//	# Start the server
//	gatehousectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - GATEHOUSE_SESSION_KEY: Base64-encoded session cookie signing key
//   - GATEHOUSE_TOKEN_KEY: Base64-encoded API token signing key
//   - GATEHOUSE_CONFIG_PATH: Directory holding gatehouse.yml
//   - GATEHOUSE_LOG_LEVEL: Log level (debug enables SQL logging)
package main
