// Package config provides configuration management for Gatehouse.
//
// This package handles loading and validating server configuration from a
// YAML file and environment variables, and tracking which source supplied
// each attribute.
//
// # Configuration Sources
//
// Configuration is loaded, in order of precedence:
//
//   - Environment variables (highest)
//   - gatehouse.yml in GATEHOUSE_CONFIG_PATH (default /etc/gatehouse)
//   - Built-in defaults
//
// # Key Configuration Options
//
//   - GATEHOUSE_BIND_ADDRESS: server listen address
//   - GATEHOUSE_PORT: server listen port
//   - GATEHOUSE_SESSION_COOKIE_NAME: session cookie name
//   - GATEHOUSE_API_TOKEN_TTL: API token lifetime in seconds
//   - GATEHOUSE_LOCKOUT_ATTEMPT_LIMIT: failed sign-ins before lockout
//   - GATEHOUSE_LOCKOUT_DURATION: lockout duration in seconds
//
// Secrets are read from the environment only:
//
//   - GATEHOUSE_SESSION_KEY: base64 cookie signing key
//   - GATEHOUSE_TOKEN_KEY: base64 API token signing key
//   - DATABASE_URL: database connection
package config
