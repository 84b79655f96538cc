// Package db embeds the SQL schema migrations so a single binary can
// migrate its own database.
package db

import "embed"

// Migrations holds the SQL migration files applied by golang-migrate.
//
//go:embed migrations
var Migrations embed.FS
