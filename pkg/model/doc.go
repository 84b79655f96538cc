// Package model contains the database models: accounts, roles, and
// permissions, related many-to-many through the account_roles and
// role_permissions join tables.
package model
