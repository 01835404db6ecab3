// Package db carries the embedded SQL schema migrations.
package db

import "embed"

// Migrations embeds the SQL migration files applied by tilctl and on server
// startup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
