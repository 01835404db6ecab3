// Package main provides tilctl, the CLI for the TIL acronym catalogue
// server.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: page and JSON API handlers
//   - pkg/server/store: storage interfaces and their GORM implementations
//   - pkg/session: session state and CSRF tokens
//   - pkg/auth: credential verification and bearer tokens
//   - pkg/reconcile: category tag-set reconciliation
//   - pkg/render: HTML templating
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	tilctl db migrate
//
//	# Create a first user
//	TIL_USER_PASSWORD=changeme12 tilctl user-create "Admin" admin
//
//	# Start the server
//	tilctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string (overrides DATABASE_* vars)
//   - TIL_ENV: production (default) or test
//   - TIL_LOG_LEVEL: set to debug for SQL query logging
//   - BIND_ADDRESS, PORT: HTTP listener
package main
