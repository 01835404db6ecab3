// Package config loads TIL server configuration from an optional YAML file
// overlaid with environment variables.
//
// # Environment Variables
//
//   - TIL_CONFIG: config file path (default /etc/til/til.yml)
//   - TIL_ENV: "production" (default) or "test"
//   - DATABASE_URL: full connection string, overrides everything below
//   - DATABASE_HOST: default localhost
//   - DATABASE_USER: default til
//   - DATABASE_PASSWORD: default password
//   - DATABASE_DB: default til (til_test under TIL_ENV=test)
//   - DATABASE_PORT: default 5432 (5433 under TIL_ENV=test)
//   - BIND_ADDRESS, PORT: HTTP listener (defaults 0.0.0.0, 8080)
//   - TIL_TEMPLATE_DIR: on-disk templates with live reload (development)
package config
