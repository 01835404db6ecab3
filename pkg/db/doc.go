// Package db provides database connection utilities for the TIL server.
//
// This package handles PostgreSQL database connections using GORM.
//
// # Connection
//
//	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string fallback
//   - TIL_LOG_LEVEL: Set to "debug" for SQL query logging
package db
