// Package store defines the storage interfaces used by the TIL server.
//
// Handlers depend only on these interfaces; the gorm subpackage provides the
// PostgreSQL-backed implementations and tests substitute in-memory fakes.
package store
