package database

import "time"

// Pool sizing defaults
const (
	// DefaultMinConns keeps a couple of warm connections for the request path
	DefaultMinConns = 2

	// DefaultConnectTimeout bounds the initial connect and ping
	DefaultConnectTimeout = 10 * time.Second
)

// Error Messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgConnected        = "Connected to database"
	LogMsgMigrationApplied = "Applied migration"
	LogMsgSchemaUpToDate   = "Database schema up to date"
)
