package database

import "errors"

var (
	// ErrAuditNotFound is returned when no audit has the requested ID.
	ErrAuditNotFound = errors.New("audit not found")

	// ErrDatabaseNotFound is returned by Open when the database file does not
	// exist and creation is disabled.
	ErrDatabaseNotFound = errors.New("database not found")
)
