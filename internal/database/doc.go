// Package database stores the audit history in SQLite.
//
// Every finished audit is saved as one row of the audits table, holding the
// scores for quick listing and the whole report as JSON, plus one row per
// finding. The history lets two audits of the same host be compared.
//
// The driver is modernc.org/sqlite, so the binary stays CGO-free and the
// database is a single file in the XDG data directory. WAL journaling is
// enabled by default.
package database
