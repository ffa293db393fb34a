package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/siteaudit/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "siteaudit.db"

// timeLayout is fixed-width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// AuditDB provides SQLite-based storage for finished audits.
type AuditDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the audit database in dbDir.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	mode := "rwc"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		mode = "rw"
	}

	db, err := sql.Open("sqlite", dbPath+"?mode="+mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Path returns the database file path.
func (adb *AuditDB) Path() string {
	return adb.dbPath
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

func (adb *AuditDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audits (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		host TEXT NOT NULL,
		started_at TEXT NOT NULL,
		completed_at TEXT,
		overall REAL,
		performance REAL,
		accessibility REAL,
		security REAL,
		grade TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audits_host ON audits(host);
	CREATE INDEX IF NOT EXISTS idx_audits_started ON audits(started_at);

	CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id TEXT NOT NULL REFERENCES audits(id),
		type TEXT NOT NULL,
		severity INTEGER NOT NULL,
		title TEXT,
		value TEXT,
		location TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_findings_audit ON findings(audit_id);
	CREATE INDEX IF NOT EXISTS idx_findings_type ON findings(type);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// AuditRecord is the summary of a stored audit, used for listings without
// loading the full report.
type AuditRecord struct {
	ID          string
	URL         string
	Host        string
	StartedAt   time.Time
	CompletedAt time.Time
	Scores      model.Scores

	// FindingsBySeverity counts the stored findings per severity.
	FindingsBySeverity map[model.Severity]int
}

// SaveAudit stores report and its findings. Saving a report with an ID that
// already exists replaces the earlier row.
func (adb *AuditDB) SaveAudit(ctx context.Context, report *model.AuditReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE audit_id = ?`, report.ID); err != nil {
		return fmt.Errorf("failed to replace findings: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO audits
		(id, url, host, started_at, completed_at, overall, performance, accessibility, security, grade, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		report.ID,
		report.URL,
		report.Host,
		formatTime(report.Timestamp),
		formatTime(report.CompletedAt),
		report.Scores.Overall,
		report.Scores.Performance,
		report.Scores.Accessibility,
		report.Scores.Security,
		report.Scores.Grade,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO findings (audit_id, type, severity, title, value, location)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare finding insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range report.Summary.Findings {
		if _, err := stmt.ExecContext(ctx, report.ID, f.Type, int(f.Severity), f.Title, f.Value, f.Location); err != nil {
			return fmt.Errorf("failed to save finding %s: %w", f.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit: %w", err)
	}
	return nil
}

// GetAudit loads the stored report with the given ID.
func (adb *AuditDB) GetAudit(ctx context.Context, id string) (*model.AuditReport, error) {
	var reportJSON string
	err := adb.db.QueryRowContext(ctx, `SELECT report_json FROM audits WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}
	return decodeReport(reportJSON)
}

// GetLatestAudits returns up to n reports for host, newest first.
func (adb *AuditDB) GetLatestAudits(ctx context.Context, host string, n int) ([]*model.AuditReport, error) {
	rows, err := adb.db.QueryContext(ctx, `
	SELECT report_json FROM audits
	WHERE host = ?
	ORDER BY started_at DESC
	LIMIT ?
	`, host, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest audits: %w", err)
	}
	defer rows.Close()

	var reports []*model.AuditReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		report, err := decodeReport(reportJSON)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// ListAudits returns audit summaries, newest first. An empty host lists all
// hosts; a non-positive limit lists everything.
func (adb *AuditDB) ListAudits(ctx context.Context, host string, limit int) ([]AuditRecord, error) {
	query := `
	SELECT id, url, host, started_at, completed_at, overall, performance, accessibility, security, grade
	FROM audits
	WHERE 1=1
	`
	args := make([]any, 0, 2)
	if host != "" {
		query += " AND host = ?"
		args = append(args, host)
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			rec                AuditRecord
			started, completed string
			grade              sql.NullString
		)
		err := rows.Scan(
			&rec.ID,
			&rec.URL,
			&rec.Host,
			&started,
			&completed,
			&rec.Scores.Overall,
			&rec.Scores.Performance,
			&rec.Scores.Accessibility,
			&rec.Scores.Security,
			&grade,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.StartedAt = parseTimestamp(started)
		rec.CompletedAt = parseTimestamp(completed)
		rec.Scores.Grade = grade.String
		rec.FindingsBySeverity = make(map[model.Severity]int)
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := adb.countFindings(ctx, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

// countFindings fills FindingsBySeverity of records.
func (adb *AuditDB) countFindings(ctx context.Context, records []AuditRecord, index map[string]int) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(records)), ",")
	args := make([]any, len(records))
	for i, rec := range records {
		args[i] = rec.ID
	}

	//nolint:gosec // placeholders only
	rows, err := adb.db.QueryContext(ctx, `
	SELECT audit_id, severity, COUNT(*) FROM findings
	WHERE audit_id IN (`+placeholders+`)
	GROUP BY audit_id, severity
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to count findings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       string
			severity int
			count    int
		)
		if err := rows.Scan(&id, &severity, &count); err != nil {
			return fmt.Errorf("failed to scan finding count: %w", err)
		}
		records[index[id]].FindingsBySeverity[model.Severity(severity)] = count
	}
	return rows.Err()
}

// DeleteOlderThan removes audits started before t together with their
// findings and returns how many audits were removed.
func (adb *AuditDB) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	cutoff := formatTime(t)

	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	DELETE FROM findings
	WHERE audit_id IN (SELECT id FROM audits WHERE started_at < ?)
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete findings: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM audits WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audits: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return result.RowsAffected()
}

func decodeReport(reportJSON string) (*model.AuditReport, error) {
	var report model.AuditReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats come first.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
}

// parseTimestamp parses s with the first matching layout and returns the
// zero time when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
