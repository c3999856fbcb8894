package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	// Schema is named after the executable so several deployments can
	// share one database.
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s".audit_log (
			id TEXT PRIMARY KEY,
			ts BIGINT,
			action TEXT,
			ticker TEXT,
			event_id TEXT,
			detail TEXT
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create audit_log: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s".export_memos (
			id TEXT PRIMARY KEY,
			ticker TEXT,
			event_id TEXT,
			filename TEXT,
			created_at BIGINT
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create export_memos: %w", err)
	}

	query = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_audit_ts ON "%s".audit_log(ts);`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveAuditEntriesBulk(entries []models.MAuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO "%s".audit_log (id, ts, action, ticker, event_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, d.Schema))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(e.ID, e.Timestamp, e.Action, e.Ticker, e.EventID, e.Detail)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveExportRecord(record models.MExportRecord) error {
	_, err := d.DB.Exec(fmt.Sprintf(`
		INSERT INTO "%s".export_memos (id, ticker, event_id, filename, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.Schema), record.ID, record.Ticker, record.EventID, record.Filename, record.CreatedAt)
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ListRecentAuditEntries(limit int) ([]models.MAuditEntry, error) {
	rows, err := d.DB.Query(fmt.Sprintf(`
		SELECT id, ts, action, ticker, event_id, detail
		FROM "%s".audit_log
		ORDER BY ts DESC
		LIMIT $1
	`, d.Schema), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MAuditEntry
	for rows.Next() {
		var e models.MAuditEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Ticker, &e.EventID, &e.Detail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) CleanupOldData() error {
	retentionDays := d.Config.Audit.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	d.Logger.Info("Cleaning up records older than %d days (ts < %d)...", retentionDays, cutoff)

	if _, err := d.DB.Exec(fmt.Sprintf(`DELETE FROM "%s".audit_log WHERE ts < $1`, d.Schema), cutoff); err != nil {
		d.Logger.Error("Cleanup audit_log error: %v", err)
	}
	if _, err := d.DB.Exec(fmt.Sprintf(`DELETE FROM "%s".export_memos WHERE created_at < $1`, d.Schema), cutoff); err != nil {
		d.Logger.Error("Cleanup export_memos error: %v", err)
	}

	d.Logger.Info("Cleanup completed")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
