package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) createTables() error {
	// Recordkeeping tables survive restarts, so create rather than recreate.
	query := `
		CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			ts INTEGER,
			action TEXT,
			ticker TEXT,
			event_id TEXT,
			detail TEXT
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create audit_log: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS export_memos (
			id TEXT PRIMARY KEY,
			ticker TEXT,
			event_id TEXT,
			filename TEXT,
			created_at INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create export_memos: %w", err)
	}

	if _, err := d.DB.Exec("CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit_log(ts);"); err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) SaveAuditEntriesBulk(entries []models.MAuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO audit_log (id, ts, action, ticker, event_id, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
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

func (d *AsyncSQLiteDB) SaveExportRecord(record models.MExportRecord) error {
	_, err := d.DB.Exec(`
		INSERT INTO export_memos (id, ticker, event_id, filename, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.Ticker, record.EventID, record.Filename, record.CreatedAt)
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) ListRecentAuditEntries(limit int) ([]models.MAuditEntry, error) {
	rows, err := d.DB.Query(`
		SELECT id, ts, action, ticker, event_id, detail
		FROM audit_log
		ORDER BY ts DESC
		LIMIT ?
	`, limit)
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

func (d *AsyncSQLiteDB) CleanupOldData() error {
	retentionDays := d.Config.Audit.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	d.Logger.Info("Cleaning up records older than %d days (ts < %d)...", retentionDays, cutoff)

	if _, err := d.DB.Exec("DELETE FROM audit_log WHERE ts < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup audit_log error: %v", err)
	}
	if _, err := d.DB.Exec("DELETE FROM export_memos WHERE created_at < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup export_memos error: %v", err)
	}

	d.Logger.Info("Cleanup completed")
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
