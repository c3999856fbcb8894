package storage

import (
	"path/filepath"
	"testing"
	"time"

	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

func newTestDB(t *testing.T) *AsyncSQLiteDB {
	t.Helper()

	cfg := &models.MConfig{
		Storage: models.MStorageConfig{
			DBType: "sqlite",
			DBPath: filepath.Join(t.TempDir(), "test.db"),
		},
		Audit: models.MAuditConfig{RetentionDays: 30},
	}

	db, err := NewAsyncSQLiteDB(cfg, logger.NewLogger(nil, "test"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// -----------------------------------------------------------------------------

func TestSaveAndListAuditEntries(t *testing.T) {
	db := newTestDB(t)

	now := time.Now().Unix()
	entries := []models.MAuditEntry{
		{ID: "a1", Timestamp: now - 10, Action: "view_event", Ticker: "ACME", EventID: "e1", Detail: "x"},
		{ID: "a2", Timestamp: now, Action: "export_memo", Ticker: "ACME", EventID: "e1", Detail: "y"},
	}
	if err := db.SaveAuditEntriesBulk(entries); err != nil {
		t.Fatalf("save bulk: %v", err)
	}

	got, err := db.ListRecentAuditEntries(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != "a2" || got[1].ID != "a1" {
		t.Errorf("order = [%s, %s], want [a2, a1]", got[0].ID, got[1].ID)
	}
}

func TestSaveAuditEntriesIdempotentOnID(t *testing.T) {
	db := newTestDB(t)

	entry := models.MAuditEntry{ID: "a1", Timestamp: 100, Action: "view_event"}
	if err := db.SaveAuditEntriesBulk([]models.MAuditEntry{entry, entry}); err != nil {
		t.Fatalf("save bulk with duplicate: %v", err)
	}

	got, err := db.ListRecentAuditEntries(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("entries = %d, want 1 (duplicate id ignored)", len(got))
	}
}

func TestSaveAuditEntriesEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	if err := db.SaveAuditEntriesBulk(nil); err != nil {
		t.Errorf("empty batch: %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestSaveExportRecord(t *testing.T) {
	db := newTestDB(t)

	rec := models.MExportRecord{
		ID: "r1", Ticker: "ACME", EventID: "e1",
		Filename: "ACME_e1_analysis_20250315.md", CreatedAt: time.Now().Unix(),
	}
	if err := db.SaveExportRecord(rec); err != nil {
		t.Fatalf("save record: %v", err)
	}

	var count int
	if err := db.DB.QueryRow("SELECT COUNT(*) FROM export_memos").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("export_memos rows = %d, want 1", count)
	}
}

// -----------------------------------------------------------------------------

func TestCleanupOldData(t *testing.T) {
	db := newTestDB(t)

	now := time.Now().Unix()
	old := now - 400*86400

	entries := []models.MAuditEntry{
		{ID: "old", Timestamp: old, Action: "view_event"},
		{ID: "new", Timestamp: now, Action: "view_event"},
	}
	if err := db.SaveAuditEntriesBulk(entries); err != nil {
		t.Fatalf("save bulk: %v", err)
	}

	if err := db.CleanupOldData(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	got, err := db.ListRecentAuditEntries(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("after cleanup = %+v, want only the recent entry", got)
	}
}
