package interfaces

import "narrative-observer/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for recordkeeping storage.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveAuditEntriesBulk inserts a batch of mirrored audit entries.
	SaveAuditEntriesBulk(entries []models.MAuditEntry) error

	// -----------------------------------------------------------------------------

	// SaveExportRecord persists the trace of a generated memo.
	SaveExportRecord(record models.MExportRecord) error

	// -----------------------------------------------------------------------------

	// ListRecentAuditEntries returns the newest entries, up to limit.
	ListRecentAuditEntries(limit int) ([]models.MAuditEntry, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes records older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
