package interfaces

import "narrative-observer/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for pushing live updates to
// connected dashboard clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// BroadcastAudit pushes one mirrored audit entry to all listeners.
	BroadcastAudit(entry models.MAuditEntry)

	// -----------------------------------------------------------------------------
	// NotifyDatasetVersion announces a dataset reload to all listeners.
	NotifyDatasetVersion(version string)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
