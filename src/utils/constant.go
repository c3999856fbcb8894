package utils

// -----------------------------------------------------------------------------

// Defaults for the in-memory audit mirror. The buffer only feeds the
// live websocket snapshot; durable history lives in the database.
const (
	DefaultAuditBufferSize = 200
	DefaultAuditRetention  = 90
)

// Known audit actions mirrored from the dashboard.
const (
	ActionViewEvent        = "view_event"
	ActionToggleClientSafe = "toggle_client_safe"
	ActionExportMemo       = "export_memo"
)
