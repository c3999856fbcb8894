package models

// -----------------------------------------------------------------------------

// MAuditEntry is one user action mirrored from the dashboard's local
// audit log. The browser remains the primary record; the server copy
// exists for recordkeeping and live observation.
type MAuditEntry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
	Action    string `json:"action"` // e.g. "view_event", "toggle_client_safe", "export_memo"
	Ticker    string `json:"ticker"`
	EventID   string `json:"event_id"`
	Detail    string `json:"detail"`
}

// -----------------------------------------------------------------------------
// Live feed structures pushed over the websocket
// -----------------------------------------------------------------------------

type MLiveUpdate struct {
	Type           string        `json:"type"` // "INITIAL" or "UPDATE"
	Entries        []MAuditEntry `json:"entries"`
	DatasetVersion string        `json:"dataset_version"`
	Timestamp      int64         `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// MSubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string `json:"command"`
	Ticker  string `json:"ticker"`
}
