package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send initial snapshot of recent audit entries on connect
			client.send <- &models.MLiveUpdate{
				Type:           "INITIAL",
				Entries:        s.AuditBuf.GetAll(),
				DatasetVersion: s.Dataset.Version(),
				Timestamp:      time.Now().Unix(),
			}

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case message := <-s.broadcast:
			// Broadcast to all clients, honoring per-client ticker filters
			for client := range s.clients {
				if !client.wants(message) {
					continue
				}
				select {
				case client.send <- message:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					// This ensures reliable 24/7 operation by pruning dead/slow consumers
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// BroadcastAudit pushes one mirrored audit entry to connected clients.
func (s *APIServer) BroadcastAudit(entry models.MAuditEntry) {
	update := &models.MLiveUpdate{
		Type:           "UPDATE",
		Entries:        []models.MAuditEntry{entry},
		DatasetVersion: s.Dataset.Version(),
		Timestamp:      time.Now().Unix(),
	}

	// Non-blocking send: the 256-slot buffer absorbs bursts; a full queue
	// means the hub is wedged and dropping is better than blocking a handler.
	select {
	case s.broadcast <- update:
	default:
		s.Logger.Warning("Broadcast queue full, dropping audit update")
	}
}

// -----------------------------------------------------------------------------

// NotifyDatasetVersion announces a dataset reload to all listeners.
func (s *APIServer) NotifyDatasetVersion(version string) {
	update := &models.MLiveUpdate{
		Type:           "UPDATE",
		Entries:        []models.MAuditEntry{},
		DatasetVersion: version,
		Timestamp:      time.Now().Unix(),
	}

	select {
	case s.broadcast <- update:
	default:
		s.Logger.Warning("Broadcast queue full, dropping dataset notice")
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MLiveUpdate, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	client.setTickerFilter(cmd.Ticker)

	// Re-send a snapshot scoped to the new filter
	response := &models.MLiveUpdate{
		Type:           "INITIAL",
		Entries:        filterEntries(s.AuditBuf.GetAll(), cmd.Ticker),
		DatasetVersion: s.Dataset.Version(),
		Timestamp:      time.Now().Unix(),
	}

	// Use select to avoid blocking if client's send buffer is full
	select {
	case client.send <- response:
	default:
	}
}

// -----------------------------------------------------------------------------

// filterEntries keeps entries matching the ticker; empty ticker keeps all.
func filterEntries(entries []models.MAuditEntry, ticker string) []models.MAuditEntry {
	if ticker == "" {
		return entries
	}
	out := make([]models.MAuditEntry, 0, len(entries))
	for _, e := range entries {
		if e.Ticker == ticker {
			out = append(out, e)
		}
	}
	return out
}
