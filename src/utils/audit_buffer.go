package utils

import (
	"sync"

	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------
// AuditBuffer is a fixed-size circular buffer of audit entries.
// True ring buffer - no resizing allowed!
// -----------------------------------------------------------------------------

type AuditBuffer struct {
	mu       sync.RWMutex
	data     []models.MAuditEntry
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewAuditBuffer creates a new buffer with fixed capacity
func NewAuditBuffer(capacity int) *AuditBuffer {
	if capacity <= 0 {
		capacity = 200 // Default reasonable size
	}

	return &AuditBuffer{
		data:     make([]models.MAuditEntry, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append adds one entry, overwriting the oldest when full.
func (ab *AuditBuffer) Append(entry models.MAuditEntry) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	ab.data[ab.index] = entry
	ab.index = (ab.index + 1) % ab.capacity

	if ab.size < ab.capacity {
		ab.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns up to n newest entries, oldest of those first.
func (ab *AuditBuffer) GetLatest(n int) []models.MAuditEntry {
	ab.mu.RLock()
	defer ab.mu.RUnlock()

	if ab.size == 0 || n <= 0 {
		return []models.MAuditEntry{}
	}

	count := n
	if n > ab.size {
		count = ab.size
	}

	result := make([]models.MAuditEntry, count)
	startIdx := (ab.index - count + ab.capacity) % ab.capacity

	for i := 0; i < count; i++ {
		result[i] = ab.data[(startIdx+i)%ab.capacity]
	}

	return result
}

// -----------------------------------------------------------------------------

// GetAll returns all entries in insertion order (oldest to newest)
func (ab *AuditBuffer) GetAll() []models.MAuditEntry {
	ab.mu.RLock()
	defer ab.mu.RUnlock()

	if ab.size == 0 {
		return []models.MAuditEntry{}
	}

	result := make([]models.MAuditEntry, ab.size)

	startIdx := 0
	if ab.size == ab.capacity {
		startIdx = ab.index
	}

	for i := 0; i < ab.size; i++ {
		result[i] = ab.data[(startIdx+i)%ab.capacity]
	}

	return result
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (ab *AuditBuffer) Size() int {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (ab *AuditBuffer) Capacity() int {
	return ab.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (ab *AuditBuffer) Clear() {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.index = 0
	ab.size = 0
}
