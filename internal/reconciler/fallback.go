package reconciler

import (
	"sync"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
)

// Fallback is a bounded, newest-first list of acknowledgments whose workbook
// writes failed. When full, the oldest entry is dropped.
type Fallback struct {
	mu       sync.Mutex
	capacity int
	items    []domain.SubmissionAck
}

// NewFallback creates a Fallback holding at most capacity entries.
func NewFallback(capacity int) *Fallback {
	if capacity < 1 {
		capacity = 1
	}
	return &Fallback{capacity: capacity}
}

// Push prepends an acknowledgment, evicting the oldest entry beyond capacity.
func (f *Fallback) Push(ack domain.SubmissionAck) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]domain.SubmissionAck{ack}, f.items...)
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
}

// Snapshot returns a copy of the list, newest first.
func (f *Fallback) Snapshot() []domain.SubmissionAck {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.SubmissionAck, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of stored entries.
func (f *Fallback) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
