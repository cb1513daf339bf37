// Package alertqueue holds the rolling display queue for freshly observed
// alerts.
//
// Each alert moves queued -> showing -> dismissed. Exactly one alert shows at
// a time; promotion is FIFO. A showing alert counts down once per second from
// the display TTL, and reaching zero, an explicit dismiss, and an explicit
// respond all converge on the same dismissal path. Ingestion is idempotent: an
// alert id is queued at most once per queue lifetime, and already-resolved
// records are never queued.
package alertqueue

import (
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// clearDelay holds the dismissed alert briefly before the next one is
// promoted. Cosmetic, reserved for the exit animation.
const clearDelay = 300 * time.Millisecond

// Queue is the one-at-a-time alert display state machine.
type Queue struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	displayTTL time.Duration
	onRespond  func(domain.AIAlertRecord)
	logger     *slog.Logger
	metrics    *observability.Metrics

	seen    map[string]struct{}
	pending []domain.AIAlertRecord
	current *display
}

// display tracks the showing alert and its single countdown timer. The timer
// is cancelled on explicit dismissal so no ticks outlive the alert.
type display struct {
	record     domain.AIAlertRecord
	remaining  int
	timer      clockwork.Timer
	dismissing bool
}

// New creates a Queue. onRespond may be nil; when set it receives the shown
// record whenever a respond action dismisses it.
func New(displayTTL time.Duration, clock clockwork.Clock, onRespond func(domain.AIAlertRecord), logger *slog.Logger, metrics *observability.Metrics) *Queue {
	if displayTTL < time.Second {
		displayTTL = time.Second
	}
	return &Queue{
		clock:      clock,
		displayTTL: displayTTL,
		onRespond:  onRespond,
		logger:     logger,
		metrics:    metrics,
		seen:       make(map[string]struct{}),
	}
}

// Enqueue offers a record to the queue. Returns false for already-resolved
// records and ids seen before; otherwise the record is queued and, if nothing
// is showing, promoted immediately.
func (q *Queue) Enqueue(rec domain.AIAlertRecord) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if rec.Resolved {
		return false
	}
	if _, ok := q.seen[rec.ID]; ok {
		return false
	}
	q.seen[rec.ID] = struct{}{}
	q.pending = append(q.pending, rec)
	q.promoteLocked()
	q.metrics.QueueDepth.Set(float64(len(q.pending)))
	return true
}

// Current returns the showing record and its remaining seconds. ok is false
// when nothing is showing or the shown alert is mid-dismissal.
func (q *Queue) Current() (rec domain.AIAlertRecord, remaining int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.current == nil || q.current.dismissing {
		return domain.AIAlertRecord{}, 0, false
	}
	return q.current.record, q.current.remaining, true
}

// QueueLength returns the number of alerts waiting behind the shown one.
func (q *Queue) QueueLength() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dismiss dismisses the showing alert. Returns false when nothing is showing.
func (q *Queue) Dismiss() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.current == nil || q.current.dismissing {
		return false
	}
	q.dismissLocked()
	return true
}

// Respond reports the showing alert to the respond callback and dismisses it.
func (q *Queue) Respond() bool {
	q.mu.Lock()
	if q.current == nil || q.current.dismissing {
		q.mu.Unlock()
		return false
	}
	rec := q.current.record
	q.dismissLocked()
	q.mu.Unlock()

	if q.onRespond != nil {
		q.onRespond(rec)
	}
	return true
}

// promoteLocked moves the next pending alert into the showing slot if it is
// free, and arms its countdown.
func (q *Queue) promoteLocked() {
	if q.current != nil || len(q.pending) == 0 {
		return
	}

	rec := q.pending[0]
	q.pending = q.pending[1:]
	q.current = &display{
		record:    rec,
		remaining: int(q.displayTTL / time.Second),
	}
	q.current.timer = q.clock.AfterFunc(time.Second, q.tick)
	q.metrics.AlertsDisplayed.Inc()
	q.metrics.QueueDepth.Set(float64(len(q.pending)))
	q.logger.Debug("alert showing", "id", rec.ID, "title", rec.TitleName)
}

// tick decrements the countdown and dismisses at zero.
func (q *Queue) tick() {
	q.mu.Lock()
	defer q.mu.Unlock()

	cur := q.current
	if cur == nil || cur.dismissing {
		return
	}
	cur.remaining--
	if cur.remaining <= 0 {
		q.dismissLocked()
		return
	}
	cur.timer = q.clock.AfterFunc(time.Second, q.tick)
}

// dismissLocked cancels the countdown and schedules the clear after the
// cosmetic delay. Idempotent per shown alert: countdown expiry, Dismiss, and
// Respond all land here and only the first takes effect.
func (q *Queue) dismissLocked() {
	cur := q.current
	cur.dismissing = true
	if cur.timer != nil {
		cur.timer.Stop()
	}
	q.logger.Debug("alert dismissed", "id", cur.record.ID)
	q.clock.AfterFunc(clearDelay, q.clear)
}

// clear frees the showing slot and promotes the next queued alert.
func (q *Queue) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.current = nil
	q.promoteLocked()
}
