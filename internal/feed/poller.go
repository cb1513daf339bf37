package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Sink receives normalized feed records. Enqueue reports whether the record
// was accepted (false for duplicates or already-resolved records).
type Sink interface {
	Enqueue(record domain.AIAlertRecord) bool
}

// Poller fetches the AI-alerts feed on a fixed interval and forwards records
// to a sink. A single loop issues the polls, so cycles never overlap; reads
// are idempotent, so a slow cycle is benign.
type Poller struct {
	adapter  *Adapter
	sink     Sink
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewPoller creates a Poller.
func NewPoller(adapter *Adapter, sink Sink, interval time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		adapter:  adapter,
		sink:     sink,
		interval: interval,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run polls immediately, then on every tick, until the context is cancelled.
// Poll failures are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("feed poller started", "interval", p.interval)

	p.poll(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("feed poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	records, err := p.adapter.AIAlerts(ctx)
	if err != nil {
		p.logger.Warn("feed poll failed", "error", err)
		p.metrics.FeedPolls.WithLabelValues("error").Inc()
		return
	}

	accepted := 0
	for _, rec := range records {
		if p.sink.Enqueue(rec) {
			accepted++
		}
	}

	p.metrics.FeedPolls.WithLabelValues("success").Inc()
	p.metrics.FeedRecords.Observe(float64(len(records)))
	if accepted > 0 {
		p.logger.Debug("feed poll enqueued alerts", "records", len(records), "accepted", accepted)
	}
}
