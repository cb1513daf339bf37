// Package reconciler applies alert submissions to the workbook.
//
// Upsert policy: the submission tab is scanned in full, and every row whose
// (area, city) equals the submission's has its alert type and description
// overwritten; when nothing matches, exactly one new row is appended. The
// one-to-many key collision is allowed and affects all matches. Workbook
// failures degrade to a bounded in-process fallback list and the caller is
// still acknowledged.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/couchcryptid/disaster-alert-service/internal/store"
)

// Publisher emits accepted submissions to an event stream. Optional.
type Publisher interface {
	Publish(ctx context.Context, ack domain.SubmissionAck) error
}

// Reconciler validates submissions and reconciles them against the workbook.
type Reconciler struct {
	store    store.Tabular
	fallback *Fallback
	events   Publisher
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Reconciler. events may be nil to disable publishing.
func New(s store.Tabular, fallback *Fallback, events Publisher, logger *slog.Logger, metrics *observability.Metrics) *Reconciler {
	return &Reconciler{
		store:    s,
		fallback: fallback,
		events:   events,
		logger:   logger,
		metrics:  metrics,
	}
}

// Submit validates a submission, applies it to the workbook, and returns the
// acknowledgment. Validation failures are the only errors surfaced to the
// caller: workbook failures are logged, diverted to the fallback list, and
// still acknowledged as success.
func (r *Reconciler) Submit(ctx context.Context, sub domain.AlertSubmission) (domain.SubmissionAck, error) {
	if err := sub.Validate(); err != nil {
		return domain.SubmissionAck{}, err
	}

	ack := domain.NewAck(sub)

	if err := r.apply(ctx, sub); err != nil {
		r.logger.Warn("workbook write failed, recording submission locally",
			"error", err, "city", sub.City, "area", sub.Area)
		r.fallback.Push(ack)
		r.metrics.FallbackAppends.Inc()
	} else {
		r.publish(ctx, ack)
	}

	r.metrics.SubmissionsTotal.Inc()
	return ack, nil
}

// apply performs the scan-and-reconcile pass. The per-match cell updates are
// independent writes: an error partway through leaves earlier matches updated.
func (r *Reconciler) apply(ctx context.Context, sub domain.AlertSubmission) error {
	rows, err := r.store.Rows(ctx, store.TabSubmissions)
	if err != nil {
		return fmt.Errorf("read submissions: %w", err)
	}

	var matches []int
	for i := 1; i < len(rows); i++ { // skip header row
		row := rows[i]
		if len(row) <= domain.ColCity {
			continue
		}
		if row[domain.ColArea] == sub.Area && row[domain.ColCity] == sub.City {
			matches = append(matches, i)
		}
	}

	if len(matches) == 0 {
		row := domain.AlertRow{
			PhoneNumber: sub.PhoneNumber,
			Area:        sub.Area,
			City:        sub.City,
			AlertType:   sub.AlertType,
			Description: sub.Description,
		}
		if err := r.store.Append(ctx, store.TabSubmissions, row.Cells()); err != nil {
			return fmt.Errorf("append submission: %w", err)
		}
		r.metrics.RowsAppended.Inc()
		r.logger.Info("appended submission row", "city", sub.City, "area", sub.Area)
		return nil
	}

	for _, i := range matches {
		if err := r.store.UpdateCell(ctx, store.TabSubmissions, i, domain.ColAlertType, sub.AlertType); err != nil {
			return fmt.Errorf("update alert type at row %d: %w", i, err)
		}
		if err := r.store.UpdateCell(ctx, store.TabSubmissions, i, domain.ColDescription, sub.Description); err != nil {
			return fmt.Errorf("update description at row %d: %w", i, err)
		}
		r.metrics.RowsUpdated.Inc()
	}
	r.logger.Info("updated matching submission rows",
		"count", len(matches), "city", sub.City, "area", sub.Area)
	return nil
}

// publish emits the acknowledgment best-effort; failures are logged only.
func (r *Reconciler) publish(ctx context.Context, ack domain.SubmissionAck) {
	if r.events == nil {
		return
	}
	if err := r.events.Publish(ctx, ack); err != nil {
		r.logger.Warn("publish submission event failed", "error", err)
		r.metrics.PublishErrors.Inc()
		return
	}
	r.metrics.EventsPublished.Inc()
}

// CheckReadiness reports whether the submission tab is reachable.
func (r *Reconciler) CheckReadiness(ctx context.Context) error {
	if _, err := r.store.Rows(ctx, store.TabSubmissions); err != nil {
		return fmt.Errorf("submission store unavailable: %w", err)
	}
	return nil
}
