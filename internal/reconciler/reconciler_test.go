package reconciler_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/couchcryptid/disaster-alert-service/internal/reconciler"
	"github.com/couchcryptid/disaster-alert-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReconciler(s store.Tabular, events reconciler.Publisher) (*reconciler.Reconciler, *reconciler.Fallback) {
	fb := reconciler.NewFallback(100)
	r := reconciler.New(s, fb, events, discardLogger(), observability.NewMetricsForTesting())
	return r, fb
}

func submission() domain.AlertSubmission {
	return domain.AlertSubmission{
		PhoneNumber: "9876543210",
		City:        "Amritsar",
		Area:        "Hall Bazaar",
		AlertType:   "red",
		Description: "flooding near market",
	}
}

// countingStore wraps a Memory store and counts accesses.
type countingStore struct {
	*store.Memory
	reads int
}

func (c *countingStore) Rows(ctx context.Context, tab string) ([][]string, error) {
	c.reads++
	return c.Memory.Rows(ctx, tab)
}

// failingStore fails every operation, simulating an unreachable workbook.
type failingStore struct{}

func (failingStore) Rows(context.Context, string) ([][]string, error) {
	return nil, errors.New("upstream unavailable")
}
func (failingStore) Append(context.Context, string, []string) error {
	return errors.New("upstream unavailable")
}
func (failingStore) UpdateCell(context.Context, string, int, int, string) error {
	return errors.New("upstream unavailable")
}

// mockPublisher records published acks.
type mockPublisher struct {
	acks []domain.SubmissionAck
	err  error
}

func (m *mockPublisher) Publish(_ context.Context, ack domain.SubmissionAck) error {
	if m.err != nil {
		return m.err
	}
	m.acks = append(m.acks, ack)
	return nil
}

func TestSubmit_NoMatchAppendsExactlyOneRow(t *testing.T) {
	m := store.Seeded()
	r, fb := newReconciler(m, nil)
	ctx := context.Background()

	ack, err := r.Submit(ctx, submission())
	require.NoError(t, err)
	assert.Equal(t, "pending", ack.Status)
	assert.Equal(t, domain.SeverityMedium, ack.Severity)

	rows, err := m.Rows(ctx, store.TabSubmissions)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus exactly one appended row")
	assert.Equal(t, []string{"9876543210", "Hall Bazaar", "Amritsar", "red", "flooding near market"}, rows[1])
	assert.Zero(t, fb.Len())
}

func TestSubmit_UpdatesEveryMatchingRow(t *testing.T) {
	m := store.Seeded()
	ctx := context.Background()
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"111", "Hall Bazaar", "Amritsar", "yellow", "old one"}))
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"222", "Model Town", "Ludhiana", "yellow", "unrelated"}))
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"333", "Hall Bazaar", "Amritsar", "yellow", "old two"}))

	r, _ := newReconciler(m, nil)
	_, err := r.Submit(ctx, submission())
	require.NoError(t, err)

	rows, err := m.Rows(ctx, store.TabSubmissions)
	require.NoError(t, err)
	require.Len(t, rows, 4, "no new row appended when matches exist")

	// Both matching rows rewritten; phone numbers untouched.
	assert.Equal(t, []string{"111", "Hall Bazaar", "Amritsar", "red", "flooding near market"}, rows[1])
	assert.Equal(t, []string{"333", "Hall Bazaar", "Amritsar", "red", "flooding near market"}, rows[3])
	// Non-matching row untouched.
	assert.Equal(t, []string{"222", "Model Town", "Ludhiana", "yellow", "unrelated"}, rows[2])
}

func TestSubmit_MatchIsCaseSensitiveOnBothFields(t *testing.T) {
	m := store.Seeded()
	ctx := context.Background()
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"111", "hall bazaar", "Amritsar", "yellow", ""}))
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"222", "Hall Bazaar", "amritsar", "yellow", ""}))

	r, _ := newReconciler(m, nil)
	_, err := r.Submit(ctx, submission())
	require.NoError(t, err)

	rows, err := m.Rows(ctx, store.TabSubmissions)
	require.NoError(t, err)
	require.Len(t, rows, 4, "neither near-miss matched; a new row was appended")
}

func TestSubmit_EmptyDescriptionStoredAsEmptyString(t *testing.T) {
	m := store.Seeded()
	ctx := context.Background()
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"111", "Hall Bazaar", "Amritsar", "yellow", "stale"}))

	sub := submission()
	sub.Description = ""
	r, _ := newReconciler(m, nil)
	_, err := r.Submit(ctx, sub)
	require.NoError(t, err)

	rows, err := m.Rows(ctx, store.TabSubmissions)
	require.NoError(t, err)
	assert.Equal(t, "", rows[1][domain.ColDescription])
}

func TestSubmit_ValidationRejectsBeforeStoreAccess(t *testing.T) {
	cs := &countingStore{Memory: store.Seeded()}
	r, fb := newReconciler(cs, nil)

	sub := domain.AlertSubmission{PhoneNumber: "1", City: "", Area: "X", AlertType: "red"}
	_, err := r.Submit(context.Background(), sub)

	require.Error(t, err)
	assert.True(t, domain.IsMissingFields(err))
	assert.Zero(t, cs.reads, "validation failure must not touch the store")
	assert.Zero(t, fb.Len())
}

func TestSubmit_StoreFailureDegradesToFallbackAndStillAcks(t *testing.T) {
	r, fb := newReconciler(failingStore{}, nil)

	ack, err := r.Submit(context.Background(), submission())
	require.NoError(t, err, "store failure must not surface to the caller")
	assert.Equal(t, "pending", ack.Status)

	require.Equal(t, 1, fb.Len())
	assert.Equal(t, ack, fb.Snapshot()[0])
}

func TestSubmit_SkipsShortRowsWhileScanning(t *testing.T) {
	m := store.Seeded()
	ctx := context.Background()
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"only-phone"}))
	require.NoError(t, m.Append(ctx, store.TabSubmissions, []string{"111", "Hall Bazaar", "Amritsar"}))

	r, _ := newReconciler(m, nil)
	_, err := r.Submit(ctx, submission())
	require.NoError(t, err)

	rows, err := m.Rows(ctx, store.TabSubmissions)
	require.NoError(t, err)
	require.Len(t, rows, 3, "the three-cell row matched and was updated in place")
	assert.Equal(t, "red", rows[2][domain.ColAlertType])
}

func TestSubmit_PublishesAcceptedSubmissions(t *testing.T) {
	pub := &mockPublisher{}
	r, _ := newReconciler(store.Seeded(), pub)

	ack, err := r.Submit(context.Background(), submission())
	require.NoError(t, err)

	require.Len(t, pub.acks, 1)
	assert.Equal(t, ack, pub.acks[0])
}

func TestSubmit_PublishFailureIsSwallowed(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	r, fb := newReconciler(store.Seeded(), pub)

	_, err := r.Submit(context.Background(), submission())
	require.NoError(t, err)
	assert.Zero(t, fb.Len(), "publish failure is not a workbook failure")
}

func TestCheckReadiness(t *testing.T) {
	r, _ := newReconciler(store.Seeded(), nil)
	require.NoError(t, r.CheckReadiness(context.Background()))

	bad, _ := newReconciler(failingStore{}, nil)
	require.Error(t, bad.CheckReadiness(context.Background()))
}

func TestFallback_BoundAndOrder(t *testing.T) {
	fb := reconciler.NewFallback(3)

	for i := 0; i < 5; i++ {
		fb.Push(domain.SubmissionAck{PhoneNumber: fmt.Sprintf("phone-%d", i)})
	}

	require.Equal(t, 3, fb.Len())
	snap := fb.Snapshot()
	assert.Equal(t, "phone-4", snap[0].PhoneNumber, "newest first")
	assert.Equal(t, "phone-2", snap[2].PhoneNumber, "oldest surviving entry")
}

func TestFallback_SnapshotIsCopy(t *testing.T) {
	fb := reconciler.NewFallback(10)
	fb.Push(domain.SubmissionAck{PhoneNumber: "1"})

	snap := fb.Snapshot()
	snap[0].PhoneNumber = "mutated"

	assert.Equal(t, "1", fb.Snapshot()[0].PhoneNumber)
}
