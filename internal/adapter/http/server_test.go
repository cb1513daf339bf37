package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/disaster-alert-service/internal/adapter/http"
	"github.com/couchcryptid/disaster-alert-service/internal/alertqueue"
	"github.com/couchcryptid/disaster-alert-service/internal/directory"
	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/feed"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/couchcryptid/disaster-alert-service/internal/reconciler"
	"github.com/couchcryptid/disaster-alert-service/internal/session"
	"github.com/couchcryptid/disaster-alert-service/internal/simulation"
	"github.com/couchcryptid/disaster-alert-service/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	server   *httpadapter.Server
	store    *store.Memory
	session  *session.Session
	queue    *alertqueue.Queue
	fallback *reconciler.Fallback
	clock    *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	clk := clockwork.NewFakeClockAt(fixedTime)

	m := store.Seeded()
	fallback := reconciler.NewFallback(100)
	rec := reconciler.New(m, fallback, nil, logger, metrics)
	adapter := feed.NewAdapter(m, clk, logger)
	sess := session.New(50, clk, logger)
	queue := alertqueue.New(8*time.Second, clk, nil, logger, metrics)
	sim := simulation.New(sess, clk, logger, metrics)

	srv := httpadapter.NewServer(":0", httpadapter.Deps{
		Reconciler: rec,
		Feed:       adapter,
		Directory:  directory.Punjab(),
		Fallback:   fallback,
		Ready:      rec,
		Session:    sess,
		Queue:      queue,
		Simulation: sim,
	}, logger)

	t.Cleanup(sim.Stop)
	return &fixture{server: srv, store: m, session: sess, queue: queue, fallback: fallback, clock: clk}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Disaster Alert API is running", body["message"])
}

func TestCities(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/cities", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	cities, ok := body["cities"].([]any)
	require.True(t, ok)
	assert.Len(t, cities, 20)
	assert.Equal(t, "Amritsar", cities[0])
}

func TestAreas_KnownCity(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/cities/Amritsar/areas", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	areas, ok := body["areas"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, areas)
}

func TestAreas_UnknownCityIsEmptyArrayNotNull(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/cities/Atlantis/areas", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"areas":[]`)
}

func TestSubmitAlert_Success(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/alerts",
		`{"phoneNumber":"9876543210","city":"Ludhiana","area":"Model Town","alertType":"red","description":"flooding"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Alert submitted successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ludhiana", data["city"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "medium", data["severity"], "severity defaults when omitted")

	// Demo mode keeps a local copy of the acknowledgment.
	backup := f.session.SubmissionBackup()
	require.Len(t, backup, 1)
	assert.Equal(t, "Model Town", backup[0].Area)
}

func TestSubmitAlert_MissingFields(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/alerts", `{"description":"flooding"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields: phoneNumber, city, area, alertType", body["error"])
}

func TestSubmitAlert_MalformedBody(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/alerts", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec)["error"])
}

func TestAIAlerts(t *testing.T) {
	f := newFixture(t)
	f.store.Restore(map[string][][]string{
		store.TabAIFeed: {
			{"PubDate", "RiskPercentage", "Title"},
			{"2024-01-01", "85", "Flood"},
		},
	})

	rec := f.do(http.MethodGet, "/api/ai-alerts", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	alerts, ok := body["alerts"].([]any)
	require.True(t, ok)
	require.Len(t, alerts, 1)
	first := alerts[0].(map[string]any)
	assert.Equal(t, "ai-1", first["id"])
	assert.Equal(t, 0.85, first["severity"])
}

func TestAIAlerts_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.store.Restore(map[string][][]string{})

	rec := f.do(http.MethodGet, "/api/ai-alerts", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch AI alerts", decode(t, rec)["error"])
}

func TestSessionAlerts_ResolveFlow(t *testing.T) {
	f := newFixture(t)
	added := f.session.AddAlert(domain.ClientAlert{Title: "Flood"})

	rec := f.do(http.MethodGet, "/api/session/alerts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), added.ID)

	rec = f.do(http.MethodPost, "/api/session/alerts/"+added.ID+"/resolve", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/session/alerts/nope/resolve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Alert not found", decode(t, rec)["error"])
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/statistics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	stats, ok := body["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, stats, "activeAlerts")
	assert.Contains(t, stats, "rescueTeamsActive")
}

func TestHazards_AddAndRemove(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/hazards",
		`{"center":{"lat":31.5,"lng":74.3},"radiusMeters":1200,"label":"flood zone"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	hazard := decode(t, rec)["hazard"].(map[string]any)
	id := hazard["id"].(string)
	require.NotEmpty(t, id)

	rec = f.do(http.MethodGet, "/api/hazards", "")
	assert.Contains(t, rec.Body.String(), id)

	rec = f.do(http.MethodDelete, "/api/hazards/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/hazards/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHazards_RejectsNonPositiveRadius(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/hazards", `{"center":{"lat":1,"lng":2},"radiusMeters":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid hazard area", decode(t, rec)["error"])
}

func TestQueue_EmptyAndShowing(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/queue", "")
	body := decode(t, rec)
	assert.Nil(t, body["current"])
	assert.Equal(t, float64(0), body["queued"])

	f.queue.Enqueue(domain.AIAlertRecord{ID: "ai-1", TitleName: "Flood"})
	rec = f.do(http.MethodGet, "/api/queue", "")
	body = decode(t, rec)
	current, ok := body["current"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(8), current["remaining"])
}

func TestQueue_Dismiss(t *testing.T) {
	f := newFixture(t)
	f.queue.Enqueue(domain.AIAlertRecord{ID: "ai-1", TitleName: "Flood"})

	rec := f.do(http.MethodPost, "/api/queue/dismiss", "")
	assert.Equal(t, true, decode(t, rec)["dismissed"])

	rec = f.do(http.MethodPost, "/api/queue/dismiss", "")
	assert.Equal(t, false, decode(t, rec)["dismissed"])
}

func TestSimulationToggle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/simulation", "")
	assert.Equal(t, true, decode(t, rec)["running"])

	rec = f.do(http.MethodPost, "/api/simulation", "")
	assert.Equal(t, false, decode(t, rec)["running"])
}

func TestFallback(t *testing.T) {
	f := newFixture(t)
	f.fallback.Push(domain.SubmissionAck{City: "Amritsar", Area: "Ranjit Avenue"})

	rec := f.do(http.MethodGet, "/api/fallback", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ranjit Avenue")
}

func TestPreferences_RoundTrip(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPut, "/api/preferences", `{"theme":"light","fontScale":1.25,"toggles":{"sound":true}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/preferences", "")
	prefs := decode(t, rec)["preferences"].(map[string]any)
	assert.Equal(t, "light", prefs["theme"])
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["error"])
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// A server missing its directory dependency panics on /api/cities; the
	// middleware must convert that into a generic 500.
	srv := httpadapter.NewServer(":0", httpadapter.Deps{}, logger)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cities", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Something went wrong", body["error"])
}

func TestReadyz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
