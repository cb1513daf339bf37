// Package simulation feeds the session with synthetic disaster activity so the
// demo dashboard moves without real traffic.
package simulation

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/couchcryptid/disaster-alert-service/internal/session"
	"github.com/jonboulle/clockwork"
)

const (
	alertIntervalMin  = 15 * time.Second
	alertIntervalSpan = 15 * time.Second
	statsInterval     = 8 * time.Second

	rescueTeamsMin = 8
	rescueTeamsMax = 20
)

// scenario is a template for a generated alert. Coordinates and severity are
// jittered per event.
type scenario struct {
	title       string
	category    domain.Category
	location    domain.Location
	severity    float64
	description string
}

var scenarios = []scenario{
	{
		title:       "Flash Flood Alert",
		category:    domain.CategoryCritical,
		location:    domain.Location{Lat: 31.6340, Lng: 74.8723, Name: "Amritsar"},
		severity:    0.9,
		description: "Heavy rainfall causing rapid water accumulation in low-lying areas",
	},
	{
		title:       "Riverine Flooding",
		category:    domain.CategoryCritical,
		location:    domain.Location{Lat: 31.3260, Lng: 75.5762, Name: "Jalandhar"},
		severity:    0.85,
		description: "Sutlej tributaries overflowing, embankment breach reported",
	},
	{
		title:       "Heatwave Advisory",
		category:    domain.CategoryWarning,
		location:    domain.Location{Lat: 30.2110, Lng: 74.9455, Name: "Bathinda"},
		severity:    0.65,
		description: "Extreme temperatures forecast, heatstroke risk for outdoor workers",
	},
	{
		title:       "Severe Thunderstorm",
		category:    domain.CategoryWarning,
		location:    domain.Location{Lat: 30.9010, Lng: 75.8573, Name: "Ludhiana"},
		severity:    0.6,
		description: "Strong winds and hail expected within the hour",
	},
	{
		title:       "Urban Drainage Overflow",
		category:    domain.CategoryWarning,
		location:    domain.Location{Lat: 30.3398, Lng: 76.3869, Name: "Patiala"},
		severity:    0.55,
		description: "Storm drains at capacity, adjacent streets waterlogged",
	},
	{
		title:       "Relief Convoy Dispatched",
		category:    domain.CategoryInfo,
		location:    domain.Location{Lat: 30.2458, Lng: 75.8421, Name: "Sangrur"},
		severity:    0.3,
		description: "Supply convoy en route to affected villages",
	},
	{
		title:       "Evacuation Completed",
		category:    domain.CategorySuccess,
		location:    domain.Location{Lat: 30.7046, Lng: 76.7179, Name: "Mohali"},
		severity:    0.2,
		description: "Riverside settlement cleared, residents moved to shelters",
	},
}

// Generator periodically injects scenario-based alerts and drifts the
// dashboard statistics. One alert goroutine and one statistics goroutine run
// while the generator is on; Stop waits for both, so no session writes happen
// after it returns.
type Generator struct {
	session *session.Session
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	rng     *rand.Rand
	next    int
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a stopped Generator.
func New(sess *session.Session, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	return &Generator{
		session: sess,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		rng:     rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

// Start launches the alert and statistics loops. No-op when already running.
func (g *Generator) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.running = true
	g.metrics.SimulationRunning.Set(1)
	g.logger.Info("simulation started")

	g.wg.Add(2)
	go g.alertLoop(ctx)
	go g.statsLoop(ctx)
}

// Stop halts both loops and waits for them to exit. After Stop returns the
// generator produces no further session writes. No-op when already stopped.
func (g *Generator) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	cancel := g.cancel
	g.cancel = nil
	g.mu.Unlock()

	cancel()
	g.wg.Wait()
	g.metrics.SimulationRunning.Set(0)
	g.logger.Info("simulation stopped")
}

// Running reports whether the loops are active.
func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Toggle flips the generator state and returns the new one.
func (g *Generator) Toggle() bool {
	if g.Running() {
		g.Stop()
		return false
	}
	g.Start()
	return true
}

func (g *Generator) alertLoop(ctx context.Context) {
	defer g.wg.Done()

	timer := g.clock.NewTimer(g.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			g.emitAlert()
			timer.Reset(g.nextInterval())
		}
	}
}

func (g *Generator) statsLoop(ctx context.Context) {
	defer g.wg.Done()

	ticker := g.clock.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			g.driftStats()
		}
	}
}

func (g *Generator) emitAlert() {
	g.mu.Lock()
	sc := scenarios[g.next%len(scenarios)]
	g.next++
	alert := domain.ClientAlert{
		Title:    sc.title,
		Category: sc.category,
		Location: domain.Location{
			Lat:  sc.location.Lat + jitter(g.rng, 0.05),
			Lng:  sc.location.Lng + jitter(g.rng, 0.05),
			Name: sc.location.Name,
		},
		Severity:    clamp(sc.severity+jitter(g.rng, 0.1), 0.1, 1),
		Description: sc.description,
	}
	bumpRescue := g.rng.Float64() < 0.3
	bumpRelief := g.rng.Float64() < 0.2
	evacuated := 20 + g.rng.Intn(100)
	g.mu.Unlock()

	added := g.session.AddAlert(alert)
	g.session.UpdateStatistics(func(st *domain.Statistics) {
		st.ActiveAlerts++
		if bumpRescue && st.RescueTeamsActive < rescueTeamsMax {
			st.RescueTeamsActive++
		}
		if bumpRelief {
			st.ReliefDispatched++
		}
		st.PeopleEvacuated += evacuated
	})

	g.metrics.SimulationEvents.Inc()
	g.logger.Debug("simulation alert emitted", "id", added.ID, "title", added.Title, "severity", added.Severity)
}

func (g *Generator) driftStats() {
	g.mu.Lock()
	teamDelta := g.rng.Intn(3) - 1
	evacuated := 10 + g.rng.Intn(50)
	g.mu.Unlock()

	g.session.UpdateStatistics(func(st *domain.Statistics) {
		st.RescueTeamsActive = clampInt(st.RescueTeamsActive+teamDelta, rescueTeamsMin, rescueTeamsMax)
		st.PeopleEvacuated += evacuated
	})
}

func (g *Generator) nextInterval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return alertIntervalMin + time.Duration(g.rng.Int63n(int64(alertIntervalSpan)))
}

// jitter returns a uniform value in [-span, span].
func jitter(rng *rand.Rand, span float64) float64 {
	return (rng.Float64()*2 - 1) * span
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
