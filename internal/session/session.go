// Package session owns the command-center view state: alerts, resources,
// statistics, hazard areas, safety places, the capped submission backup, and
// user preferences.
//
// The container follows a single-writer discipline: every mutation goes
// through an action method under one mutex, and readers receive copies. It is
// the only shared state between the HTTP layer, the alert queue, and the
// simulation generator.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Preferences are the best-effort user display settings.
type Preferences struct {
	Theme     string          `json:"theme"`
	FontScale float64         `json:"fontScale"`
	Toggles   map[string]bool `json:"toggles"`
}

// Session is the owned state container.
type Session struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	logger    *slog.Logger
	backupCap int

	alerts       []domain.ClientAlert
	resources    []domain.Resource
	stats        domain.Statistics
	safetyPlaces []domain.SafetyPlace
	hazards      []domain.HazardArea
	backup       []domain.SubmissionAck
	prefs        Preferences
	selectedID   string
}

// New creates a Session seeded with the demo fixtures.
func New(backupCap int, clock clockwork.Clock, logger *slog.Logger) *Session {
	if backupCap < 1 {
		backupCap = 1
	}
	return &Session{
		clock:     clock,
		logger:    logger,
		backupCap: backupCap,
		alerts:    seedAlerts(clock),
		resources: seedResources(),
		stats:     seedStatistics(),
		prefs:     Preferences{Theme: "dark", FontScale: 1, Toggles: map[string]bool{}},
	}
}

// AddAlert assigns an id and timestamp and prepends the alert. The populated
// alert is returned.
func (s *Session) AddAlert(a domain.ClientAlert) domain.ClientAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = newID()
	a.Timestamp = s.clock.Now().UTC()
	s.alerts = append([]domain.ClientAlert{a}, s.alerts...)
	s.logger.Debug("session alert added", "id", a.ID, "title", a.Title)
	return a
}

// ResolveAlert marks an alert resolved. Idempotent: the statistics shift
// happens only on the first resolution. Returns false for unknown ids.
func (s *Session) ResolveAlert(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID != id {
			continue
		}
		if !s.alerts[i].Resolved {
			s.alerts[i].Resolved = true
			s.stats.ActiveAlerts--
			s.stats.ResolvedToday++
		}
		return true
	}
	return false
}

// Alerts returns a copy of the alert list, newest first.
func (s *Session) Alerts() []domain.ClientAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ClientAlert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// SelectAlert records the selected alert id; empty clears the selection.
func (s *Session) SelectAlert(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected returns the selected alert, if any.
func (s *Session) Selected() (domain.ClientAlert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.alerts {
		if a.ID == s.selectedID {
			return a, true
		}
	}
	return domain.ClientAlert{}, false
}

// UpdateStatistics applies a partial update under the session lock.
func (s *Session) UpdateStatistics(apply func(*domain.Statistics)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.stats)
}

// Statistics returns the current counters.
func (s *Session) Statistics() domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// UpdateResource applies a partial update to one resource by id.
func (s *Session) UpdateResource(id string, apply func(*domain.Resource)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.resources {
		if s.resources[i].ID == id {
			apply(&s.resources[i])
			return true
		}
	}
	return false
}

// Resources returns a copy of the resource list.
func (s *Session) Resources() []domain.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// AddHazardArea assigns an id and prepends the area.
func (s *Session) AddHazardArea(center domain.LatLng, radiusMeters float64, label string) domain.HazardArea {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := domain.HazardArea{
		ID:           newID(),
		Center:       center,
		RadiusMeters: radiusMeters,
		Label:        label,
	}
	s.hazards = append([]domain.HazardArea{area}, s.hazards...)
	return area
}

// RemoveHazardArea deletes an area by id.
func (s *Session) RemoveHazardArea(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.hazards {
		if h.ID == id {
			s.hazards = append(s.hazards[:i], s.hazards[i+1:]...)
			return true
		}
	}
	return false
}

// HazardAreas returns a copy of the hazard list, newest first.
func (s *Session) HazardAreas() []domain.HazardArea {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HazardArea, len(s.hazards))
	copy(out, s.hazards)
	return out
}

// RecordSubmission prepends an acknowledgment to the capped local backup.
func (s *Session) RecordSubmission(ack domain.SubmissionAck) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backup = append([]domain.SubmissionAck{ack}, s.backup...)
	if len(s.backup) > s.backupCap {
		s.backup = s.backup[:s.backupCap]
	}
}

// SubmissionBackup returns a copy of the backup, newest first.
func (s *Session) SubmissionBackup() []domain.SubmissionAck {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SubmissionAck, len(s.backup))
	copy(out, s.backup)
	return out
}

// SetSafetyPlaces replaces the safety-place list.
func (s *Session) SetSafetyPlaces(places []domain.SafetyPlace) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.safetyPlaces = make([]domain.SafetyPlace, len(places))
	copy(s.safetyPlaces, places)
}

// SafetyPlaces returns a copy of the safety-place list.
func (s *Session) SafetyPlaces() []domain.SafetyPlace {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SafetyPlace, len(s.safetyPlaces))
	copy(out, s.safetyPlaces)
	return out
}

// SetPreferences replaces the preference flags.
func (s *Session) SetPreferences(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	toggles := make(map[string]bool, len(p.Toggles))
	for k, v := range p.Toggles {
		toggles[k] = v
	}
	p.Toggles = toggles
	s.prefs = p
}

// Preferences returns a copy of the preference flags.
func (s *Session) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.prefs
	toggles := make(map[string]bool, len(p.Toggles))
	for k, v := range p.Toggles {
		toggles[k] = v
	}
	p.Toggles = toggles
	return p
}

// newID returns a short random identifier for session-scoped objects. A
// crypto/rand read error is unrecoverable and panics.
func newID() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
