package domain

import "time"

// Category classifies a client alert for presentation.
type Category string

const (
	CategoryCritical Category = "critical"
	CategoryWarning  Category = "warning"
	CategoryInfo     Category = "info"
	CategorySuccess  Category = "success"
)

// LatLng is a WGS-84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a named coordinate.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// ClientAlert is a session-scoped alert created by a user submission or the
// simulation generator. Mutated only by resolution.
type ClientAlert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Location    Location  `json:"location"`
	Severity    float64   `json:"severity"` // 0-1
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Resolved    bool      `json:"resolved"`
}

// HazardArea is a map-drawn exclusion circle. Session-scoped, no persistence.
type HazardArea struct {
	ID           string  `json:"id"`
	Center       LatLng  `json:"center"`
	RadiusMeters float64 `json:"radiusMeters"`
	Label        string  `json:"label,omitempty"`
}

// Statistics are the aggregate counters shown on the command dashboard.
type Statistics struct {
	ActiveAlerts      int `json:"activeAlerts"`
	ResolvedToday     int `json:"resolvedToday"`
	RescueTeamsActive int `json:"rescueTeamsActive"`
	ReliefDispatched  int `json:"reliefDispatched"`
	SheltersOpen      int `json:"sheltersOpen"`
	PeopleEvacuated   int `json:"peopleEvacuated"`
}

// Resource is a deployable unit or facility tracked for the demo map.
type Resource struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // ambulance, firetruck, police, hospital, shelter, supply
	Name      string `json:"name"`
	Status    string `json:"status"` // active, deployed, standby, maintenance
	Location  LatLng `json:"location"`
	Capacity  int    `json:"capacity,omitempty"`
	Available int    `json:"available,omitempty"`
}

// SafetyPlace is a shelter-capable location shown on the safety map.
type SafetyPlace struct {
	ID                  string `json:"id"`
	Type                string `json:"type"` // hospital, shelter, school, college, community
	Name                string `json:"name"`
	Location            LatLng `json:"location"`
	Capacity            int    `json:"capacity,omitempty"`
	Food                int    `json:"food,omitempty"`
	AvailableAmbulances int    `json:"availableAmbulances,omitempty"`
}
