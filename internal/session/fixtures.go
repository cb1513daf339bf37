package session

import (
	"time"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Demo seed data for the command view. Coordinates are spread across Punjab so
// the map has something to show before the simulation or a real submission
// produces state.

func seedAlerts(clock clockwork.Clock) []domain.ClientAlert {
	now := clock.Now().UTC()
	return []domain.ClientAlert{
		{
			ID:          "seed-1",
			Title:       "Flash Flood Warning",
			Category:    domain.CategoryCritical,
			Location:    domain.Location{Lat: 31.6340, Lng: 74.8723, Name: "Amritsar"},
			Severity:    0.9,
			Timestamp:   now.Add(-12 * time.Minute),
			Description: "River levels rising rapidly near the canal belt, evacuation underway",
		},
		{
			ID:          "seed-2",
			Title:       "Severe Heatwave",
			Category:    domain.CategoryWarning,
			Location:    domain.Location{Lat: 30.2110, Lng: 74.9455, Name: "Bathinda"},
			Severity:    0.7,
			Timestamp:   now.Add(-34 * time.Minute),
			Description: "Temperatures expected to exceed 46C through the weekend",
		},
		{
			ID:          "seed-3",
			Title:       "Road Closure",
			Category:    domain.CategoryInfo,
			Location:    domain.Location{Lat: 30.9010, Lng: 75.8573, Name: "Ludhiana"},
			Severity:    0.3,
			Timestamp:   now.Add(-58 * time.Minute),
			Description: "Ferozepur Road closed for debris clearance, use the bypass",
		},
		{
			ID:          "seed-4",
			Title:       "Shelter Opened",
			Category:    domain.CategorySuccess,
			Location:    domain.Location{Lat: 30.3398, Lng: 76.3869, Name: "Patiala"},
			Severity:    0.2,
			Timestamp:   now.Add(-75 * time.Minute),
			Description: "Relief shelter operational at the sports complex, capacity 400",
		},
	}
}

func seedResources() []domain.Resource {
	return []domain.Resource{
		{ID: "res-1", Type: "ambulance", Name: "Ambulance 108 Unit A", Status: "active", Location: domain.LatLng{Lat: 31.6412, Lng: 74.8650}},
		{ID: "res-2", Type: "ambulance", Name: "Ambulance 108 Unit B", Status: "deployed", Location: domain.LatLng{Lat: 31.6180, Lng: 74.8912}},
		{ID: "res-3", Type: "firetruck", Name: "Fire Brigade 3", Status: "standby", Location: domain.LatLng{Lat: 31.6298, Lng: 74.8770}},
		{ID: "res-4", Type: "police", Name: "Patrol 14", Status: "active", Location: domain.LatLng{Lat: 31.6475, Lng: 74.8591}},
		{ID: "res-5", Type: "hospital", Name: "Guru Nanak Dev Hospital", Status: "active", Location: domain.LatLng{Lat: 31.6167, Lng: 74.8833}, Capacity: 900, Available: 212},
		{ID: "res-6", Type: "shelter", Name: "Ranjit Avenue Shelter", Status: "active", Location: domain.LatLng{Lat: 31.6588, Lng: 74.8534}, Capacity: 800, Available: 520},
		{ID: "res-7", Type: "supply", Name: "Relief Depot East", Status: "standby", Location: domain.LatLng{Lat: 31.6251, Lng: 74.9102}, Capacity: 300, Available: 300},
	}
}

func seedStatistics() domain.Statistics {
	return domain.Statistics{
		ActiveAlerts:      4,
		ResolvedToday:     12,
		RescueTeamsActive: 14,
		ReliefDispatched:  36,
		SheltersOpen:      9,
		PeopleEvacuated:   1240,
	}
}
