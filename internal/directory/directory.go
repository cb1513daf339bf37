// Package directory serves the static city/area lookup for the Punjab region.
// The data is a fixed table; unknown cities resolve to an empty area list
// rather than an error.
package directory

type cityEntry struct {
	name  string
	areas []string
}

// punjab lists cities in presentation order with their sub-areas.
var punjab = []cityEntry{
	{"Amritsar", []string{
		"Golden Temple Area", "Hall Bazaar", "Lawrence Road", "Mall Road", "Cantonment",
		"Ranjit Avenue", "Green Avenue", "Batala Road", "Majitha Road", "Tarn Taran Road",
	}},
	{"Ludhiana", []string{
		"Model Town", "Sarabha Nagar", "Civil Lines", "Gill Road", "Ferozepur Road",
		"Dugri", "Kitchlu Nagar", "BRS Nagar", "Punjabi Bagh", "Jalandhar Bypass",
	}},
	{"Jalandhar", []string{
		"Model Town", "Nakodar Road", "Kapurthala Road", "Adampur", "Cantonment",
		"Basti Sheikh", "Guru Teg Bahadur Nagar", "Urban Estate", "Ladowali Road", "Nakodar Road",
	}},
	{"Patiala", []string{
		"Leela Bhawan", "Model Town", "Rajindra Hospital", "Tripuri", "Adalat Bazaar",
		"Anardana Chowk", "Baradari Garden", "Dharampura Bazaar", "Ghalori Gate", "Sheranwala Gate",
	}},
	{"Bathinda", []string{
		"Model Town", "Guru Nanak Dev Thermal Plant", "Cantonment", "Civil Lines",
		"Guru Teg Bahadur Nagar", "Rose Garden", "Mall Road", "Bibiwala Road", "Goniana Road",
	}},
	{"Mohali", []string{
		"Phase 1", "Phase 2", "Phase 3A", "Phase 3B", "Phase 4", "Phase 5", "Phase 6",
		"Phase 7", "Phase 8", "Phase 9", "Phase 10", "Sector 70", "Sector 71", "Sector 72",
	}},
	{"Chandigarh", []string{
		"Sector 1-10", "Sector 11-20", "Sector 21-30", "Sector 31-40", "Sector 41-50",
		"Sector 51-60", "Sector 61-70", "Sector 71-80", "Sector 81-90", "Sector 91-100",
	}},
	{"Firozpur", []string{
		"Cantonment", "Model Town", "Guru Teg Bahadur Nagar", "Civil Lines",
		"Railway Road", "Basti Sheikh", "Mall Road", "Ferozepur Road", "Abohar Road",
	}},
	{"Batala", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Batala Road", "Qadian Road", "Gurdaspur Road",
	}},
	{"Moga", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Moga Road", "Barnala Road", "Ferozepur Road",
	}},
	{"Abohar", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Abohar Road", "Fazilka Road", "Sri Ganganagar Road",
	}},
	{"Malout", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Malout Road", "Muktsar Road", "Bathinda Road",
	}},
	{"Muktsar", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Muktsar Road", "Malout Road", "Bathinda Road",
	}},
	{"Faridkot", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Faridkot Road", "Muktsar Road", "Bathinda Road",
	}},
	{"Mansa", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Mansa Road", "Bathinda Road", "Barnala Road",
	}},
	{"Barnala", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Barnala Road", "Mansa Road", "Sangrur Road",
	}},
	{"Sangrur", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Sangrur Road", "Barnala Road", "Patiala Road",
	}},
	{"Sunam", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Sunam Road", "Sangrur Road", "Patiala Road",
	}},
	{"Rajpura", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Rajpura Road", "Patiala Road", "Chandigarh Road",
	}},
	{"Nabha", []string{
		"Model Town", "Cantonment", "Civil Lines", "Guru Teg Bahadur Nagar",
		"Railway Road", "Mall Road", "Nabha Road", "Patiala Road", "Rajpura Road",
	}},
}

// Directory is a read-only region-to-areas lookup.
type Directory struct {
	entries []cityEntry
	byName  map[string][]string
}

// Punjab returns the built-in Punjab directory.
func Punjab() *Directory {
	byName := make(map[string][]string, len(punjab))
	for _, e := range punjab {
		byName[e.name] = e.areas
	}
	return &Directory{entries: punjab, byName: byName}
}

// Cities returns city names in presentation order.
func (d *Directory) Cities() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.name
	}
	return names
}

// Areas returns the areas for a city, or an empty slice for an unknown city.
// Lookup is case-sensitive, matching the submission contract.
func (d *Directory) Areas(city string) []string {
	areas, ok := d.byName[city]
	if !ok {
		return []string{}
	}
	out := make([]string, len(areas))
	copy(out, areas)
	return out
}
