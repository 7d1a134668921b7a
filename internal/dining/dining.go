package dining

import (
	"fmt"
	"math"
	"strings"
)

const (
	// CampusLat and CampusLon are the centre of the Virginia Tech campus.
	CampusLat = 37.2284
	CampusLon = -80.4234

	earthRadiusM        = 6371e3
	walkMetersPerMinute = 80.0
)

// Hall is one all-you-care-to-eat dining location.
type Hall struct {
	Name        string
	Description string
	Hours       string
	Lat         float64
	Lon         float64
}

// ShortName is the name without the parenthesised abbreviation.
func (h Hall) ShortName() string {
	if i := strings.Index(h.Name, "("); i >= 0 {
		return strings.TrimSpace(h.Name[:i])
	}
	return h.Name
}

var catalog = []Hall{
	{
		Name:        "Dietrick Hall (D2)",
		Description: "All-you-care-to-eat dining hall at Dietrick",
		Hours:       "Mon-Fri: 7AM-9PM, Sat-Sun: 9AM-8PM",
		Lat:         37.224750005269854,
		Lon:         -80.42090944212596,
	},
	{
		Name:        "Perry Place",
		Description: "All-you-care-to-eat dining hall at Perry Street",
		Hours:       "Mon-Fri: 7AM-9PM, Sat-Sun: 9AM-8PM",
		Lat:         37.229636537709645,
		Lon:         -80.42611056271015,
	},
	{
		Name:        "Turner Place",
		Description: "All-you-care-to-eat dining at Turner Hall",
		Hours:       "Mon-Fri: 7AM-10PM, Sat-Sun: 10AM-10PM",
		Lat:         37.23113957256836,
		Lon:         -80.42267514582704,
	},
	{
		Name:        "West End Market",
		Description: "All-you-care-to-eat dining hall at West End",
		Hours:       "Mon-Fri: 7AM-11PM, Sat-Sun: 9AM-11PM",
		Lat:         37.22351950716079,
		Lon:         -80.42187920803231,
	},
}

// Catalog returns the known dining halls in a fixed order.
func Catalog() []Hall {
	out := make([]Hall, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a hall by its full or short name, ignoring case. Names the
// server sends with extra words ("Turner Place - Qdoba") match by prefix.
func Lookup(name string) (Hall, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Hall{}, false
	}
	for _, h := range catalog {
		if needle == strings.ToLower(h.Name) || needle == strings.ToLower(h.ShortName()) {
			return h, true
		}
	}
	for _, h := range catalog {
		if strings.HasPrefix(needle, strings.ToLower(h.ShortName())) {
			return h, true
		}
	}
	return Hall{}, false
}

// Distance returns the great-circle distance in metres between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// WalkMinutes estimates walking time for a distance in metres, never less than a minute.
func WalkMinutes(meters float64) int {
	m := int(math.Round(meters / walkMetersPerMinute))
	if m < 1 {
		return 1
	}
	return m
}

// Links are turn-by-turn directions to a hall in the common map apps.
type Links struct {
	Google string
	Apple  string
	Waze   string
}

// Directions builds walking (Google, Apple) and driving (Waze) links to h.
func Directions(h Hall) Links {
	return Links{
		Google: fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v&travelmode=walking", h.Lat, h.Lon),
		Apple:  fmt.Sprintf("http://maps.apple.com/?daddr=%v,%v&dirflg=w&t=m", h.Lat, h.Lon),
		Waze:   fmt.Sprintf("https://www.waze.com/ul?ll=%v%%2C%v&navigate=yes&zoom=17", h.Lat, h.Lon),
	}
}
