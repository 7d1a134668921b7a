package dining

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	halls := Catalog()
	if len(halls) != 4 {
		t.Fatalf("Expected 4 halls, got %d", len(halls))
	}
	if halls[0].Name != "Dietrick Hall (D2)" || halls[3].Name != "West End Market" {
		t.Errorf("Unexpected order: %s ... %s", halls[0].Name, halls[3].Name)
	}

	halls[0].Name = "changed"
	if Catalog()[0].Name != "Dietrick Hall (D2)" {
		t.Error("Catalog returned shared storage")
	}
}

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"Dietrick Hall (D2)":      "Dietrick Hall (D2)",
		"dietrick hall":           "Dietrick Hall (D2)",
		"TURNER PLACE":            "Turner Place",
		"West End Market - Grill": "West End Market",
	}
	for in, want := range tests {
		h, ok := Lookup(in)
		if !ok || h.Name != want {
			t.Errorf("Lookup(%q) = %q, %v; want %q", in, h.Name, ok, want)
		}
	}
	for _, in := range []string{"", "Owens Food Court"} {
		if _, ok := Lookup(in); ok {
			t.Errorf("Lookup(%q) should fail", in)
		}
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(CampusLat, CampusLon, CampusLat, CampusLon); d != 0 {
		t.Errorf("Expected zero distance, got %f", d)
	}

	// One degree of latitude is about 111.2 km.
	d := Distance(37, -80, 38, -80)
	if math.Abs(d-111195) > 100 {
		t.Errorf("Expected ~111195 m, got %f", d)
	}

	turner, _ := Lookup("Turner Place")
	west, _ := Lookup("West End Market")
	d = Distance(turner.Lat, turner.Lon, west.Lat, west.Lon)
	if d < 800 || d > 900 {
		t.Errorf("Expected Turner to West End around 850 m, got %f", d)
	}
}

func TestWalkMinutes(t *testing.T) {
	tests := map[float64]int{0: 1, 30: 1, 120: 2, 800: 10, 850: 11}
	for in, want := range tests {
		if got := WalkMinutes(in); got != want {
			t.Errorf("WalkMinutes(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestDirections(t *testing.T) {
	h := Hall{Lat: 37.5, Lon: -80.25}
	links := Directions(h)
	if links.Google != "https://www.google.com/maps/dir/?api=1&destination=37.5,-80.25&travelmode=walking" {
		t.Errorf("Unexpected Google link %s", links.Google)
	}
	if links.Apple != "http://maps.apple.com/?daddr=37.5,-80.25&dirflg=w&t=m" {
		t.Errorf("Unexpected Apple link %s", links.Apple)
	}
	if links.Waze != "https://www.waze.com/ul?ll=37.5%2C-80.25&navigate=yes&zoom=17" {
		t.Errorf("Unexpected Waze link %s", links.Waze)
	}
}

func TestWriteMap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMap(&buf, Catalog()); err != nil {
		t.Fatalf("WriteMap failed: %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "L.marker("); n != 4 {
		t.Errorf("Expected 4 markers, got %d", n)
	}
	if !strings.Contains(out, "Perry Place") {
		t.Error("Missing hall name")
	}
	if !strings.Contains(out, "37.2284") || !strings.Contains(out, "-80.4234") {
		t.Error("Map is not centred on campus")
	}
}
