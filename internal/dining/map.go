package dining

import (
	"html/template"
	"io"
	"strings"
)

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Virginia Tech Dining Halls</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.hall h3 { color: #861F41; margin: 5px 0; }
.links a { display: inline-block; margin: 4px; padding: 6px 12px; border-radius: 4px; color: #fff; text-decoration: none; font-size: 12px; }
.google { background: #4285f4; } .apple { background: #007aff; } .waze { background: #33ccff; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], 15);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
{{range .Halls}}L.marker([{{.Hall.Lat}}, {{.Hall.Lon}}]).addTo(map)
  .bindTooltip({{.Hall.ShortName}})
  .bindPopup({{.Popup}});
{{end}}</script>
</body>
</html>
`))

var popupTemplate = template.Must(template.New("popup").Parse(`<div class="hall">
<h3>{{.Hall.Name}}</h3>
<p><b>Description:</b> {{.Hall.Description}}</p>
<p><b>Hours:</b> {{.Hall.Hours}}</p>
<div class="links">
<a class="google" href="{{.Links.Google}}" target="_blank">Google Maps</a>
<a class="apple" href="{{.Links.Apple}}" target="_blank">Apple Maps</a>
<a class="waze" href="{{.Links.Waze}}" target="_blank">Waze</a>
</div>
</div>`))

type mapMarker struct {
	Hall  Hall
	Popup string
}

// WriteMap writes a standalone Leaflet page with one marker per hall.
func WriteMap(w io.Writer, halls []Hall) error {
	markers := make([]mapMarker, 0, len(halls))
	for _, h := range halls {
		var popup strings.Builder
		if err := popupTemplate.Execute(&popup, struct {
			Hall  Hall
			Links Links
		}{h, Directions(h)}); err != nil {
			return err
		}
		markers = append(markers, mapMarker{Hall: h, Popup: popup.String()})
	}

	return mapTemplate.Execute(w, struct {
		CenterLat float64
		CenterLon float64
		Halls     []mapMarker
	}{CampusLat, CampusLon, markers})
}
