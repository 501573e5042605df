package utils

import "fmt"

// DirectionsURL builds the Google Maps driving-directions deep link the
// dashboards open for a client's location.
func DirectionsURL(lat, lng float64) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&destination=%f,%f&travelmode=driving",
		lat, lng,
	)
}

// MapURL builds the plain "view on map" deep link.
func MapURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f&z=17", lat, lng)
}
