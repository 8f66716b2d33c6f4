package utils

import "math"

const (
	// MinSearchRadius / MaxSearchRadius bound the radius accepted by the
	// upstream geosearch, in meters.
	MinSearchRadius = 10
	MaxSearchRadius = 10000

	// DefaultSearchRadius is used when a request carries no radius.
	DefaultSearchRadius = 5000

	// Viewport radius derivation: baseRadius meters at zoom level
	// baseZoom, halved per zoom step, floored so zoomed-in views are
	// never starved of nearby results.
	viewportBaseRadius = 50000.0
	viewportBaseZoom   = 10.0
	viewportMinRadius  = 1000.0
)

// ValidateCoordinates reports whether lat/lon form a valid WGS84 point.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius reports whether a search radius is within upstream bounds.
func ValidateRadius(radius float64) bool {
	return radius >= MinSearchRadius && radius <= MaxSearchRadius
}

// RadiusForZoom converts a map zoom level into a search radius in meters:
// 50000 / 2^(zoom-10), clamped to [1000, 10000].
func RadiusForZoom(zoom float64) float64 {
	radius := viewportBaseRadius / math.Pow(2, zoom-viewportBaseZoom)
	if radius < viewportMinRadius {
		return viewportMinRadius
	}
	if radius > MaxSearchRadius {
		return MaxSearchRadius
	}
	return radius
}
