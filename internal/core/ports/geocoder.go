package ports

import "context"

// Geocoder resolves coordinates to a display address. Implementations fall
// back to a formatted coordinate string instead of failing, so lookup
// problems never block a submission.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
