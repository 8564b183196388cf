package domain

import "context"

// Geocoder resolves coordinates to a country name. Used only during load-time
// enrichment, before the Dataset is sealed.
type Geocoder interface {
	// ReverseCountry returns the country containing the coordinate, or an
	// empty string when the provider has no answer (open ocean).
	ReverseCountry(ctx context.Context, lat, lon float64) (string, error)
}
