package domain

import (
	"context"
	"log/slog"
)

// EnrichCountries fills the missing country of observations that carry
// coordinates, using the given geocoder. It runs before NewDataset seals the
// data, so the Dataset itself stays immutable. Lookups stop after maxLookups
// attempts (0 means unlimited) and on context cancellation; individual
// lookup failures are logged and skipped rather than aborting the load
// (graceful degradation). Returns the number of observations filled.
func EnrichCountries(ctx context.Context, observations []Observation, geocoder Geocoder, maxLookups int, logger *slog.Logger) int {
	if geocoder == nil {
		return 0
	}

	var filled, attempted int
	for i := range observations {
		o := &observations[i]
		if o.Country != nil || !o.HasCoordinates() {
			continue
		}
		if ctx.Err() != nil {
			logger.Warn("country enrichment interrupted", "filled", filled, "reason", ctx.Err())
			break
		}
		if maxLookups > 0 && attempted >= maxLookups {
			logger.Info("country enrichment lookup cap reached", "cap", maxLookups, "filled", filled)
			break
		}

		attempted++
		country, err := geocoder.ReverseCountry(ctx, *o.Latitude, *o.Longitude)
		if err != nil {
			logger.Warn("reverse geocode failed, leaving country unset",
				"lat", *o.Latitude,
				"lon", *o.Longitude,
				"error", err,
			)
			continue
		}
		if country == "" {
			continue
		}
		o.Country = &country
		filled++
	}
	return filled
}
