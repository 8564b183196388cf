package domain

import (
	"fmt"
	"time"
)

// SliderBaseYear bounds the dashboard's year-threshold control. The control
// only offers years from 1992 onward because earlier sightings are too
// sparse to filter on.
const SliderBaseYear = 1992

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Summary describes the loaded Dataset for dashboard bootstrapping: the
// year-slider bounds, the map's initial center, and provenance.
type Summary struct {
	Rows      int       `json:"rows"`
	FirstYear *int      `json:"first_year"` // min year >= SliderBaseYear, nil if none
	LastYear  *int      `json:"last_year"`  // max year >= SliderBaseYear, nil if none
	Center    *Geo      `json:"center"`     // mean of all present coordinates, nil if none
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Summarize computes the Dataset summary. An empty dataset yields a summary
// with nil bounds and center, not an error.
func Summarize(ds *Dataset) (Summary, error) {
	if ds == nil {
		return Summary{}, fmt.Errorf("summarize: nil dataset: %w", ErrInvalidInput)
	}

	s := Summary{
		Rows:     len(ds.observations),
		Source:   ds.source,
		LoadedAt: ds.loadedAt,
	}

	var sumLat, sumLon float64
	var coordCount int
	for _, o := range ds.observations {
		if o.Year >= SliderBaseYear {
			if s.FirstYear == nil || o.Year < *s.FirstYear {
				year := o.Year
				s.FirstYear = &year
			}
			if s.LastYear == nil || o.Year > *s.LastYear {
				year := o.Year
				s.LastYear = &year
			}
		}
		if o.HasCoordinates() {
			sumLat += *o.Latitude
			sumLon += *o.Longitude
			coordCount++
		}
	}

	if coordCount > 0 {
		s.Center = &Geo{
			Lat: sumLat / float64(coordCount),
			Lon: sumLon / float64(coordCount),
		}
	}
	return s, nil
}
