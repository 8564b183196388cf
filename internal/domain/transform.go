package domain

import (
	"fmt"
	"sort"
)

const (
	// MinTrendYear is the earliest year the population trend charts.
	// Observation effort before 1990 is too sparse to be meaningful.
	MinTrendYear = 1990

	// sparseGroupMax is the largest group size still treated as noise.
	// Groups with count <= sparseGroupMax are dropped from the trend and
	// habitat views.
	sparseGroupMax = 1
)

// YearCount is one point of the yearly population trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// YearlyCounts groups the dataset by year and counts sightings per year,
// dropping years before MinTrendYear and years with a single sighting.
// The result is ordered ascending by year with no duplicates.
func YearlyCounts(ds *Dataset) ([]YearCount, error) {
	if ds == nil {
		return nil, fmt.Errorf("yearly counts: nil dataset: %w", ErrInvalidInput)
	}

	counts := make(map[int]int)
	for _, o := range ds.observations {
		counts[o.Year]++
	}

	result := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		if year < MinTrendYear || n <= sparseGroupMax {
			continue
		}
		result = append(result, YearCount{Year: year, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

// YearMean is one point of a yearly environmental trend. A nil mean for a
// column means every value of that column in the year's group was missing;
// it is distinct from a mean of zero.
type YearMean struct {
	Year  int                 `json:"year"`
	Means map[Column]*float64 `json:"means"`
}

// YearlyMeans groups the dataset by year and computes the arithmetic mean of
// each requested column over that year's non-null values. The result is
// ordered ascending by year. An unknown column or an empty column list is
// ErrInvalidInput.
func YearlyMeans(ds *Dataset, columns []Column) ([]YearMean, error) {
	if ds == nil {
		return nil, fmt.Errorf("yearly means: nil dataset: %w", ErrInvalidInput)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("yearly means: no columns requested: %w", ErrInvalidInput)
	}
	for _, c := range columns {
		if !c.valid() {
			return nil, fmt.Errorf("yearly means: unknown column %q: %w", c, ErrInvalidInput)
		}
	}

	type accumulator struct {
		sum   float64
		count int
	}
	groups := make(map[int]map[Column]*accumulator)
	for _, o := range ds.observations {
		accs, ok := groups[o.Year]
		if !ok {
			accs = make(map[Column]*accumulator, len(columns))
			groups[o.Year] = accs
		}
		for _, c := range columns {
			v := c.value(o)
			if v == nil {
				continue
			}
			acc, ok := accs[c]
			if !ok {
				acc = &accumulator{}
				accs[c] = acc
			}
			acc.sum += *v
			acc.count++
		}
	}

	result := make([]YearMean, 0, len(groups))
	for year, accs := range groups {
		means := make(map[Column]*float64, len(columns))
		for _, c := range columns {
			if acc, ok := accs[c]; ok {
				mean := acc.sum / float64(acc.count)
				means[c] = &mean
			} else {
				means[c] = nil
			}
		}
		result = append(result, YearMean{Year: year, Means: means})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

// CategoryCount is one slice of a habitat breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCounts filters to sightings with year >= minYear, groups by the
// requested field's value (missing values under MissingMarker), and counts
// occurrences, dropping single-sighting categories. The result is ordered by
// descending count; ties keep the order in which each category was first
// encountered, so the ordering is stable across calls.
func CategoryCounts(ds *Dataset, field Field, minYear int) ([]CategoryCount, error) {
	if ds == nil {
		return nil, fmt.Errorf("category counts: nil dataset: %w", ErrInvalidInput)
	}
	if !field.valid() {
		return nil, fmt.Errorf("category counts: unknown field %q: %w", field, ErrInvalidInput)
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, o := range ds.observations {
		if o.Year < minYear {
			continue
		}
		v := field.value(o)
		if _, ok := counts[v]; !ok {
			firstSeen[v] = len(firstSeen)
		}
		counts[v]++
	}

	result := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		if n <= sparseGroupMax {
			continue
		}
		result = append(result, CategoryCount{Category: category, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return firstSeen[result[i].Category] < firstSeen[result[j].Category]
	})
	return result, nil
}

// GeoPoint is one heatmap-ready sighting location.
type GeoPoint struct {
	Year      int     `json:"year"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// GeoFilter returns the sightings with year >= minYear and both coordinates
// present, projected down to (year, lat, lon) in dataset order. No matching
// rows is an empty result, not an error.
func GeoFilter(ds *Dataset, minYear int) ([]GeoPoint, error) {
	if ds == nil {
		return nil, fmt.Errorf("geo filter: nil dataset: %w", ErrInvalidInput)
	}

	result := make([]GeoPoint, 0)
	for _, o := range ds.observations {
		if o.Year < minYear || !o.HasCoordinates() {
			continue
		}
		result = append(result, GeoPoint{
			Year:      o.Year,
			Latitude:  *o.Latitude,
			Longitude: *o.Longitude,
		})
	}
	return result, nil
}
