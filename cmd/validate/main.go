// Command validate performs integrity checks on a sightings export before it
// is deployed under a running service: schema presence, year sanity,
// coordinate bounds, and a null census, plus a preview of the derived views
// the dashboard will build from it.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/seaturtles.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/reefwatch/hawksbill-analytics/internal/adapter/obis"
	"github.com/reefwatch/hawksbill-analytics/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetPath := flag.String("dataset", "", "path to the sightings CSV or XLSX export")
	maxDroppedPct := flag.Float64("max-dropped-pct", 20, "fail when more than this percentage of rows lack a year")
	flag.Parse()

	if *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*datasetPath, *maxDroppedPct); code != 0 {
		os.Exit(code)
	}
}

func run(path string, maxDroppedPct float64) int {
	fmt.Println("=== Sightings Dataset Integrity Validation ===")
	fmt.Println()

	result, err := obis.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d observations from %s (%d rows dropped for missing year)\n",
		len(result.Observations), path, result.Dropped)

	phases := []*phase{
		validateYears(result, maxDroppedPct),
		validateCoordinates(result.Observations),
		validateEnvironmentals(result.Observations),
		previewViews(result.Observations, path),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println()
	fmt.Println("all phases passed")
	return 0
}

// validateYears checks the drop rate and that surviving years look like
// years rather than column misalignment artifacts.
func validateYears(result obis.Result, maxDroppedPct float64) *phase {
	p := &phase{name: "year sanity"}

	total := len(result.Observations) + result.Dropped
	if total == 0 {
		p.errorf("dataset is empty")
		return p
	}
	droppedPct := 100 * float64(result.Dropped) / float64(total)
	if droppedPct > maxDroppedPct {
		p.errorf("%.1f%% of rows lack a usable year", droppedPct)
	}

	for i, o := range result.Observations {
		if o.Year < 1800 || o.Year > 2100 {
			p.errorf("row %d: implausible year %d", i, o.Year)
		}
	}
	return p
}

// validateCoordinates checks WGS-84 bounds and that coordinates come in pairs.
func validateCoordinates(observations []domain.Observation) *phase {
	p := &phase{name: "coordinate bounds"}

	var halfPairs int
	for i, o := range observations {
		if (o.Latitude == nil) != (o.Longitude == nil) {
			halfPairs++
		}
		if o.Latitude != nil && (*o.Latitude < -90 || *o.Latitude > 90) {
			p.errorf("row %d: latitude %.4f out of range", i, *o.Latitude)
		}
		if o.Longitude != nil && (*o.Longitude < -180 || *o.Longitude > 180) {
			p.errorf("row %d: longitude %.4f out of range", i, *o.Longitude)
		}
	}
	if halfPairs > 0 {
		p.errorf("%d rows carry only one coordinate; they will be excluded from the geo view", halfPairs)
	}
	return p
}

// validateEnvironmentals flags physically implausible readings.
func validateEnvironmentals(observations []domain.Observation) *phase {
	p := &phase{name: "environmental plausibility"}

	for i, o := range observations {
		if o.SST != nil && (*o.SST < -5 || *o.SST > 40) {
			p.errorf("row %d: sea-surface temperature %.2f outside -5..40 C", i, *o.SST)
		}
		if o.SSS != nil && (*o.SSS < 0 || *o.SSS > 45) {
			p.errorf("row %d: sea-surface salinity %.2f outside 0..45 PSU", i, *o.SSS)
		}
	}
	return p
}

// previewViews runs every derived view once so schema problems surface here
// rather than at serve time, and prints the headline numbers.
func previewViews(observations []domain.Observation, source string) *phase {
	p := &phase{name: "derived view preview"}

	ds := domain.NewDataset(observations, source)

	trend, err := domain.YearlyCounts(ds)
	if err != nil {
		p.errorf("yearly counts: %v", err)
	} else {
		fmt.Printf("trend: %d charted years\n", len(trend))
	}

	means, err := domain.YearlyMeans(ds, []domain.Column{domain.ColumnSST, domain.ColumnSSS})
	if err != nil {
		p.errorf("yearly means: %v", err)
	} else {
		fmt.Printf("environment: %d years with readings\n", len(means))
	}

	for _, field := range []domain.Field{domain.FieldWaterBody, domain.FieldCountry} {
		slices, err := domain.CategoryCounts(ds, field, 2000)
		if err != nil {
			p.errorf("category counts %s: %v", field, err)
			continue
		}
		fmt.Printf("habitat by %s: %d categories\n", field, len(slices))
	}

	points, err := domain.GeoFilter(ds, domain.SliderBaseYear)
	if err != nil {
		p.errorf("geo filter: %v", err)
	} else {
		fmt.Printf("geo: %d heatmap points from %d\n", len(points), domain.SliderBaseYear)
	}

	summary, err := domain.Summarize(ds)
	if err != nil {
		p.errorf("summary: %v", err)
	} else if summary.Center != nil {
		fmt.Printf("map center: %.4f, %.4f\n", summary.Center.Lat, summary.Center.Lon)
	}
	return p
}
