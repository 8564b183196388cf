// Package obis loads OBIS-style Hawksbill occurrence exports into domain
// observations. It is the single bulk read the service performs; everything
// downstream works on the immutable in-memory dataset.
package obis

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/reefwatch/hawksbill-analytics/internal/domain"
)

// Column names as they appear in the export header.
const (
	colYear      = "date_year"
	colWaterBody = "waterBody"
	colCountry   = "country"
	colLatitude  = "decimalLatitude"
	colLongitude = "decimalLongitude"
	colSST       = "sst"
	colSSS       = "sss"
)

var requiredColumns = []string{
	colYear, colWaterBody, colCountry, colLatitude, colLongitude, colSST, colSSS,
}

// Result is the outcome of a bulk load: the parsed observations plus the
// number of rows dropped for missing or unparseable years.
type Result struct {
	Observations []domain.Observation
	Dropped      int
}

// Load reads the export at path, picking the format by extension: .xlsx via
// excelize, everything else as comma-delimited CSV.
func Load(path string) (Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// LoadCSV reads a comma-delimited export from path.
func LoadCSV(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads a comma-delimited export from r. The first record is the
// header; a header missing any required column is ErrInvalidInput.
func ParseCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are padded below

	header, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read dataset header: %w: %v", domain.ErrInvalidInput, err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read dataset row: %w: %v", domain.ErrInvalidInput, err)
		}
		appendRow(&result, idx, record)
	}
	return result, nil
}

// columnIndex maps required column names to positions in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("dataset missing column %q: %w", name, domain.ErrInvalidInput)
		}
	}
	return idx, nil
}

// appendRow parses one record into an observation, dropping it when the year
// is absent or unparseable.
func appendRow(result *Result, idx map[string]int, record []string) {
	year, ok := parseYear(cell(record, idx[colYear]))
	if !ok {
		result.Dropped++
		return
	}

	result.Observations = append(result.Observations, domain.Observation{
		Year:      year,
		WaterBody: parseCategory(cell(record, idx[colWaterBody])),
		Country:   parseCategory(cell(record, idx[colCountry])),
		Latitude:  parseFloat(cell(record, idx[colLatitude])),
		Longitude: parseFloat(cell(record, idx[colLongitude])),
		SST:       parseFloat(cell(record, idx[colSST])),
		SSS:       parseFloat(cell(record, idx[colSSS])),
	})
}

// cell returns the i-th field, tolerating short rows.
func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isMissing(s string) bool {
	switch strings.ToUpper(s) {
	case "", "NA", "N/A", "NAN", "NULL":
		return true
	}
	return false
}

// parseYear accepts integer years, tolerating the float rendering some
// exports use for the column ("2005.0").
func parseYear(s string) (int, bool) {
	if isMissing(s) {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parseCategory(s string) *string {
	if isMissing(s) {
		return nil
	}
	return &s
}

// parseFloat returns nil for missing or malformed numeric cells; a value a
// transform cannot use is the same as no value.
func parseFloat(s string) *float64 {
	if isMissing(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}
