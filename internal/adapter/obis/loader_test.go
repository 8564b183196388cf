package obis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/reefwatch/hawksbill-analytics/internal/domain"
)

const header = "date_year,waterBody,country,decimalLatitude,decimalLongitude,sst,sss"

func TestParseCSV(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		data := header + "\n2005,South Pacific Ocean,Fiji,-17.5,178.1,27.3,34.9\n"

		result, err := ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		o := result.Observations[0]
		assert.Equal(t, 2005, o.Year)
		assert.Equal(t, "South Pacific Ocean", *o.WaterBody)
		assert.Equal(t, "Fiji", *o.Country)
		assert.Equal(t, -17.5, *o.Latitude)
		assert.Equal(t, 178.1, *o.Longitude)
		assert.Equal(t, 27.3, *o.SST)
		assert.Equal(t, 34.9, *o.SSS)
		assert.Zero(t, result.Dropped)
	})

	t.Run("missing optional cells become nil", func(t *testing.T) {
		data := header + "\n1998,,NA,,,NaN,\n"

		result, err := ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		o := result.Observations[0]
		assert.Equal(t, 1998, o.Year)
		assert.Nil(t, o.WaterBody)
		assert.Nil(t, o.Country)
		assert.Nil(t, o.Latitude)
		assert.Nil(t, o.Longitude)
		assert.Nil(t, o.SST)
		assert.Nil(t, o.SSS)
	})

	t.Run("rows without a year are dropped", func(t *testing.T) {
		data := header + "\n" +
			",Pacific,Fiji,1,2,3,4\n" +
			"not-a-year,Pacific,Fiji,1,2,3,4\n" +
			"2001,Pacific,Fiji,1,2,3,4\n"

		result, err := ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		assert.Len(t, result.Observations, 1)
		assert.Equal(t, 2, result.Dropped)
	})

	t.Run("float-rendered years parse", func(t *testing.T) {
		data := header + "\n2005.0,,,,,,\n2005.5,,,,,,\n"

		result, err := ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		assert.Equal(t, 2005, result.Observations[0].Year)
		assert.Equal(t, 1, result.Dropped)
	})

	t.Run("malformed numeric cell treated as missing", func(t *testing.T) {
		data := header + "\n2001,Pacific,Fiji,garbage,178.0,27.0,34.0\n"

		result, err := ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		assert.Nil(t, result.Observations[0].Latitude)
		assert.NotNil(t, result.Observations[0].Longitude)
	})

	t.Run("short rows are padded", func(t *testing.T) {
		data := header + "\n2003,Indian Ocean\n"

		result, err := ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		assert.Equal(t, "Indian Ocean", *result.Observations[0].WaterBody)
		assert.Nil(t, result.Observations[0].Country)
	})

	t.Run("missing required column is invalid input", func(t *testing.T) {
		data := "date_year,waterBody,country\n2001,Pacific,Fiji\n"

		_, err := ParseCSV(strings.NewReader(data))

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "decimalLatitude")
	})

	t.Run("empty input is invalid input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("header only yields empty result", func(t *testing.T) {
		result, err := ParseCSV(strings.NewReader(header + "\n"))

		require.NoError(t, err)
		assert.Empty(t, result.Observations)
		assert.Zero(t, result.Dropped)
	})
}

func TestLoadXLSX(t *testing.T) {
	writeWorkbook := func(t *testing.T, rows [][]any) string {
		t.Helper()
		f := excelize.NewFile()
		for i, row := range rows {
			cellName, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
		}
		path := filepath.Join(t.TempDir(), "sightings.xlsx")
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())
		return path
	}

	headerRow := []any{"date_year", "waterBody", "country", "decimalLatitude", "decimalLongitude", "sst", "sss"}

	t.Run("round-trips observations", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{
			headerRow,
			{2005, "South Pacific Ocean", "Fiji", -17.5, 178.1, 27.3, 34.9},
			{"", "North Atlantic Ocean", "Cuba", 22.1, -80.0, 26.0, 35.5}, // no year: dropped
		})

		result, err := LoadXLSX(path)

		require.NoError(t, err)
		require.Len(t, result.Observations, 1)
		o := result.Observations[0]
		assert.Equal(t, 2005, o.Year)
		assert.Equal(t, "Fiji", *o.Country)
		assert.Equal(t, -17.5, *o.Latitude)
		assert.Equal(t, 1, result.Dropped)
	})

	t.Run("missing column is invalid input", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{
			{"date_year", "waterBody"},
			{2005, "Pacific"},
		})

		_, err := LoadXLSX(path)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLoad_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "sightings.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(header+"\n2004,Pacific,Fiji,1,2,3,4\n"), 0o600))

	result, err := Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, result.Observations, 1)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}
