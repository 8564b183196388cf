package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefwatch/hawksbill-analytics/internal/analytics"
	"github.com/reefwatch/hawksbill-analytics/internal/domain"
	"github.com/reefwatch/hawksbill-analytics/internal/observability"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func newTestApp(observations []domain.Observation) *fiber.App {
	ds := domain.NewDataset(observations, "test")
	service := analytics.New(ds, slog.Default(), observability.NewMetricsForTesting())
	return New(service, slog.Default())
}

func testObservations() []domain.Observation {
	return []domain.Observation{
		{Year: 1995, WaterBody: sptr("Pacific"), SST: fptr(26.0), SSS: fptr(35.0), Latitude: fptr(-17.5), Longitude: fptr(178.1)},
		{Year: 1995, WaterBody: sptr("Pacific"), SST: fptr(28.0), Latitude: fptr(-17.6), Longitude: fptr(178.0)},
		{Year: 2003, WaterBody: sptr("Pacific"), Country: sptr("Fiji")},
		{Year: 2003, WaterBody: sptr("Atlantic"), Country: sptr("Cuba"), Latitude: fptr(22.1), Longitude: fptr(-80.0)},
		{Year: 2003, WaterBody: sptr("Pacific"), Country: sptr("Fiji")},
	}
}

func doJSON(t *testing.T, app *fiber.App, path string, wantStatus int, out any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", body)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out))
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(nil)

	var health map[string]string
	doJSON(t, app, "/healthz", http.StatusOK, &health)
	assert.Equal(t, "healthy", health["status"])

	var ready map[string]string
	doJSON(t, app, "/readyz", http.StatusOK, &ready)
	assert.Equal(t, "ready", ready["status"])
}

func TestReadyzNotReadyWithoutDataset(t *testing.T) {
	service := analytics.New(nil, slog.Default(), observability.NewMetricsForTesting())
	app := New(service, slog.Default())

	var body map[string]string
	doJSON(t, app, "/readyz", http.StatusServiceUnavailable, &body)
	assert.Equal(t, "not ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestYearlyTrendRoute(t *testing.T) {
	app := newTestApp(testObservations())

	var body struct {
		Points []domain.YearCount `json:"points"`
	}
	doJSON(t, app, "/api/v1/trends/yearly", http.StatusOK, &body)

	assert.Equal(t, []domain.YearCount{{Year: 1995, Count: 2}, {Year: 2003, Count: 3}}, body.Points)
}

func TestEnvironmentRoute(t *testing.T) {
	app := newTestApp(testObservations())

	t.Run("defaults to both series with null for missing means", func(t *testing.T) {
		var body struct {
			Points []struct {
				Year  int                 `json:"year"`
				Means map[string]*float64 `json:"means"`
			} `json:"points"`
		}
		doJSON(t, app, "/api/v1/environment/yearly", http.StatusOK, &body)

		require.Len(t, body.Points, 2)
		assert.Equal(t, 1995, body.Points[0].Year)
		require.NotNil(t, body.Points[0].Means["sst"])
		assert.InDelta(t, 27.0, *body.Points[0].Means["sst"], 1e-9)
		assert.InDelta(t, 35.0, *body.Points[0].Means["sss"], 1e-9)

		// 2003 has no environmental readings at all: null, not zero.
		assert.Equal(t, 2003, body.Points[1].Year)
		assert.Nil(t, body.Points[1].Means["sst"])
		assert.Nil(t, body.Points[1].Means["sss"])
	})

	t.Run("single column", func(t *testing.T) {
		var body struct {
			Columns []string `json:"columns"`
		}
		doJSON(t, app, "/api/v1/environment/yearly?columns=sst", http.StatusOK, &body)
		assert.Equal(t, []string{"sst"}, body.Columns)
	})

	t.Run("unknown column is a 400", func(t *testing.T) {
		doJSON(t, app, "/api/v1/environment/yearly?columns=chlorophyll", http.StatusBadRequest, nil)
	})
}

func TestHabitatRoute(t *testing.T) {
	app := newTestApp(testObservations())

	t.Run("water body with default threshold", func(t *testing.T) {
		var body struct {
			Field   string                 `json:"field"`
			MinYear int                    `json:"min_year"`
			Slices  []domain.CategoryCount `json:"slices"`
		}
		doJSON(t, app, "/api/v1/habitat?field=waterBody", http.StatusOK, &body)

		assert.Equal(t, "waterBody", body.Field)
		assert.Equal(t, 2000, body.MinYear)
		assert.Equal(t, []domain.CategoryCount{{Category: "Pacific", Count: 2}}, body.Slices)
	})

	t.Run("country", func(t *testing.T) {
		var body struct {
			Slices []domain.CategoryCount `json:"slices"`
		}
		doJSON(t, app, "/api/v1/habitat?field=country", http.StatusOK, &body)
		assert.Equal(t, []domain.CategoryCount{{Category: "Fiji", Count: 2}}, body.Slices)
	})

	t.Run("missing field is a 400", func(t *testing.T) {
		doJSON(t, app, "/api/v1/habitat", http.StatusBadRequest, nil)
	})

	t.Run("unknown field is a 400", func(t *testing.T) {
		doJSON(t, app, "/api/v1/habitat?field=species", http.StatusBadRequest, nil)
	})

	t.Run("non-numeric min_year is a 400", func(t *testing.T) {
		doJSON(t, app, "/api/v1/habitat?field=country&min_year=latest", http.StatusBadRequest, nil)
	})
}

func TestGeoRoute(t *testing.T) {
	app := newTestApp(testObservations())

	t.Run("default threshold keeps modern coordinates", func(t *testing.T) {
		var body struct {
			MinYear int              `json:"min_year"`
			Points  []domain.GeoPoint `json:"points"`
		}
		doJSON(t, app, "/api/v1/sightings/geo", http.StatusOK, &body)

		assert.Equal(t, domain.SliderBaseYear, body.MinYear)
		assert.Equal(t, []domain.GeoPoint{
			{Year: 1995, Latitude: -17.5, Longitude: 178.1},
			{Year: 1995, Latitude: -17.6, Longitude: 178.0},
			{Year: 2003, Latitude: 22.1, Longitude: -80.0},
		}, body.Points)
	})

	t.Run("raising the threshold narrows the result", func(t *testing.T) {
		var body struct {
			Points []domain.GeoPoint `json:"points"`
		}
		doJSON(t, app, "/api/v1/sightings/geo?min_year=2000", http.StatusOK, &body)
		assert.Equal(t, []domain.GeoPoint{{Year: 2003, Latitude: 22.1, Longitude: -80.0}}, body.Points)
	})

	t.Run("no matches is an empty 200", func(t *testing.T) {
		var body struct {
			Points []domain.GeoPoint `json:"points"`
		}
		doJSON(t, app, "/api/v1/sightings/geo?min_year=2050", http.StatusOK, &body)
		assert.Empty(t, body.Points)
	})

	t.Run("non-numeric min_year is a 400", func(t *testing.T) {
		var body map[string]any
		doJSON(t, app, "/api/v1/sightings/geo?min_year=yesterday", http.StatusBadRequest, &body)
		assert.Equal(t, true, body["error"])
	})
}

func TestSummaryRoute(t *testing.T) {
	app := newTestApp(testObservations())

	var body domain.Summary
	doJSON(t, app, "/api/v1/dataset/summary", http.StatusOK, &body)

	assert.Equal(t, 5, body.Rows)
	require.NotNil(t, body.FirstYear)
	assert.Equal(t, 1995, *body.FirstYear)
	require.NotNil(t, body.LastYear)
	assert.Equal(t, 2003, *body.LastYear)
	require.NotNil(t, body.Center)
}
