package analytics

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefwatch/hawksbill-analytics/internal/domain"
	"github.com/reefwatch/hawksbill-analytics/internal/observability"
)

func newTestService(observations []domain.Observation) (*Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	ds := domain.NewDataset(observations, "test")
	return New(ds, slog.Default(), metrics), metrics
}

func TestServiceViews(t *testing.T) {
	sptr := func(s string) *string { return &s }
	svc, metrics := newTestService([]domain.Observation{
		{Year: 1995, WaterBody: sptr("Pacific")},
		{Year: 1995, WaterBody: sptr("Pacific")},
		{Year: 2003, WaterBody: sptr("Pacific")},
		{Year: 2003, WaterBody: sptr("Pacific")},
	})

	t.Run("yearly trend", func(t *testing.T) {
		trend, err := svc.YearlyTrend()
		require.NoError(t, err)
		assert.Equal(t, []domain.YearCount{{Year: 1995, Count: 2}, {Year: 2003, Count: 2}}, trend)
	})

	t.Run("habitat breakdown", func(t *testing.T) {
		slices, err := svc.HabitatBreakdown(domain.FieldWaterBody, 2000)
		require.NoError(t, err)
		assert.Equal(t, []domain.CategoryCount{{Category: "Pacific", Count: 2}}, slices)
	})

	t.Run("summary", func(t *testing.T) {
		s, err := svc.Summary()
		require.NoError(t, err)
		assert.Equal(t, 4, s.Rows)
	})

	t.Run("success outcomes counted", func(t *testing.T) {
		count := testutil.ToFloat64(metrics.QueryRequests.WithLabelValues("trend", "success"))
		assert.Positive(t, count)
	})
}

func TestServiceInvalidInputOutcome(t *testing.T) {
	svc, metrics := newTestService(nil)

	_, err := svc.HabitatBreakdown("species", 2000)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.QueryRequests.WithLabelValues("habitat", "invalid")))
}

func TestCheckReadiness(t *testing.T) {
	t.Run("ready with dataset", func(t *testing.T) {
		svc, _ := newTestService(nil)
		assert.NoError(t, svc.CheckReadiness(context.Background()))
	})

	t.Run("not ready without dataset", func(t *testing.T) {
		svc := New(nil, slog.Default(), observability.NewMetricsForTesting())
		assert.Error(t, svc.CheckReadiness(context.Background()))
	})
}
