// Package analytics wraps the domain's derived-view functions with the
// observability the HTTP layer needs: per-view request counters, durations,
// and a readiness signal tied to the dataset being loaded.
package analytics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reefwatch/hawksbill-analytics/internal/domain"
	"github.com/reefwatch/hawksbill-analytics/internal/observability"
)

// View labels used in metrics and logs.
const (
	viewTrend       = "trend"
	viewEnvironment = "environment"
	viewHabitat     = "habitat"
	viewGeo         = "geo"
	viewSummary     = "summary"
)

// Service computes derived views over the loaded dataset. It holds no
// mutable state, so a single instance serves all handlers concurrently.
type Service struct {
	dataset *domain.Dataset
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service over a sealed dataset.
func New(dataset *domain.Dataset, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		dataset: dataset,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a dataset is loaded. An empty dataset is
// still ready: empty results are valid outputs.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.dataset == nil {
		return errors.New("dataset not loaded")
	}
	return nil
}

// YearlyTrend returns the population trend points.
func (s *Service) YearlyTrend() ([]domain.YearCount, error) {
	return instrument(s, viewTrend, func() ([]domain.YearCount, error) {
		return domain.YearlyCounts(s.dataset)
	})
}

// EnvironmentalMeans returns the yearly mean of each requested column.
func (s *Service) EnvironmentalMeans(columns []domain.Column) ([]domain.YearMean, error) {
	return instrument(s, viewEnvironment, func() ([]domain.YearMean, error) {
		return domain.YearlyMeans(s.dataset, columns)
	})
}

// HabitatBreakdown returns category counts for the given field over
// sightings with year >= minYear.
func (s *Service) HabitatBreakdown(field domain.Field, minYear int) ([]domain.CategoryCount, error) {
	return instrument(s, viewHabitat, func() ([]domain.CategoryCount, error) {
		return domain.CategoryCounts(s.dataset, field, minYear)
	})
}

// GeoPoints returns heatmap points for sightings with year >= minYear.
func (s *Service) GeoPoints(minYear int) ([]domain.GeoPoint, error) {
	return instrument(s, viewGeo, func() ([]domain.GeoPoint, error) {
		return domain.GeoFilter(s.dataset, minYear)
	})
}

// Summary returns the dataset summary used to bootstrap the dashboard.
func (s *Service) Summary() (domain.Summary, error) {
	return instrument(s, viewSummary, func() (domain.Summary, error) {
		return domain.Summarize(s.dataset)
	})
}

// instrument times one view computation and classifies its outcome.
func instrument[T any](s *Service, view string, compute func() (T, error)) (T, error) {
	start := time.Now()
	result, err := compute()
	s.metrics.QueryDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	s.metrics.QueryRequests.WithLabelValues(view, outcome(err)).Inc()

	if err != nil {
		s.logger.Warn("view computation failed", "view", view, "error", err)
	}
	return result, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
