// Command server loads the sightings dataset and serves the dashboard API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/reefwatch/hawksbill-analytics/internal/adapter/nominatim"
	"github.com/reefwatch/hawksbill-analytics/internal/adapter/obis"
	"github.com/reefwatch/hawksbill-analytics/internal/analytics"
	httpapi "github.com/reefwatch/hawksbill-analytics/internal/api/http"
	"github.com/reefwatch/hawksbill-analytics/internal/config"
	"github.com/reefwatch/hawksbill-analytics/internal/domain"
	"github.com/reefwatch/hawksbill-analytics/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dataset, err := loadDataset(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}

	service := analytics.New(dataset, logger, metrics)
	app := httpapi.New(service, logger)

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// loadDataset performs the single bulk read, optionally enriches missing
// countries, and seals the result into an immutable Dataset.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*domain.Dataset, error) {
	result, err := obis.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	metrics.DatasetRows.Set(float64(len(result.Observations)))
	metrics.DatasetRowsDropped.Add(float64(result.Dropped))
	logger.Info("dataset loaded",
		"path", cfg.DatasetPath,
		"rows", len(result.Observations),
		"dropped_null_year", result.Dropped,
	)

	if cfg.Geocode.Enabled {
		metrics.GeocodeEnabled.Set(1)
		client := nominatim.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, cfg.Geocode.Timeout, metrics, logger)
		geocoder := nominatim.NewCachedGeocoder(client, cfg.Geocode.CacheSize, metrics)

		filled := domain.EnrichCountries(ctx, result.Observations, geocoder, cfg.Geocode.MaxLookups, logger)
		metrics.CountriesEnriched.Add(float64(filled))
		logger.Info("country enrichment finished", "filled", filled)
	} else {
		logger.Info("country enrichment disabled")
	}

	return domain.NewDataset(result.Observations, cfg.DatasetPath), nil
}
