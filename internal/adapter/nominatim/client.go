// Package nominatim implements domain.Geocoder against the OSM Nominatim
// reverse-geocoding API. Lookups run behind a circuit breaker so a slow or
// rate-limiting upstream degrades enrichment instead of stalling startup.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/reefwatch/hawksbill-analytics/internal/observability"
)

// Client resolves coordinates to country names via Nominatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim client. Nominatim's usage policy requires an
// identifying User-Agent; pass the configured one.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "nominatim",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			logger.Warn("nominatim circuit state changed", "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		breaker:    breaker,
		metrics:    metrics,
		logger:     logger,
	}
}

// ReverseCountry resolves the country containing the coordinate. An open-ocean
// coordinate yields ("", nil); an open breaker or upstream failure is an error.
func (c *Client) ReverseCountry(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{
		"format": {"jsonv2"},
		"lat":    {fmt.Sprintf("%.6f", lat)},
		"lon":    {fmt.Sprintf("%.6f", lon)},
		"zoom":   {"3"}, // country-level detail only
	}
	fullURL := c.baseURL + "/reverse?" + params.Encode()

	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
		return c.doRequest(ctx, fullURL)
	})
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	country := result.(string)
	if country == "" {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return "", nil
	}
	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return country, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var nr response
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	// Nominatim reports "Unable to geocode" with status 200 for coordinates
	// outside any country, which is the common case for pelagic sightings.
	if nr.Error != "" {
		return "", nil
	}
	return nr.Address.Country, nil
}

// Nominatim API response types.

type response struct {
	Error   string  `json:"error"`
	Address address `json:"address"`
}

type address struct {
	Country string `json:"country"`
}
