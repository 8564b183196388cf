package httpapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/reefwatch/hawksbill-analytics/internal/analytics"
	"github.com/reefwatch/hawksbill-analytics/internal/domain"
)

var validate = validator.New()

// defaultHabitatMinYear matches the dashboard's habitat charts, which cover
// sightings from 2000 onward.
const defaultHabitatMinYear = 2000

// RegisterRoutes wires the derived-view handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *analytics.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/trends/yearly", func(c *fiber.Ctx) error {
		points, err := service.YearlyTrend()
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"points": points})
	})

	v1.Get("/environment/yearly", func(c *fiber.Ctx) error {
		columns, err := parseColumns(c.Query("columns"))
		if err != nil {
			return err
		}
		points, err := service.EnvironmentalMeans(columns)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"columns": columns, "points": points})
	})

	v1.Get("/habitat", func(c *fiber.Ctx) error {
		var req habitatQuery
		if err := req.bind(c); err != nil {
			return err
		}
		slices, err := service.HabitatBreakdown(domain.Field(req.Field), req.MinYear)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"field":    req.Field,
			"min_year": req.MinYear,
			"slices":   slices,
		})
	})

	v1.Get("/sightings/geo", func(c *fiber.Ctx) error {
		minYear, err := parseMinYear(c.Query("min_year"), domain.SliderBaseYear)
		if err != nil {
			return err
		}
		points, err := service.GeoPoints(minYear)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"min_year": minYear, "points": points})
	})

	v1.Get("/dataset/summary", func(c *fiber.Ctx) error {
		summary, err := service.Summary()
		if err != nil {
			return err
		}
		return c.JSON(summary)
	})
}

// habitatQuery holds query parameters for the habitat breakdown.
type habitatQuery struct {
	Field   string `validate:"required,oneof=waterBody country"`
	MinYear int
}

func (h *habitatQuery) bind(c *fiber.Ctx) error {
	h.Field = c.Query("field")
	if err := validate.Struct(h); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	minYear, err := parseMinYear(c.Query("min_year"), defaultHabitatMinYear)
	if err != nil {
		return err
	}
	h.MinYear = minYear
	return nil
}

// parseMinYear parses the dashboard's year-threshold control, falling back
// to def when absent. A value that cannot be compared to years is invalid
// input, per the transform contract.
func parseMinYear(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	minYear, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("min_year %q is not a year: %w", raw, domain.ErrInvalidInput)
	}
	return minYear, nil
}

// parseColumns parses the comma-separated columns parameter, defaulting to
// both environmental series. Unknown names are rejected by the transform.
func parseColumns(raw string) ([]domain.Column, error) {
	if raw == "" {
		return []domain.Column{domain.ColumnSST, domain.ColumnSSS}, nil
	}
	parts := strings.Split(raw, ",")
	columns := make([]domain.Column, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		columns = append(columns, domain.Column(p))
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("columns parameter is empty: %w", domain.ErrInvalidInput)
	}
	return columns, nil
}
