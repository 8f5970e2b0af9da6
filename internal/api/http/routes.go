package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// requestTimeout bounds the outbound calls made on behalf of one request.
const requestTimeout = 15 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		var q lookupQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var (
			w   weather.CurrentWeather
			err error
		)
		if q.Coords != nil {
			w, err = service.LookupCoordinates(ctx, *q.Coords)
		} else {
			w, err = service.SearchCity(ctx, q.City)
		}
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(w)
	})

	v1.Get("/weather/last", func(c *fiber.Ctx) error {
		w, err := service.LastViewed()
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(w)
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		w, err := service.Refresh(ctx)
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(w)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		coords, err := parseCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if coords == nil {
			view, err := service.ForecastForLastViewed(ctx)
			if err != nil {
				return toFiberError(err)
			}
			return c.JSON(view)
		}

		days, err := service.Forecast(ctx, *coords)
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{
			"coordinates": coords,
			"days":        days,
			"overview":    weather.Summarize(days),
		})
	})

	v1.Get("/searches", func(c *fiber.Ctx) error {
		searches, err := service.RecentSearches()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load recent searches")
		}
		return c.JSON(fiber.Map{"searches": searches})
	})

	v1.Delete("/searches", func(c *fiber.Ctx) error {
		if err := service.ClearRecentSearches(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to clear recent searches")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// toFiberError maps service errors onto HTTP statuses.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, weather.ErrEmptyQuery), errors.Is(err, weather.ErrInvalidCoordinates):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, "city not found")
	case errors.Is(err, weather.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, "no weather data viewed yet")
	case errors.Is(err, weather.ErrNotConfigured):
		return fiber.NewError(fiber.StatusServiceUnavailable, "weather source not configured")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "weather source timed out")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "weather data not available")
	}
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// lookupQuery identifies a place by city name or by coordinates.
type lookupQuery struct {
	City   string `validate:"max=100"`
	Coords *weather.Coordinates
}

func (q *lookupQuery) bind(c *fiber.Ctx) error {
	coords, err := parseCoordinates(c)
	if err != nil {
		return err
	}
	q.Coords = coords
	q.City = c.Query("city")

	if q.Coords == nil && q.City == "" {
		return errors.New("either city or lat and lon query parameters are required")
	}
	return validate.Struct(q)
}

// parseCoordinates returns nil when neither lat nor lon is present.
func parseCoordinates(c *fiber.Ctx) (*weather.Coordinates, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("invalid lon")
	}

	coords := &weather.Coordinates{Lat: lat, Lon: lon}
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	return coords, nil
}
