package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider serves current conditions and the 5 day / 3 hour
// forecast from OpenWeatherMap. All requests ask for metric units.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(httpCfg HTTPClientConfig, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// owmCondition is one entry of the "weather" array.
type owmCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owmCurrentPayload struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []owmCondition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

type owmForecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Weather []owmCondition `json:"weather"`
		Wind    *struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// CurrentByCity looks a city up by name ("London" or "London,GB").
func (p *OpenWeatherProvider) CurrentByCity(ctx context.Context, city string) (weather.CurrentWeather, error) {
	values := url.Values{}
	values.Set("q", city)
	return p.current(ctx, values)
}

// CurrentByCoords looks a place up by coordinates.
func (p *OpenWeatherProvider) CurrentByCoords(ctx context.Context, coords weather.Coordinates) (weather.CurrentWeather, error) {
	return p.current(ctx, coordValues(coords))
}

func (p *OpenWeatherProvider) current(ctx context.Context, values url.Values) (weather.CurrentWeather, error) {
	var payload owmCurrentPayload
	if err := p.get(ctx, "/weather", values, &payload); err != nil {
		return weather.CurrentWeather{}, err
	}

	w := weather.CurrentWeather{
		City:    payload.Name,
		Country: payload.Sys.Country,
		Coordinates: weather.Coordinates{
			Lat: payload.Coord.Lat,
			Lon: payload.Coord.Lon,
		},
		Timestamp:      unixUTC(payload.Dt),
		TimezoneOffset: payload.Timezone,
		Temperature:    payload.Main.Temp,
		FeelsLike:      payload.Main.FeelsLike,
		TempMin:        payload.Main.TempMin,
		TempMax:        payload.Main.TempMax,
		Humidity:       payload.Main.Humidity,
		Pressure:       payload.Main.Pressure,
		Visibility:     payload.Visibility,
		Sunrise:        unixUTC(payload.Sys.Sunrise),
		Sunset:         unixUTC(payload.Sys.Sunset),
		Provider:       p.name,
	}
	if payload.Wind != nil {
		w.WindSpeed = payload.Wind.Speed
	}
	if w.Timestamp.IsZero() {
		w.Timestamp = time.Now().UTC()
	}

	var desc string
	if len(payload.Weather) > 0 {
		w.ConditionID = payload.Weather[0].ID
		desc = payload.Weather[0].Description
	}
	w.Condition, w.Icon, w.ConditionText = weather.ClassifyCondition(w.ConditionID, desc)

	return w, nil
}

// Forecast returns the 3-hour interval feed. Local-time strings are rendered
// in the city's own UTC offset so that days split at local midnight.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, coords weather.Coordinates) (weather.ForecastSeries, error) {
	var payload owmForecastPayload
	if err := p.get(ctx, "/forecast", coordValues(coords), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	zone := time.UTC
	if payload.City.Timezone != 0 {
		zone = time.FixedZone("", payload.City.Timezone)
	}

	samples := make([]weather.RawSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.RawSample{
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			LocalTime:   item.DtTxt,
		}
		switch {
		case item.Dt != 0:
			s.Timestamp = unixUTC(item.Dt)
		default:
			// dt_txt is UTC; move it into the city's offset like dt.
			if t, err := time.ParseInLocation(weather.LocalTimeLayout, item.DtTxt, time.UTC); err == nil {
				s.Timestamp = t
			}
		}
		if !s.Timestamp.IsZero() {
			s.LocalTime = s.Timestamp.In(zone).Format(weather.LocalTimeLayout)
		}
		if item.Wind != nil {
			s.WindSpeed = item.Wind.Speed
		}
		if len(item.Weather) > 0 {
			s.ConditionID = item.Weather[0].ID
			s.ConditionText = item.Weather[0].Description
		}
		samples = append(samples, s)
	}

	return weather.ForecastSeries{
		Provider: p.name,
		Zone:     zone,
		Samples:  samples,
	}, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, values url.Values, out interface{}) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key: %w", weather.ErrNotConfigured)
	}

	buildRequest := func() (*http.Request, error) {
		q := url.Values{}
		for k, v := range values {
			q[k] = v
		}
		q.Set("appid", p.apiKey)
		q.Set("units", "metric")

		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, q.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", weather.ErrUnavailable, path, err)
	}
	return nil
}

func coordValues(coords weather.Coordinates) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	return values
}

func unixUTC(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
