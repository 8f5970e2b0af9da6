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

// DefaultOpenMeteoBaseURL is the Open-Meteo forecast endpoint.
const DefaultOpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

const openMeteoTimeLayout = "2006-01-02T15:04"

// OpenMeteoProvider serves the interval forecast from Open-Meteo. It needs no
// API key and is used when OpenWeatherMap cannot answer.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(httpCfg HTTPClientConfig, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoBaseURL
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoPayload struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Hourly           struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		Humidity    []*float64 `json:"relative_humidity_2m"`
		WindSpeed   []*float64 `json:"wind_speed_10m"`
		WeatherCode []*int     `json:"weather_code"`
	} `json:"hourly"`
}

// Forecast requests hourly data in the place's own timezone and keeps every
// third hour, matching the 3-hour resolution of the primary source.
func (p *OpenMeteoProvider) Forecast(ctx context.Context, coords weather.Coordinates) (weather.ForecastSeries, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
		values.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code")
		values.Set("temperature_unit", "celsius")
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", "auto")
		values.Set("forecast_days", "6")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastSeries{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("%w: decode forecast: %v", weather.ErrUnavailable, err)
	}

	zone := time.FixedZone("", payload.UTCOffsetSeconds)
	h := payload.Hourly

	samples := make([]weather.RawSample, 0, len(h.Time)/3+1)
	for i, ts := range h.Time {
		local, err := time.ParseInLocation(openMeteoTimeLayout, ts, zone)
		if err != nil || local.Hour()%3 != 0 {
			continue
		}
		temp := at(h.Temperature, i)
		if temp == nil {
			continue
		}

		s := weather.RawSample{
			Timestamp:   local.UTC(),
			LocalTime:   local.Format(weather.LocalTimeLayout),
			Temperature: *temp,
		}
		if v := at(h.Humidity, i); v != nil {
			s.Humidity = int(*v + 0.5)
		}
		if v := at(h.WindSpeed, i); v != nil {
			s.WindSpeed = *v
		}
		if v := at(h.WeatherCode, i); v != nil {
			s.ConditionID, s.ConditionText = translateWMOCode(*v)
		}
		samples = append(samples, s)
	}

	return weather.ForecastSeries{
		Provider: p.name,
		Zone:     zone,
		Samples:  samples,
	}, nil
}

func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

type wmoMapping struct {
	id   int
	text string
}

// wmoCodes translates WMO weather interpretation codes into the condition id
// grouping used throughout the weather package.
var wmoCodes = map[int]wmoMapping{
	0:  {800, "clear sky"},
	1:  {801, "mainly clear"},
	2:  {802, "partly cloudy"},
	3:  {804, "overcast"},
	45: {741, "fog"},
	48: {741, "depositing rime fog"},
	51: {300, "light drizzle"},
	53: {301, "drizzle"},
	55: {302, "dense drizzle"},
	56: {311, "light freezing drizzle"},
	57: {312, "dense freezing drizzle"},
	61: {500, "light rain"},
	63: {501, "moderate rain"},
	65: {502, "heavy rain"},
	66: {511, "light freezing rain"},
	67: {511, "heavy freezing rain"},
	71: {600, "light snow"},
	73: {601, "snow"},
	75: {602, "heavy snow"},
	77: {600, "snow grains"},
	80: {520, "light rain showers"},
	81: {521, "rain showers"},
	82: {522, "violent rain showers"},
	85: {620, "light snow showers"},
	86: {622, "heavy snow showers"},
	95: {211, "thunderstorm"},
	96: {201, "thunderstorm with light hail"},
	99: {202, "thunderstorm with heavy hail"},
}

func translateWMOCode(code int) (int, string) {
	if m, ok := wmoCodes[code]; ok {
		return m.id, m.text
	}
	return 0, ""
}
