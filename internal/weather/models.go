package weather

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionDrizzle Condition = "drizzle"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Icon names a condition glyph understood by front-ends.
type Icon string

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Validate checks the pair against its struct tag ranges.
func (c Coordinates) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return nil
}

// CurrentWeather is the current-conditions record for one place. It is what
// gets persisted as the last-viewed result.
type CurrentWeather struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Timestamp   time.Time   `json:"timestamp"` // always UTC
	// TimezoneOffset is the place's shift from UTC in seconds.
	TimezoneOffset int `json:"timezoneOffset"`

	Temperature float64 `json:"temperatureC"`
	FeelsLike   float64 `json:"feelsLikeC"`
	TempMin     float64 `json:"tempMinC"`
	TempMax     float64 `json:"tempMaxC"`
	Humidity    int     `json:"humidityPercent"`
	Pressure    float64 `json:"pressureHpa"`
	WindSpeed   float64 `json:"windSpeedMs"`
	Visibility  int     `json:"visibilityM,omitempty"`

	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`

	ConditionID   int       `json:"conditionId"`
	ConditionText string    `json:"conditionText"`
	Condition     Condition `json:"condition"`
	Icon          Icon      `json:"icon"`

	Provider string `json:"provider"`
}

// RawSample is one 3-hour interval observation from a forecast source.
// Temperature is Celsius and WindSpeed m/s; sources normalize before
// returning samples.
type RawSample struct {
	Timestamp time.Time
	// LocalTime is "YYYY-MM-DD HH:MM:SS" in the queried place's local time.
	LocalTime     string
	Temperature   float64
	Humidity      int
	WindSpeed     float64
	ConditionID   int
	ConditionText string
}

// ForecastSeries is the raw interval feed returned by a forecast source.
type ForecastSeries struct {
	Provider string
	// Zone is the location in which the samples' LocalTime strings are
	// expressed. "Today" is resolved in this zone.
	Zone    *time.Location
	Samples []RawSample
}

// DailySummary is one aggregated forecast day. It is derived on demand and
// never stored.
type DailySummary struct {
	Date          time.Time `json:"date"`
	DayLabel      string    `json:"day"`
	ConditionText string    `json:"condition"`
	ConditionIcon Icon      `json:"icon"`
	HighTemp      int       `json:"tempHigh"`
	LowTemp       int       `json:"tempLow"`
	Humidity      int       `json:"humidity"`
	WindSpeedKmh  int       `json:"windSpeedKmh"`
}

// Overview averages a forecast's days.
type Overview struct {
	AvgHigh     int `json:"avgHigh"`
	AvgLow      int `json:"avgLow"`
	AvgHumidity int `json:"avgHumidity"`
}

// ForecastView bundles the last-viewed record with its derived forecast.
type ForecastView struct {
	Current  CurrentWeather `json:"current"`
	Days     []DailySummary `json:"days"`
	Overview Overview       `json:"overview"`
}
