package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func sample(local string, temp float64, humidity int, wind float64, id int) RawSample {
	return RawSample{
		LocalTime:     local,
		Temperature:   temp,
		Humidity:      humidity,
		WindSpeed:     wind,
		ConditionID:   id,
		ConditionText: "",
	}
}

func TestAggregateDailyEmptyInput(t *testing.T) {
	got := AggregateDaily(nil, today)
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, AggregateDaily([]RawSample{}, today))
}

func TestAggregateDailyTodayAndTomorrow(t *testing.T) {
	samples := []RawSample{
		sample("2024-03-10 14:00:00", 25, 30, 1, 500),
		sample("2024-03-11 12:00:00", 20, 50, 5, 800),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), d.Date)
	assert.Equal(t, "Mon", d.DayLabel)
	assert.Equal(t, 20, d.HighTemp)
	assert.Equal(t, 20, d.LowTemp)
	assert.Equal(t, 50, d.Humidity)
	assert.Equal(t, 18, d.WindSpeedKmh)
	assert.Equal(t, IconClear, d.ConditionIcon)
	assert.Equal(t, "Clear sky", d.ConditionText)
}

func TestAggregateDailyReductions(t *testing.T) {
	samples := []RawSample{
		sample("2024-03-11 06:00:00", 10, 40, 2.0, 801),
		sample("2024-03-11 12:00:00", 15, 60, 4.0, 801),
		sample("2024-03-11 18:00:00", 12, 50, 3.0, 801),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 1)
	assert.Equal(t, 15, got[0].HighTemp)
	assert.Equal(t, 10, got[0].LowTemp)
	assert.Equal(t, 50, got[0].Humidity)
	// mean 3.0 m/s -> 10.8 km/h
	assert.Equal(t, 11, got[0].WindSpeedKmh)
}

func TestAggregateDailyHumidityAndWindMeans(t *testing.T) {
	samples := []RawSample{
		sample("2024-03-12 03:00:00", 1, 40, 2.0, 800),
		sample("2024-03-12 21:00:00", 2, 60, 4.0, 800),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Humidity)
	assert.Equal(t, 11, got[0].WindSpeedKmh)
}

func TestAggregateDailyRoundsTemperatures(t *testing.T) {
	samples := []RawSample{
		sample("2024-03-11 09:00:00", 14.5, 50, 0, 800),
		sample("2024-03-11 15:00:00", -3.5, 50, 0, 800),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 1)
	assert.Equal(t, 15, got[0].HighTemp)
	assert.Equal(t, -3, got[0].LowTemp)
}

func TestAggregateDailyNoonTieKeepsEarliest(t *testing.T) {
	nine := sample("2024-03-11 09:00:00", 10, 50, 1, 500)
	nine.ConditionText = "light rain"
	fifteen := sample("2024-03-11 15:00:00", 12, 50, 1, 600)
	fifteen.ConditionText = "snow"

	got := AggregateDaily([]RawSample{nine, fifteen}, today)
	require.Len(t, got, 1)
	assert.Equal(t, "light rain", got[0].ConditionText)
	assert.Equal(t, IconRain, got[0].ConditionIcon)
}

func TestAggregateDailyPicksSampleClosestToNoon(t *testing.T) {
	samples := []RawSample{
		sample("2024-03-11 00:00:00", 5, 50, 1, 200),
		sample("2024-03-11 12:00:00", 8, 50, 1, 800),
		sample("2024-03-11 21:00:00", 6, 50, 1, 600),
		// The next day's noon sample must not be borrowed.
		sample("2024-03-12 00:00:00", 4, 50, 1, 200),
		sample("2024-03-12 03:00:00", 4, 50, 1, 600),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 2)
	assert.Equal(t, IconClear, got[0].ConditionIcon)
	assert.Equal(t, IconSnow, got[1].ConditionIcon)
}

func TestAggregateDailyCapsAtFiveDays(t *testing.T) {
	var samples []RawSample
	for day := 16; day >= 11; day-- {
		local := time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC).Format(LocalTimeLayout)
		samples = append(samples, sample(local, float64(day), 50, 1, 800))
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, MaxForecastDays)
	for i, d := range got {
		assert.Equal(t, 11+i, d.Date.Day())
		assert.Equal(t, 11+i, d.HighTemp)
	}
}

func TestAggregateDailyFewerDaysAreNotPadded(t *testing.T) {
	samples := []RawSample{
		sample("2024-03-11 12:00:00", 10, 50, 1, 800),
		sample("2024-03-13 12:00:00", 10, 50, 1, 800),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 2)
	assert.Equal(t, 11, got[0].Date.Day())
	assert.Equal(t, 13, got[1].Date.Day())
}

func TestAggregateDailySkipsUnparsableSamples(t *testing.T) {
	samples := []RawSample{
		sample("not a time", 99, 99, 99, 800),
		sample("", 99, 99, 99, 800),
		sample("2024-03-11T12:00:00Z", 99, 99, 99, 800),
		sample("2024-03-11 12:00:00", 10, 40, 1, 800),
	}

	got := AggregateDaily(samples, today)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].HighTemp)
	assert.Equal(t, 40, got[0].Humidity)
}

func TestAggregateDailyUsesLocalTimeNotInstant(t *testing.T) {
	// The instant is on the 10th in UTC, but the place is already on the 11th.
	s := sample("2024-03-11 01:00:00", 10, 40, 1, 800)
	s.Timestamp = time.Date(2024, time.March, 10, 22, 0, 0, 0, time.UTC)

	got := AggregateDaily([]RawSample{s}, today)
	require.Len(t, got, 1)
	assert.Equal(t, 11, got[0].Date.Day())
}

func TestAggregateDailyTodayResolvedInReferenceZone(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*3600)
	// 20:00 UTC on the 10th is already the 11th at UTC+10.
	ref := time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC).In(zone)

	samples := []RawSample{
		sample("2024-03-11 12:00:00", 10, 40, 1, 800),
		sample("2024-03-12 12:00:00", 11, 40, 1, 800),
	}

	got := AggregateDaily(samples, ref)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].Date.Day())
}

func TestAggregateDailyUnknownConditionFallsBackToCloudy(t *testing.T) {
	s := sample("2024-03-11 12:00:00", 10, 40, 1, 950)
	s.ConditionText = "volcanic ash"

	got := AggregateDaily([]RawSample{s}, today)
	require.Len(t, got, 1)
	assert.Equal(t, IconCloudy, got[0].ConditionIcon)
	assert.Equal(t, "volcanic ash", got[0].ConditionText)
}

func TestAggregateDailyInvariants(t *testing.T) {
	var samples []RawSample
	start := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8*8; i++ {
		ts := start.Add(time.Duration(i) * 3 * time.Hour)
		samples = append(samples, sample(ts.Format(LocalTimeLayout), float64(i%20), i%100, float64(i%7), 800+i%5))
	}

	got := AggregateDaily(samples, today)
	require.LessOrEqual(t, len(got), MaxForecastDays)

	todayKey := today.Format("2006-01-02")
	for i, d := range got {
		assert.NotEqual(t, todayKey, d.Date.Format("2006-01-02"))
		assert.GreaterOrEqual(t, d.HighTemp, d.LowTemp)
		if i > 0 {
			assert.True(t, d.Date.After(got[i-1].Date), "dates must be strictly ascending")
		}
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Overview{}, Summarize(nil))

	days := []DailySummary{
		{HighTemp: 20, LowTemp: 10, Humidity: 40},
		{HighTemp: 23, LowTemp: 11, Humidity: 61},
	}
	assert.Equal(t, Overview{AvgHigh: 22, AvgLow: 11, AvgHumidity: 51}, Summarize(days))
}
