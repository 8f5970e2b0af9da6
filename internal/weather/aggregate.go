package weather

import (
	"math"
	"sort"
	"time"
)

const (
	// LocalTimeLayout is the layout of RawSample.LocalTime.
	LocalTimeLayout = "2006-01-02 15:04:05"

	// MaxForecastDays caps the number of daily summaries.
	MaxForecastDays = 5

	dayKeyLayout = "2006-01-02"
	msToKmh      = 3.6
	noonHour     = 12
)

// dayGroup collects the usable samples of one calendar day.
type dayGroup struct {
	date    time.Time
	samples []RawSample
	hours   []int
}

// AggregateDaily reduces interval samples to one summary per calendar day.
// Days are keyed by each sample's local-time string; the day of reference
// (in reference's location) is skipped and at most MaxForecastDays days are
// returned in ascending order. Samples whose local time cannot be parsed are
// ignored.
func AggregateDaily(samples []RawSample, reference time.Time) []DailySummary {
	if len(samples) == 0 {
		return []DailySummary{}
	}

	today := reference.Format(dayKeyLayout)
	groups := make(map[string]*dayGroup)

	for _, s := range samples {
		local, err := time.Parse(LocalTimeLayout, s.LocalTime)
		if err != nil {
			continue
		}

		key := local.Format(dayKeyLayout)
		if key == today {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &dayGroup{
				date: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
			}
			groups[key] = g
		}
		g.samples = append(g.samples, s)
		g.hours = append(g.hours, local.Hour())
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > MaxForecastDays {
		keys = keys[:MaxForecastDays]
	}

	out := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, summarizeDay(groups[k]))
	}
	return out
}

func summarizeDay(g *dayGroup) DailySummary {
	var (
		high        = math.Inf(-1)
		low         = math.Inf(1)
		sumHumidity float64
		sumWind     float64
		rep         int
		repDistance = math.MaxInt
	)

	for i, s := range g.samples {
		high = math.Max(high, s.Temperature)
		low = math.Min(low, s.Temperature)
		sumHumidity += float64(s.Humidity)
		sumWind += s.WindSpeed

		// Strict comparison keeps the earliest sample on ties.
		if d := absInt(g.hours[i] - noonHour); d < repDistance {
			rep = i
			repDistance = d
		}
	}

	n := float64(len(g.samples))
	representative := g.samples[rep]
	_, icon, text := ClassifyCondition(representative.ConditionID, representative.ConditionText)

	return DailySummary{
		Date:          g.date,
		DayLabel:      g.date.Format("Mon"),
		ConditionText: text,
		ConditionIcon: icon,
		HighTemp:      roundHalfUp(high),
		LowTemp:       roundHalfUp(low),
		Humidity:      roundHalfUp(sumHumidity / n),
		WindSpeedKmh:  roundHalfUp(sumWind / n * msToKmh),
	}
}

// Summarize averages the highs, lows and humidity of a forecast.
func Summarize(days []DailySummary) Overview {
	if len(days) == 0 {
		return Overview{}
	}

	var high, low, humidity float64
	for _, d := range days {
		high += float64(d.HighTemp)
		low += float64(d.LowTemp)
		humidity += float64(d.Humidity)
	}

	n := float64(len(days))
	return Overview{
		AvgHigh:     roundHalfUp(high / n),
		AvgLow:      roundHalfUp(low / n),
		AvgHumidity: roundHalfUp(humidity / n),
	}
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
