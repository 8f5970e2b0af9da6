package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func printCurrent(w io.Writer, cw weather.CurrentWeather) {
	zone := time.FixedZone("", cw.TimezoneOffset)

	fmt.Fprintf(w, "%s, %s\n", cw.City, cw.Country)
	fmt.Fprintf(w, "  %d°C  %s (%s)\n", int(math.Round(cw.Temperature)), cw.ConditionText, cw.Icon)
	fmt.Fprintf(w, "  high %d°C  low %d°C  feels like %d°C\n",
		int(math.Round(cw.TempMax)), int(math.Round(cw.TempMin)), int(math.Round(cw.FeelsLike)))
	fmt.Fprintf(w, "  humidity %d%%  wind %d km/h  pressure %.0f hPa\n",
		cw.Humidity, int(math.Round(cw.WindSpeed*3.6)), cw.Pressure)
	if !cw.Sunrise.IsZero() && !cw.Sunset.IsZero() {
		fmt.Fprintf(w, "  sunrise %s  sunset %s\n",
			cw.Sunrise.In(zone).Format(time.Kitchen), cw.Sunset.In(zone).Format(time.Kitchen))
	}
}

func printForecast(w io.Writer, days []weather.DailySummary, overview weather.Overview) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No forecast data available.")
		return
	}

	for _, d := range days {
		fmt.Fprintf(w, "  %-3s %s  %3d° / %3d°  hum %3d%%  wind %3d km/h  %s\n",
			d.DayLabel, d.Date.Format("Jan 02"), d.HighTemp, d.LowTemp, d.Humidity, d.WindSpeedKmh, d.ConditionText)
	}
	fmt.Fprintf(w, "  avg high %d°  avg low %d°  avg humidity %d%%\n",
		overview.AvgHigh, overview.AvgLow, overview.AvgHumidity)
}

func printRecent(w io.Writer, searches []string) {
	if len(searches) == 0 {
		fmt.Fprintln(w, "No recent searches.")
		return
	}
	for i, s := range searches {
		fmt.Fprintf(w, "%d. %s\n", i+1, s)
	}
}
