package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const lookupTimeout = 30 * time.Second

type placeFlags struct {
	city     string
	lat, lon float64
}

func (f *placeFlags) register(cmd *cobra.Command, withCity bool) {
	if withCity {
		cmd.Flags().StringVar(&f.city, "city", "", "City name, optionally with a country code (\"Paris,FR\")")
	}
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "Latitude in decimal degrees")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "Longitude in decimal degrees")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	if withCity {
		cmd.MarkFlagsMutuallyExclusive("city", "lat")
	}
}

func (f *placeFlags) coords(cmd *cobra.Command) (weather.Coordinates, bool) {
	if !cmd.Flags().Changed("lat") {
		return weather.Coordinates{}, false
	}
	return weather.Coordinates{Lat: f.lat, Lon: f.lon}, true
}

func newCurrentCommand() *cobra.Command {
	var place placeFlags

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show current conditions for a city or a coordinate pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			var w weather.CurrentWeather
			if coords, ok := place.coords(cmd); ok {
				w, err = a.service.LookupCoordinates(ctx, coords)
			} else if place.city != "" {
				w, err = a.service.SearchCity(ctx, place.city)
			} else {
				return errors.New("either --city or --lat/--lon is required")
			}
			if err != nil {
				return err
			}

			printCurrent(cmd.OutOrStdout(), w)
			return nil
		},
	}
	place.register(cmd, true)
	return cmd
}

func newForecastCommand() *cobra.Command {
	var place placeFlags

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show the 5-day forecast (defaults to the last viewed place)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			if coords, ok := place.coords(cmd); ok {
				days, err := a.service.Forecast(ctx, coords)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Forecast for %.4f, %.4f\n", coords.Lat, coords.Lon)
				printForecast(out, days, weather.Summarize(days))
				return nil
			}

			view, err := a.service.ForecastForLastViewed(ctx)
			if errors.Is(err, weather.ErrNoData) {
				return errors.New("no place viewed yet; run `current` first or pass --lat/--lon")
			}
			if err != nil {
				return err
			}
			printCurrent(out, view.Current)
			fmt.Fprintln(out)
			printForecast(out, view.Days, view.Overview)
			return nil
		},
	}
	place.register(cmd, false)
	return cmd
}

func newRecentCommand() *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List or clear recent city searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := a.service.ClearRecentSearches(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Recent searches cleared.")
				return nil
			}

			searches, err := a.service.RecentSearches()
			if err != nil {
				return err
			}
			printRecent(out, searches)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent searches")
	return cmd
}
