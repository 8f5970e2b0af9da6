package store

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func newSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	s, err := NewSQLiteKV(filepath.Join(t.TempDir(), "weather.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"memory": NewMemoryKV(),
		"sqlite": newSQLite(t),
	}
}

func TestKVGetSetDelete(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set("k", "v1"))
			require.NoError(t, kv.Set("k", "v2"))
			v, err := kv.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Delete("k"))
			_, err = kv.Get("k")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Delete("never-set"))
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.db")

	s, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("last_weather", `{"city":"Paris"}`))
	require.NoError(t, s.Close())

	s, err = NewSQLiteKV(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get("last_weather")
	require.NoError(t, err)
	assert.Equal(t, `{"city":"Paris"}`, v)
}

func TestOpen(t *testing.T) {
	kv, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = Open(DriverSQLite, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open("redis", "")
	assert.Error(t, err)
}

func TestHistoryLastWeather(t *testing.T) {
	h := NewHistory(NewMemoryKV(), 0)

	_, err := h.LastWeather()
	assert.ErrorIs(t, err, ErrNotFound)

	w := weather.CurrentWeather{
		City:        "Paris",
		Country:     "FR",
		Coordinates: weather.Coordinates{Lat: 48.85, Lon: 2.35},
		Temperature: 11.5,
		ConditionID: 500,
		Icon:        weather.IconRain,
	}
	require.NoError(t, h.SaveLastWeather(w))

	got, err := h.LastWeather()
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestHistoryLastWeatherCorrupt(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(lastWeatherKey, "{not json"))

	_, err := NewHistory(kv, 5).LastWeather()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestHistoryRecentSearches(t *testing.T) {
	h := NewHistory(newSQLite(t), 5)

	recent, err := h.RecentSearches()
	require.NoError(t, err)
	assert.Empty(t, recent)

	for _, city := range []string{"Paris", "london", " Tokyo ", "Rome", "Oslo", "Lima"} {
		_, err := h.AddRecentSearch(city)
		require.NoError(t, err)
	}

	recent, err = h.RecentSearches()
	require.NoError(t, err)
	assert.Equal(t, []string{"lima", "oslo", "rome", "tokyo", "london"}, recent)

	// Re-searching moves the entry to the front without duplicating it.
	recent, err = h.AddRecentSearch("ROME")
	require.NoError(t, err)
	assert.Equal(t, []string{"rome", "lima", "oslo", "tokyo", "london"}, recent)

	recent, err = h.AddRecentSearch("   ")
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	require.NoError(t, h.ClearRecentSearches())
	recent, err = h.RecentSearches()
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestHistoryConcurrentRecentSearches(t *testing.T) {
	const searches = 50

	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			h := NewHistory(kv, searches*2)

			var wg sync.WaitGroup
			for i := 0; i < searches; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					_, err := h.AddRecentSearch(fmt.Sprintf("city-%d", n))
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			got, err := h.RecentSearches()
			require.NoError(t, err)
			assert.Len(t, got, searches)
			for i := 0; i < searches; i++ {
				assert.Contains(t, got, fmt.Sprintf("city-%d", i))
			}
		})
	}
}
