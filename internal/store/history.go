package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const (
	lastWeatherKey    = "last_weather"
	recentSearchesKey = "recent_searches"

	// DefaultRecentLimit is how many recent searches are kept.
	DefaultRecentLimit = 5
)

// History keeps the last-viewed weather record and the recent search list on
// top of a KV. Values are stored as JSON.
type History struct {
	mu          sync.Mutex // guards read-modify-write of the recent list
	kv          KV
	recentLimit int
}

var _ weather.History = (*History)(nil)

// NewHistory creates a History. A non-positive limit uses DefaultRecentLimit.
func NewHistory(kv KV, recentLimit int) *History {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &History{kv: kv, recentLimit: recentLimit}
}

// SaveLastWeather replaces the last-viewed record.
func (h *History) SaveLastWeather(w weather.CurrentWeather) error {
	return h.put(lastWeatherKey, w)
}

// LastWeather returns the last-viewed record or ErrNotFound.
func (h *History) LastWeather() (weather.CurrentWeather, error) {
	var w weather.CurrentWeather
	if err := h.load(lastWeatherKey, &w); err != nil {
		return weather.CurrentWeather{}, err
	}
	return w, nil
}

// AddRecentSearch normalizes city (trimmed, lower-cased), moves it to the
// front of the list and drops entries beyond the limit.
func (h *History) AddRecentSearch(city string) ([]string, error) {
	normalized := strings.ToLower(strings.TrimSpace(city))

	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.recentSearches()
	if normalized == "" {
		return current, err
	}
	if err != nil {
		return nil, err
	}

	updated := make([]string, 0, h.recentLimit)
	updated = append(updated, normalized)
	for _, c := range current {
		if strings.ToLower(c) == normalized {
			continue
		}
		updated = append(updated, c)
	}
	if len(updated) > h.recentLimit {
		updated = updated[:h.recentLimit]
	}

	if err := h.put(recentSearchesKey, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// RecentSearches returns the stored list, most recent first. An absent list
// is empty, not an error.
func (h *History) RecentSearches() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recentSearches()
}

func (h *History) recentSearches() ([]string, error) {
	var searches []string
	err := h.load(recentSearchesKey, &searches)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return searches, nil
}

// ClearRecentSearches removes the list entirely.
func (h *History) ClearRecentSearches() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kv.Delete(recentSearchesKey)
}

func (h *History) put(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return h.kv.Set(key, string(raw))
}

func (h *History) load(key string, v interface{}) error {
	raw, err := h.kv.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
