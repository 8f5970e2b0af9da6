package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key holds no value.
	ErrNotFound = errors.New("key not found")
)

// KV is a durable string key-value store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the KV implementation selected by driver.
func Open(driver, path string) (KV, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverSQLite:
		return NewSQLiteKV(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
