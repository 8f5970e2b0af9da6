package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		valid  bool
	}{
		{"origin", Coordinates{}, true},
		{"north pole", Coordinates{Lat: 90, Lon: 0}, true},
		{"antimeridian", Coordinates{Lat: -45, Lon: -180}, true},
		{"lat above range", Coordinates{Lat: 90.01, Lon: 0}, false},
		{"lat below range", Coordinates{Lat: -91, Lon: 0}, false},
		{"lon above range", Coordinates{Lat: 0, Lon: 180.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coords.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidCoordinates)
		})
	}
}
