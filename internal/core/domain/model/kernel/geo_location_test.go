package kernel_test

import (
	"math"
	"testing"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoLocation(t *testing.T) {
	t.Run("accepts the boundaries", func(t *testing.T) {
		for _, c := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
			loc, err := kernel.NewGeoLocation(c[0], c[1], "")

			require.NoError(t, err)
			assert.Equal(t, c[0], loc.Latitude())
			assert.Equal(t, c[1], loc.Longitude())
			assert.NoError(t, loc.Validate())
		}
	})

	t.Run("keeps the address", func(t *testing.T) {
		loc, err := kernel.NewGeoLocation(52.52, 13.405, "Alexanderplatz 1")

		require.NoError(t, err)
		assert.Equal(t, "Alexanderplatz 1", loc.Address())
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		tests := []struct {
			name     string
			lat, lon float64
		}{
			{"latitude above", 90.0001, 0},
			{"latitude below", -91, 0},
			{"longitude above", 0, 180.5},
			{"longitude below", 0, -181},
			{"NaN latitude", math.NaN(), 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := kernel.NewGeoLocation(tt.lat, tt.lon, "")

				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.Error(t, kernel.GeoLocation{}.Validate())
	})
}

func TestGeoLocation_DistanceKm(t *testing.T) {
	berlin, err := kernel.NewGeoLocation(52.5200, 13.4050, "")
	require.NoError(t, err)
	paris, err := kernel.NewGeoLocation(48.8566, 2.3522, "")
	require.NoError(t, err)

	d, err := berlin.DistanceKm(paris)
	require.NoError(t, err)
	assert.InDelta(t, 878, d, 5)

	back, err := paris.DistanceKm(berlin)
	require.NoError(t, err)
	assert.InDelta(t, d, back, 1e-9)

	self, err := berlin.DistanceKm(berlin)
	require.NoError(t, err)
	assert.Zero(t, self)

	_, err = berlin.DistanceKm(kernel.GeoLocation{})
	assert.Error(t, err)
}

func TestGeoLocation_DistanceKmAntipodes(t *testing.T) {
	north, err := kernel.NewGeoLocation(90, 0, "")
	require.NoError(t, err)
	south, err := kernel.NewGeoLocation(-90, 0, "")
	require.NoError(t, err)

	d, err := north.DistanceKm(south)

	require.NoError(t, err)
	assert.InDelta(t, math.Pi*6371.0, d, 1e-6)
}
