package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		p := Location{Latitude: 12.9716, Longitude: 77.5946}
		assert.Equal(t, float64(0), HaversineKm(p, p))
	})

	t.Run("known city pair", func(t *testing.T) {
		// Бангалор — Ченнаи, примерно 290 км по прямой
		bangalore := Location{Latitude: 12.9716, Longitude: 77.5946}
		chennai := Location{Latitude: 13.0827, Longitude: 80.2707}

		d := HaversineKm(bangalore, chennai)
		assert.InDelta(t, 290, d, 10)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Location{Latitude: 55.7558, Longitude: 37.6173}
		b := Location{Latitude: 59.9311, Longitude: 30.3609}
		assert.InDelta(t, HaversineKm(a, b), HaversineKm(b, a), 1e-9)
	})
}

func TestWithinRadiusKm(t *testing.T) {
	center := Location{Latitude: 12.9716, Longitude: 77.5946}

	// ~1.4 км от центра
	near := Location{Latitude: 12.9816, Longitude: 77.6046}
	// ~150 км от центра
	far := Location{Latitude: 13.9, Longitude: 78.5}

	assert.True(t, near.WithinRadiusKm(center, DefaultSearchRadiusKm))
	assert.False(t, far.WithinRadiusKm(center, DefaultSearchRadiusKm))

	t.Run("boundary is inclusive", func(t *testing.T) {
		exact := HaversineKm(center, near)
		assert.True(t, near.WithinRadiusKm(center, exact))
	})
}
