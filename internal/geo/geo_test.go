package geo

import (
	"testing"

	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	nairobiCBD = models.Coordinate{Latitude: -1.2921, Longitude: 36.8219}
	westlands  = models.Coordinate{Latitude: -1.2676, Longitude: 36.8108}
)

func TestDistanceMeters_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, DistanceMeters(nairobiCBD, nairobiCBD), 1e-6)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	ab := DistanceMeters(nairobiCBD, westlands)
	ba := DistanceMeters(westlands, nairobiCBD)

	assert.InDelta(t, ab, ba, 1e-6)
	assert.Greater(t, ab, 0.0)
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// Найроби CBD - Westlands, около 3 км
	d := DistanceMeters(nairobiCBD, westlands)
	assert.InDelta(t, 2980, d, 150)
}

func TestBearingDegrees_Normalized(t *testing.T) {
	// Точка строго восточнее на экваторе - азимут около 90
	a := models.Coordinate{Latitude: 0, Longitude: 36}
	b := models.Coordinate{Latitude: 0, Longitude: 37}
	assert.InDelta(t, 90, BearingDegrees(a, b), 0.5)

	// Обратное направление - около 270, не отрицательное
	back := BearingDegrees(b, a)
	assert.GreaterOrEqual(t, back, 0.0)
	assert.Less(t, back, 360.0)
	assert.InDelta(t, 270, back, 0.5)
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{500, "500m"},
		{999, "999m"},
		{1500, "1.5km"},
		{9999, "10.0km"},
		{25000, "25km"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDistance(tt.meters))
	}
}

func TestWithinKenya(t *testing.T) {
	assert.True(t, WithinKenya(nairobiCBD))
	assert.False(t, WithinKenya(models.Coordinate{Latitude: 48.85, Longitude: 2.35}))
}
