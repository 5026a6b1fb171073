package mobile

import (
	"context"
	"testing"
	"time"

	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCarrier(t *testing.T) {
	tests := []struct {
		number   string
		expected models.Carrier
	}{
		{"+254701000000", models.CarrierSafaricom},
		{"0722123456", models.CarrierSafaricom},
		{"254110000000", models.CarrierSafaricom},
		{"+254733999999", models.CarrierAirtel},
		{"0755000111", models.CarrierAirtel},
		{"+254770123456", models.CarrierTelkom},
		{"+254 770 123 456", models.CarrierTelkom},
		{"+254999000000", models.CarrierUnknown},
		{"12", models.CarrierUnknown},
		{"", models.CarrierUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ResolveCarrier(tt.number), "number %q", tt.number)
	}
}

func TestSimulatedAdapter_Locate(t *testing.T) {
	adapter := NewSimulatedAdapter(SimulatedAdapterConfig{
		Carrier:       models.CarrierSafaricom,
		BaseAccuracyM: 150,
		CellSites:     []models.Coordinate{{Latitude: -1.2921, Longitude: 36.8219}},
	})

	loc, err := adapter.Locate(context.Background(), "+254701000000")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, models.SourceNetwork, loc.Source)
	assert.Greater(t, loc.AccuracyMeters, 0.0)
	assert.InDelta(t, -1.2921, loc.Coordinate.Latitude, 0.01)
}

func TestSimulatedAdapter_UnconfiguredFails(t *testing.T) {
	adapter := NewSimulatedAdapter(SimulatedAdapterConfig{Carrier: models.CarrierTelkom})

	_, err := adapter.Locate(context.Background(), "+254770123456")
	assert.ErrorIs(t, err, ErrCarrierUnavailable)
}

func TestSimulatedAdapter_RespectsContextCancellation(t *testing.T) {
	adapter := NewSimulatedAdapter(SimulatedAdapterConfig{
		Carrier:   models.CarrierAirtel,
		Latency:   5 * time.Second,
		CellSites: []models.Coordinate{{Latitude: -1.3, Longitude: 36.8}},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := adapter.Locate(ctx, "+254733999999")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewAdapterRegistry(t *testing.T) {
	registry := NewAdapterRegistry(
		NewSimulatedAdapter(SimulatedAdapterConfig{Carrier: models.CarrierSafaricom}),
		NewSimulatedAdapter(SimulatedAdapterConfig{Carrier: models.CarrierAirtel}),
	)

	require.Len(t, registry, 2)
	assert.Contains(t, registry, models.CarrierSafaricom)
	assert.Contains(t, registry, models.CarrierAirtel)
}
