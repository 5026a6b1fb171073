package mobile

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	accepted []models.Location
}

func (s *fakeSink) Accept(entityID string, sample models.Location) (*models.TrackingUpdate, bool, error) {
	s.accepted = append(s.accepted, sample)
	return &models.TrackingUpdate{
		ID:       uuid.New(),
		EntityID: entityID,
		Location: sample,
	}, true, nil
}

func newTestPipeline(sink SampleSink) *Pipeline {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	registry := NewAdapterRegistry(
		NewSimulatedAdapter(SimulatedAdapterConfig{
			Carrier:   models.CarrierSafaricom,
			CellSites: []models.Coordinate{{Latitude: -1.2921, Longitude: 36.8219}},
		}),
		// Адаптер Airtel оставлен без базовых станций - несконфигурирован
		NewSimulatedAdapter(SimulatedAdapterConfig{Carrier: models.CarrierAirtel}),
	)

	return NewPipeline(NewDispatchAuthorizer(testDirectory()), registry, sink, logger)
}

func TestTrack_LostDeviceSucceeds(t *testing.T) {
	// Подготовка
	sink := &fakeSink{}
	pipeline := newTestPipeline(sink)
	req := &models.MobileTrackingRequest{
		EntityID:     "device-1",
		MobileNumber: "+254701000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	// Действие
	result := pipeline.Track(context.Background(), req)

	// Проверки
	require.True(t, result.Success)
	assert.NotEqual(t, uuid.Nil, result.RequestID)
	assert.Equal(t, models.CarrierSafaricom, result.Carrier)
	require.NotNil(t, result.Location)
	assert.Equal(t, models.SourceNetwork, result.Location.Source)
	require.NotNil(t, result.UpdateID)

	assert.Equal(t, models.RequestSucceeded, req.State())
	require.Len(t, sink.accepted, 1)
}

func TestTrack_UnauthorizedTerminatesWithoutDispatch(t *testing.T) {
	sink := &fakeSink{}
	pipeline := newTestPipeline(sink)
	req := &models.MobileTrackingRequest{
		EntityID:     "device-1",
		MobileNumber: "+254701000000",
		RequestType:  models.RequestCourtOrder, // без номера постановления
		OfficerID:    "officer-1",
	}

	result := pipeline.Track(context.Background(), req)

	require.False(t, result.Success)
	assert.True(t, result.Unauthorized)
	assert.Equal(t, "Unauthorized", result.Error)
	assert.NotEqual(t, uuid.Nil, result.RequestID)
	assert.Equal(t, models.RequestFailed, req.State())
	assert.Empty(t, sink.accepted)
}

func TestTrack_UnknownCarrierFails(t *testing.T) {
	pipeline := newTestPipeline(&fakeSink{})
	req := &models.MobileTrackingRequest{
		MobileNumber: "+254999000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	result := pipeline.Track(context.Background(), req)

	require.False(t, result.Success)
	assert.False(t, result.Unauthorized)
	assert.Equal(t, "Unknown network provider", result.Error)
	assert.Equal(t, models.RequestFailed, req.State())
}

func TestTrack_UnconfiguredCarrierFails(t *testing.T) {
	pipeline := newTestPipeline(&fakeSink{})
	req := &models.MobileTrackingRequest{
		MobileNumber: "+254733999999",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	result := pipeline.Track(context.Background(), req)

	require.False(t, result.Success)
	assert.Equal(t, models.CarrierAirtel, result.Carrier)
	assert.Contains(t, result.Error, "Carrier unavailable")
	assert.Equal(t, models.RequestFailed, req.State())
}

func TestTrack_TerminalStateTransitionsExactlyOnce(t *testing.T) {
	pipeline := newTestPipeline(&fakeSink{})
	req := &models.MobileTrackingRequest{
		EntityID:     "device-1",
		MobileNumber: "+254701000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	first := pipeline.Track(context.Background(), req)
	require.True(t, first.Success)
	require.Equal(t, models.RequestSucceeded, req.State())

	// Повторная прогонка того же запроса не меняет терминального состояния
	second := pipeline.Track(context.Background(), req)
	assert.False(t, second.Success)
	assert.Equal(t, models.RequestSucceeded, req.State())
}
