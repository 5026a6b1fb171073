package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jkimani/device_tracking_system/internal/mobile"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestMobileService — вспомогательная функция для создания сервиса с мокированным хранилищем.
// Справочник пользователей и операторы собираются на реальных симулированных адаптерах.
func newTestMobileService(t *testing.T) (MobileTrackingService, *mocks.MockTrackingRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockTrackingRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	directory := mobile.StaticUserDirectory{
		"officer-1": {ID: "officer-1", Role: models.RolePolice, IsActive: true},
		"citizen-1": {ID: "citizen-1", Role: models.RoleCitizen, IsActive: true},
	}

	registry := mobile.NewAdapterRegistry(
		mobile.NewSimulatedAdapter(mobile.SimulatedAdapterConfig{
			Carrier:   models.CarrierSafaricom,
			CellSites: []models.Coordinate{{Latitude: -1.2921, Longitude: 36.8219}},
		}),
	)

	pipeline := mobile.NewPipeline(mobile.NewDispatchAuthorizer(directory), registry, nil, logger)
	return NewMobileTrackingService(pipeline, repoMock, logger), repoMock
}

func TestRequestTracking_LostDeviceSucceeds(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestMobileService(t)
	ctx := context.Background()
	req := &models.MobileTrackingRequest{
		MobileNumber: "+254701000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	// Ожидания: итог запроса фиксируется в хранилище
	repoMock.EXPECT().
		SaveMobileRequest(ctx, req).
		Return(nil).
		Times(1)

	// Действие
	result, err := svc.RequestTracking(ctx, req)

	// Проверки
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotEqual(t, uuid.Nil, result.RequestID)
	assert.Equal(t, models.CarrierSafaricom, result.Carrier)
	require.NotNil(t, result.Location)
}

func TestRequestTracking_UnauthorizedNotPersisted(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestMobileService(t)
	ctx := context.Background()
	req := &models.MobileTrackingRequest{
		MobileNumber: "+254701000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "citizen-1",
	}

	// Ожидания: отказ авторизации не пишется в хранилище
	repoMock.EXPECT().SaveMobileRequest(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.RequestTracking(ctx, req)

	// Проверки
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.Unauthorized)
	assert.Equal(t, "Unauthorized", result.Error)
	assert.NotEqual(t, uuid.Nil, result.RequestID)
}

func TestRequestTracking_UnknownCarrierPersistedAsFailed(t *testing.T) {
	svc, repoMock := newTestMobileService(t)
	ctx := context.Background()
	req := &models.MobileTrackingRequest{
		MobileNumber: "+254999000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	repoMock.EXPECT().SaveMobileRequest(ctx, req).Return(nil).Times(1)

	result, err := svc.RequestTracking(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Unknown network provider", result.Error)
	assert.Equal(t, models.RequestFailed, req.State())
}

func TestRequestTracking_PersistFailureDoesNotChangeOutcome(t *testing.T) {
	svc, repoMock := newTestMobileService(t)
	ctx := context.Background()
	req := &models.MobileTrackingRequest{
		MobileNumber: "+254701000000",
		RequestType:  models.RequestLostDevice,
		OfficerID:    "officer-1",
	}

	repoMock.EXPECT().SaveMobileRequest(ctx, req).Return(assert.AnError).Times(1)

	result, err := svc.RequestTracking(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Success)
}
