package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jkimani/device_tracking_system/internal/broadcast"
	broadcast_mocks "github.com/jkimani/device_tracking_system/internal/broadcast/mocks"
	"github.com/jkimani/device_tracking_system/internal/config"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/service/mocks"
	"github.com/jkimani/device_tracking_system/internal/tracking"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestTrackingService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestTrackingService(t *testing.T) (TrackingService, *mocks.MockTrackingRepository, *broadcast_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockTrackingRepository(ctrl)
	publisherMock := broadcast_mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		SignificanceThresholdMeters: 10,
		HistoryCap:                  100,
		SimulationInterval:          time.Hour, // Симулятор не должен тикать в тестах
		SimulationJitterMeters:      100,
	}

	bus := tracking.NewBus(16, logger)
	store := tracking.NewStore(tracking.NewPositionFilter(cfg.SignificanceThresholdMeters), bus, cfg.HistoryCap, logger)

	svc := NewTrackingService(store, bus, repoMock, publisherMock, logger, cfg)
	t.Cleanup(svc.Close)
	return svc, repoMock, publisherMock
}

func lostDevice(id string) *models.TrackedEntity {
	return &models.TrackedEntity{
		ID:     id,
		Kind:   models.KindDevice,
		Label:  "Test phone",
		Status: models.StatusLost,
	}
}

func TestRegisterEntity_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	entity := lostDevice("device-1")

	// Ожидания
	repoMock.EXPECT().
		SaveEntity(ctx, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	err := svc.RegisterEntity(ctx, entity)

	// Проверки
	require.NoError(t, err)
	assert.True(t, entity.IsActive)
	assert.False(t, entity.CreatedAt.IsZero())
}

func TestRegisterEntity_UnknownKind(t *testing.T) {
	svc, _, _ := newTestTrackingService(t)

	err := svc.RegisterEntity(context.Background(), &models.TrackedEntity{ID: "x", Kind: "drone"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown entity kind")
}

func TestSubmitSample_AcceptedPersistsAndBroadcasts(t *testing.T) {
	// Подготовка
	svc, repoMock, publisherMock := newTestTrackingService(t)
	ctx := context.Background()
	entity := lostDevice("device-1")

	repoMock.EXPECT().SaveEntity(ctx, gomock.Any()).Return(nil).Times(1)
	require.NoError(t, svc.RegisterEntity(ctx, entity))

	sample := models.Location{
		Coordinate: models.Coordinate{Latitude: -1.2921, Longitude: 36.8219},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}

	// Ожидания: принятая выборка сохраняется, кешируется и транслируется
	repoMock.EXPECT().
		SaveTrackingUpdate(ctx, gomock.Any()).
		Return(nil).
		Times(1)
	repoMock.EXPECT().
		CacheCurrentLocation(ctx, "device-1", gomock.Any()).
		Return(nil).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event broadcast.UpdateEvent) error {
			assert.Equal(t, "device-1", event.EntityID)
			assert.Equal(t, string(models.KindDevice), event.EntityKind)
			return nil
		}).
		Times(1)

	// Действие
	update, accepted, err := svc.SubmitSample(ctx, "device-1", sample)

	// Проверки
	require.NoError(t, err)
	require.True(t, accepted)
	require.NotNil(t, update)
	assert.Equal(t, "device-1", update.EntityID)
}

func TestSubmitSample_RejectedHasNoSideEffects(t *testing.T) {
	// Подготовка
	svc, repoMock, publisherMock := newTestTrackingService(t)
	ctx := context.Background()
	entity := lostDevice("device-1")

	repoMock.EXPECT().SaveEntity(ctx, gomock.Any()).Return(nil).Times(1)
	require.NoError(t, svc.RegisterEntity(ctx, entity))

	base := models.Coordinate{Latitude: -1.2921, Longitude: 36.8219}
	first := models.Location{Coordinate: base, Timestamp: time.Now().UTC(), Source: models.SourceGPS}

	repoMock.EXPECT().SaveTrackingUpdate(ctx, gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().CacheCurrentLocation(ctx, "device-1", gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	_, accepted, err := svc.SubmitSample(ctx, "device-1", first)
	require.NoError(t, err)
	require.True(t, accepted)

	// Выборка в трех метрах отклоняется: ни записи, ни кеша, ни трансляции
	near := models.Location{
		Coordinate: models.Coordinate{Latitude: base.Latitude + 3/111320.0, Longitude: base.Longitude},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}
	update, accepted, err := svc.SubmitSample(ctx, "device-1", near)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Nil(t, update)
}

func TestSubmitSample_UnknownEntity(t *testing.T) {
	svc, _, _ := newTestTrackingService(t)

	_, accepted, err := svc.SubmitSample(context.Background(), "ghost", models.Location{})
	require.Error(t, err)
	assert.False(t, accepted)
	assert.ErrorIs(t, err, tracking.ErrUnknownEntity)
}

func TestSubmitSample_PersistFailureDoesNotRejectUpdate(t *testing.T) {
	// Подготовка: ядро в памяти остается корректным без рабочего хранилища
	svc, repoMock, publisherMock := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().SaveEntity(ctx, gomock.Any()).Return(nil).Times(1)
	require.NoError(t, svc.RegisterEntity(ctx, lostDevice("device-1")))

	repoMock.EXPECT().
		SaveTrackingUpdate(ctx, gomock.Any()).
		Return(assert.AnError).
		Times(1)
	repoMock.EXPECT().
		CacheCurrentLocation(ctx, "device-1", gomock.Any()).
		Return(assert.AnError).
		Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	sample := models.Location{
		Coordinate: models.Coordinate{Latitude: -1.2921, Longitude: 36.8219},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}

	// Действие
	update, accepted, err := svc.SubmitSample(ctx, "device-1", sample)

	// Проверки: обновление принято, состояние в памяти обновлено
	require.NoError(t, err)
	require.True(t, accepted)
	require.NotNil(t, update)

	current, err := svc.CurrentLocation(ctx, "device-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, sample.Coordinate, current.Coordinate)
}

func TestReportStatus_TransitionsDriveSimulator(t *testing.T) {
	// Подготовка
	svc, repoMock, _ := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().SaveEntity(ctx, gomock.Any()).Return(nil).Times(1)
	require.NoError(t, svc.RegisterEntity(ctx, lostDevice("device-1")))

	// found выключает живое отслеживание
	repoMock.EXPECT().
		UpdateEntityStatus(ctx, "device-1", models.StatusFound, false).
		Return(nil).
		Times(1)
	require.NoError(t, svc.ReportStatus(ctx, "device-1", models.StatusFound))

	// Выборка для неактивной сущности отфильтровывается
	sample := models.Location{
		Coordinate: models.Coordinate{Latitude: -1.2921, Longitude: 36.8219},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}
	_, accepted, err := svc.SubmitSample(ctx, "device-1", sample)
	require.NoError(t, err)
	assert.False(t, accepted)

	// lost снова включает
	repoMock.EXPECT().
		UpdateEntityStatus(ctx, "device-1", models.StatusLost, true).
		Return(nil).
		Times(1)
	require.NoError(t, svc.ReportStatus(ctx, "device-1", models.StatusLost))
}

func TestReportStatus_UnknownEntity(t *testing.T) {
	svc, _, _ := newTestTrackingService(t)

	err := svc.ReportStatus(context.Background(), "ghost", models.StatusFound)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracking.ErrUnknownEntity)
}

func TestSubscribe_ReceivesAcceptedUpdates(t *testing.T) {
	// Подготовка
	svc, repoMock, publisherMock := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().SaveEntity(ctx, gomock.Any()).Return(nil).Times(1)
	require.NoError(t, svc.RegisterEntity(ctx, lostDevice("device-1")))

	repoMock.EXPECT().SaveTrackingUpdate(ctx, gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().CacheCurrentLocation(ctx, "device-1", gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	received := make(chan models.TrackingUpdate, 8)
	svc.Subscribe("device-1", "dashboard", func(u models.TrackingUpdate) { received <- u })
	defer svc.Unsubscribe("device-1", "dashboard")

	sample := models.Location{
		Coordinate: models.Coordinate{Latitude: -1.2921, Longitude: 36.8219},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}
	update, accepted, err := svc.SubmitSample(ctx, "device-1", sample)
	require.NoError(t, err)
	require.True(t, accepted)

	select {
	case got := <-received:
		assert.Equal(t, update.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscriber delivery")
	}
}

func TestCurrentLocation_WarmsUpFromCache(t *testing.T) {
	// Подготовка: сущности нет в памяти, но кэш хранит позицию до рестарта
	svc, repoMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	cached := &models.Location{
		Coordinate: models.Coordinate{Latitude: -1.2921, Longitude: 36.8219},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}

	// Ожидания
	repoMock.EXPECT().
		CachedCurrentLocation(ctx, "device-1").
		Return(cached, nil).
		Times(1)

	// Действие
	loc, err := svc.CurrentLocation(ctx, "device-1")

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, -1.2921, loc.Coordinate.Latitude, 1e-9)
}

func TestCurrentLocation_WarmsUpFromStoredUpdates(t *testing.T) {
	// Подготовка: кэш пуст, позиция восстанавливается из хвоста истории
	svc, repoMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	stored := &models.TrackingUpdate{
		EntityID: "device-1",
		Location: models.Location{
			Coordinate: models.Coordinate{Latitude: -1.2636, Longitude: 36.8056},
			Timestamp:  time.Now().UTC(),
			Source:     models.SourceGPS,
		},
	}

	repoMock.EXPECT().CachedCurrentLocation(ctx, "device-1").Return(nil, nil).Times(1)
	repoMock.EXPECT().ListTrackingUpdates(ctx, "device-1", 1).Return([]*models.TrackingUpdate{stored}, nil).Times(1)

	loc, err := svc.CurrentLocation(ctx, "device-1")

	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, -1.2636, loc.Coordinate.Latitude, 1e-9)
}

func TestCurrentLocation_WarmsUpFromLastKnownLocation(t *testing.T) {
	// Подготовка: ни кэша, ни истории - остается позиция с момента регистрации
	svc, repoMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	lastKnown := &models.Location{
		Coordinate: models.Coordinate{Latitude: -1.3032, Longitude: 36.7073},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceWitness,
	}

	repoMock.EXPECT().CachedCurrentLocation(ctx, "device-1").Return(nil, nil).Times(1)
	repoMock.EXPECT().ListTrackingUpdates(ctx, "device-1", 1).Return([]*models.TrackingUpdate{}, nil).Times(1)
	repoMock.EXPECT().
		GetEntity(ctx, "device-1").
		Return(&models.TrackedEntity{
			ID:                "device-1",
			Kind:              models.KindDevice,
			Status:            models.StatusFound,
			LastKnownLocation: lastKnown,
		}, nil).
		Times(1)

	loc, err := svc.CurrentLocation(ctx, "device-1")

	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, models.SourceWitness, loc.Source)
}

func TestCurrentLocation_PrefersInMemoryState(t *testing.T) {
	// Подготовка: принятая выборка в памяти не требует обращения к хранилищу
	svc, repoMock, publisherMock := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().SaveEntity(ctx, gomock.Any()).Return(nil).Times(1)
	require.NoError(t, svc.RegisterEntity(ctx, lostDevice("device-1")))

	repoMock.EXPECT().SaveTrackingUpdate(ctx, gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().CacheCurrentLocation(ctx, "device-1", gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	sample := models.Location{
		Coordinate: models.Coordinate{Latitude: -1.2921, Longitude: 36.8219},
		Timestamp:  time.Now().UTC(),
		Source:     models.SourceGPS,
	}
	_, accepted, err := svc.SubmitSample(ctx, "device-1", sample)
	require.NoError(t, err)
	require.True(t, accepted)

	// Ожидания: чтений из репозитория быть не должно
	repoMock.EXPECT().CachedCurrentLocation(gomock.Any(), gomock.Any()).Times(0)
	repoMock.EXPECT().ListTrackingUpdates(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	repoMock.EXPECT().GetEntity(gomock.Any(), gomock.Any()).Times(0)

	loc, err := svc.CurrentLocation(ctx, "device-1")

	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, -1.2921, loc.Coordinate.Latitude, 1e-9)
}

func TestHistory_WarmsUpFromRepository(t *testing.T) {
	// Подготовка: сущность не прогрета в памяти, история читается из хранилища
	svc, repoMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	stored := []*models.TrackingUpdate{
		{EntityID: "device-1", Timestamp: time.Now().UTC().Add(-time.Minute)},
		{EntityID: "device-1", Timestamp: time.Now().UTC()},
	}

	repoMock.EXPECT().
		ListTrackingUpdates(ctx, "device-1", 100).
		Return(stored, nil).
		Times(1)

	history, err := svc.History(ctx, "device-1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "device-1", history[0].EntityID)
}
