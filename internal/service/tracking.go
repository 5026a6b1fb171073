package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jkimani/device_tracking_system/internal/broadcast"
	"github.com/jkimani/device_tracking_system/internal/config"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/tracking"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=tracking.go -destination=mocks/mock_tracking.go -package=mocks

// Стартовая точка симуляции для сущностей без последней известной позиции
// (Найроби CBD)
var defaultSimulationStart = models.Coordinate{Latitude: -1.2921, Longitude: 36.8219}

// TrackingRepository определяет контракт для долговременного хранения
// записей отслеживания
type TrackingRepository interface {
	SaveEntity(ctx context.Context, entity *models.TrackedEntity) error
	GetEntity(ctx context.Context, id string) (*models.TrackedEntity, error)
	ListActiveEntities(ctx context.Context) ([]*models.TrackedEntity, error)
	UpdateEntityStatus(ctx context.Context, id string, status models.EntityStatus, isActive bool) error
	SaveTrackingUpdate(ctx context.Context, update *models.TrackingUpdate) error
	ListTrackingUpdates(ctx context.Context, entityID string, limit int) ([]*models.TrackingUpdate, error)
	SaveMobileRequest(ctx context.Context, req *models.MobileTrackingRequest) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	CacheCurrentLocation(ctx context.Context, entityID string, loc *models.Location) error
	CachedCurrentLocation(ctx context.Context, entityID string) (*models.Location, error)
}

// TrackingService определяет контракт ядра отслеживания для внешних
// коллабораторов (UI, карта, дашборд, телеметрический вход)
type TrackingService interface {
	RegisterEntity(ctx context.Context, entity *models.TrackedEntity) error
	ReportStatus(ctx context.Context, entityID string, status models.EntityStatus) error
	SubmitSample(ctx context.Context, entityID string, sample models.Location) (*models.TrackingUpdate, bool, error)
	CurrentLocation(ctx context.Context, entityID string) (*models.Location, error)
	History(ctx context.Context, entityID string) ([]models.TrackingUpdate, error)
	IsMoving(ctx context.Context, entityID string) (bool, error)
	Speed(ctx context.Context, entityID string) (*float64, error)
	Subscribe(entityID, subscriberID string, fn tracking.UpdateFunc)
	Unsubscribe(entityID, subscriberID string)
	Close()
}

type trackingService struct {
	store     *tracking.Store
	bus       *tracking.Bus
	simulator *tracking.Simulator
	repo      TrackingRepository
	publisher broadcast.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
}

// NewTrackingService собирает сервис отслеживания; симулятор перемещения
// создается внутри и подает выборки через общий шлюз SubmitSample
func NewTrackingService(store *tracking.Store, bus *tracking.Bus, repo TrackingRepository, publisher broadcast.Publisher, logger *logrus.Logger, cfg *config.Config) TrackingService {
	s := &trackingService{
		store:     store,
		bus:       bus,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
	s.simulator = tracking.NewSimulator(
		cfg.SimulationInterval,
		cfg.SimulationJitterMeters,
		s.submitSimulated,
		logger,
	)
	return s
}

// RegisterEntity заводит сущность в ядре отслеживания. Сущность со статусом
// lost сразу попадает под симулированный источник позиции.
func (s *trackingService) RegisterEntity(ctx context.Context, entity *models.TrackedEntity) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "tracking",
		"method":    "RegisterEntity",
		"entity_id": entity.ID,
		"kind":      entity.Kind,
	})
	log.Info("Registering tracked entity")

	if !entity.Kind.Valid() {
		return fmt.Errorf("service: unknown entity kind %q", entity.Kind)
	}
	if !entity.Status.Valid() {
		entity.Status = models.StatusLost
	}
	entity.IsActive = entity.Status == models.StatusLost
	now := time.Now().UTC()
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = now
	}
	entity.UpdatedAt = now

	s.store.Register(*entity)

	if s.repo != nil {
		if err := s.repo.SaveEntity(ctx, entity); err != nil {
			log.WithError(err).Error("Failed to persist tracked entity")
			return fmt.Errorf("service: could not save tracked entity: %w", err)
		}
	}

	if entity.IsActive {
		s.simulator.Enable(entity.ID, s.simulationStart(entity))
	}

	log.Info("Tracked entity registered successfully")
	return nil
}

// ReportStatus применяет переход статуса: lost включает живое отслеживание,
// found/returned выключает его до следующего тика
func (s *trackingService) ReportStatus(ctx context.Context, entityID string, status models.EntityStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "tracking",
		"method":    "ReportStatus",
		"entity_id": entityID,
		"status":    status,
	})
	log.Info("Applying entity status transition")

	if !status.Valid() {
		return fmt.Errorf("service: unknown entity status %q", status)
	}

	if err := s.store.SetStatus(entityID, status); err != nil {
		log.WithError(err).Warn("Status transition for unknown entity")
		return fmt.Errorf("service: could not set status: %w", err)
	}

	if s.repo != nil {
		if err := s.repo.UpdateEntityStatus(ctx, entityID, status, status == models.StatusLost); err != nil {
			log.WithError(err).Error("Failed to persist entity status")
		}
	}

	if status == models.StatusLost {
		entity, err := s.store.Entity(entityID)
		if err != nil {
			return fmt.Errorf("service: could not read entity: %w", err)
		}
		s.simulator.Enable(entityID, s.simulationStart(entity))
	} else {
		s.simulator.Disable(entityID)
	}

	log.Info("Entity status transition applied")
	return nil
}

// SubmitSample - единая точка подачи сырой выборки: фильтр значимости,
// обновление состояния, история, фан-аут, затем персистентность и
// нисходящая трансляция. Сбои хранилища и трансляции не отменяют
// уже принятое обновление: ядро в памяти остается корректным.
func (s *trackingService) SubmitSample(ctx context.Context, entityID string, sample models.Location) (*models.TrackingUpdate, bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "tracking",
		"method":    "SubmitSample",
		"entity_id": entityID,
	})

	update, accepted, err := s.store.Accept(entityID, sample)
	if err != nil {
		log.WithError(err).Warn("Sample submitted for unknown entity")
		return nil, false, fmt.Errorf("service: could not accept sample: %w", err)
	}
	if !accepted {
		// Отфильтрованная выборка - нормальный исход, не ошибка
		return nil, false, nil
	}

	if s.repo != nil {
		if err := s.repo.SaveTrackingUpdate(ctx, update); err != nil {
			log.WithError(err).Error("Failed to persist tracking update")
		}
		if err := s.repo.CacheCurrentLocation(ctx, entityID, &update.Location); err != nil {
			log.WithError(err).Warn("Failed to cache current location")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, broadcast.EventFromUpdate(*update)); err != nil {
			log.WithError(err).Error("Failed to publish update to broadcast layer")
		}
	}

	return update, true, nil
}

// CurrentLocation возвращает позицию последнего принятого обновления.
// Пустое ядро в памяти (холодный старт, деактивированная сущность)
// прогревается из хранилища: кэш, затем хвост истории, затем последняя
// известная позиция сущности.
func (s *trackingService) CurrentLocation(ctx context.Context, entityID string) (*models.Location, error) {
	loc, storeErr := s.store.CurrentLocation(entityID)
	if storeErr == nil && loc != nil {
		return loc, nil
	}

	if s.repo != nil {
		log := s.logger.WithFields(logrus.Fields{
			"service":   "tracking",
			"method":    "CurrentLocation",
			"entity_id": entityID,
		})

		cached, err := s.repo.CachedCurrentLocation(ctx, entityID)
		if err != nil {
			log.WithError(err).Warn("Failed to read current location from cache")
		} else if cached != nil {
			return cached, nil
		}

		updates, err := s.repo.ListTrackingUpdates(ctx, entityID, 1)
		if err != nil {
			log.WithError(err).Warn("Failed to read tracking updates from storage")
		} else if len(updates) > 0 {
			last := updates[len(updates)-1].Location
			return &last, nil
		}

		entity, err := s.repo.GetEntity(ctx, entityID)
		if err == nil && entity != nil && entity.LastKnownLocation != nil {
			return entity.LastKnownLocation, nil
		}
	}

	if storeErr != nil {
		return nil, fmt.Errorf("service: could not get current location: %w", storeErr)
	}
	return nil, nil
}

// History возвращает снапшот истории принятых обновлений; для сущности,
// не прогретой в памяти, история читается из хранилища
func (s *trackingService) History(ctx context.Context, entityID string) ([]models.TrackingUpdate, error) {
	history, err := s.store.History(entityID)
	if err != nil {
		if s.repo != nil && errors.Is(err, tracking.ErrUnknownEntity) {
			stored, repoErr := s.repo.ListTrackingUpdates(ctx, entityID, s.cfg.HistoryCap)
			if repoErr != nil {
				return nil, fmt.Errorf("service: could not get history: %w", repoErr)
			}
			result := make([]models.TrackingUpdate, len(stored))
			for i, update := range stored {
				result[i] = *update
			}
			return result, nil
		}
		return nil, fmt.Errorf("service: could not get history: %w", err)
	}
	return history, nil
}

// IsMoving возвращает признак движения по последним записям истории
func (s *trackingService) IsMoving(ctx context.Context, entityID string) (bool, error) {
	moving, err := s.store.IsMoving(entityID)
	if err != nil {
		return false, fmt.Errorf("service: could not infer movement: %w", err)
	}
	return moving, nil
}

// Speed возвращает оценку скорости либо nil, когда оценки нет
func (s *trackingService) Speed(ctx context.Context, entityID string) (*float64, error) {
	speed, err := s.store.Speed(entityID)
	if err != nil {
		return nil, fmt.Errorf("service: could not infer speed: %w", err)
	}
	return speed, nil
}

// Subscribe регистрирует подписчика живых обновлений сущности
func (s *trackingService) Subscribe(entityID, subscriberID string, fn tracking.UpdateFunc) {
	s.bus.Subscribe(entityID, subscriberID, fn)
}

// Unsubscribe снимает подписку
func (s *trackingService) Unsubscribe(entityID, subscriberID string) {
	s.bus.Unsubscribe(entityID, subscriberID)
}

// Close останавливает симулятор и шину
func (s *trackingService) Close() {
	s.simulator.Stop()
	s.bus.Close()
}

// submitSimulated - вход симулятора в общий шлюз подачи выборок
func (s *trackingService) submitSimulated(ctx context.Context, entityID string, sample models.Location) {
	if _, _, err := s.SubmitSample(ctx, entityID, sample); err != nil {
		s.logger.WithError(err).WithField("entity_id", entityID).Warn("Simulated sample submission failed")
	}
}

// simulationStart выбирает стартовую точку симуляции: текущая позиция,
// затем последняя известная, затем точка по умолчанию
func (s *trackingService) simulationStart(entity *models.TrackedEntity) models.Coordinate {
	if current, err := s.store.CurrentLocation(entity.ID); err == nil && current != nil {
		return current.Coordinate
	}
	if entity.LastKnownLocation != nil {
		return entity.LastKnownLocation.Coordinate
	}
	return defaultSimulationStart
}
