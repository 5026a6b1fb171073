package tracking

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani/device_tracking_system/internal/geo"
	"github.com/jkimani/device_tracking_system/internal/models"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/sirupsen/logrus"
)

const (
	// Предел истории принятых обновлений на сущность
	DefaultHistoryCap = 100

	// Окно и порог детекции движения: суммарное смещение по последним
	// записям истории
	movingWindow         = 5
	movingThresholdMeter = 50.0
)

// ErrUnknownEntity возвращается для операций над сущностью без записи отслеживания
var ErrUnknownEntity = errors.New("unknown tracked entity")

// entityRecord - изолированное мутабельное состояние одной сущности.
// Мьютекс сериализует read-modify-write только внутри записи, сущности
// между собой независимы.
type entityRecord struct {
	mu      sync.Mutex
	entity  models.TrackedEntity
	current *models.Location
	history []models.TrackingUpdate
}

// Store владеет записями отслеживания по сущностям: текущая позиция,
// ограниченная история и производное состояние движения/скорости
type Store struct {
	records    cmap.ConcurrentMap[string, *entityRecord]
	filter     *PositionFilter
	bus        *Bus
	historyCap int
	logger     *logrus.Logger
}

// NewStore создает хранилище отслеживания
func NewStore(filter *PositionFilter, bus *Bus, historyCap int, logger *logrus.Logger) *Store {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	return &Store{
		records:    cmap.New[*entityRecord](),
		filter:     filter,
		bus:        bus,
		historyCap: historyCap,
		logger:     logger,
	}
}

// Register заводит запись отслеживания для сущности; повторная регистрация
// существующей записи - no-op
func (s *Store) Register(entity models.TrackedEntity) {
	s.records.SetIfAbsent(entity.ID, &entityRecord{entity: entity})
}

// Entity возвращает копию сущности
func (s *Store) Entity(entityID string) (*models.TrackedEntity, error) {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return nil, ErrUnknownEntity
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	e := rec.entity
	return &e, nil
}

// SetStatus проставляет статус и флаг активности; lost включает живое
// отслеживание, found/returned выключает. Последняя известная позиция
// сохраняется навсегда.
func (s *Store) SetStatus(entityID string, status models.EntityStatus) error {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return ErrUnknownEntity
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.entity.Status = status
	rec.entity.IsActive = status == models.StatusLost
	rec.entity.UpdatedAt = time.Now().UTC()
	return nil
}

// Accept применяет фильтр значимости к выборке относительно текущей позиции
// сущности. Принятая выборка порождает TrackingUpdate, смещает текущую
// позицию, дописывается в историю (FIFO-вытеснение за пределами предела)
// и публикуется в шину. Отклонение не имеет побочных эффектов.
func (s *Store) Accept(entityID string, sample models.Location) (*models.TrackingUpdate, bool, error) {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return nil, false, ErrUnknownEntity
	}

	rec.mu.Lock()
	if !rec.entity.IsActive {
		rec.mu.Unlock()
		return nil, false, nil
	}
	if !s.filter.IsSignificant(rec.current, sample) {
		rec.mu.Unlock()
		return nil, false, nil
	}

	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now().UTC()
	}

	update := models.TrackingUpdate{
		ID:         uuid.New(),
		EntityID:   entityID,
		EntityKind: rec.entity.Kind,
		Location:   sample,
		Timestamp:  sample.Timestamp,
		Source:     string(sample.Source),
		Confidence: confidenceForSource(sample.Source),
	}

	rec.current = &sample
	rec.history = append(rec.history, update)
	if len(rec.history) > s.historyCap {
		rec.history = rec.history[len(rec.history)-s.historyCap:]
	}
	rec.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"entity_id": entityID,
		"update_id": update.ID,
		"source":    update.Source,
	}).Debug("Tracking update accepted")

	if s.bus != nil {
		s.bus.Publish(update)
	}
	return &update, true, nil
}

// CurrentLocation возвращает позицию последнего принятого обновления
// либо nil, если принятых выборок еще не было
func (s *Store) CurrentLocation(entityID string) (*models.Location, error) {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return nil, ErrUnknownEntity
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.current == nil {
		return nil, nil
	}
	loc := *rec.current
	return &loc, nil
}

// History возвращает снапшот истории в хронологическом порядке;
// живой буфер наружу не отдается
func (s *Store) History(entityID string) ([]models.TrackingUpdate, error) {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return nil, ErrUnknownEntity
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	out := make([]models.TrackingUpdate, len(rec.history))
	copy(out, rec.history)
	return out, nil
}

// IsMoving суммирует попарные расстояния по последним записям истории;
// движение - суммарное смещение не меньше порога. Меньше двух записей - false.
func (s *Store) IsMoving(entityID string) (bool, error) {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return false, ErrUnknownEntity
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	window := rec.history
	if len(window) > movingWindow {
		window = window[len(window)-movingWindow:]
	}
	if len(window) < 2 {
		return false, nil
	}

	var total float64
	for i := 1; i < len(window); i++ {
		total += geo.DistanceMeters(window[i-1].Location.Coordinate, window[i].Location.Coordinate)
	}
	return total >= movingThresholdMeter, nil
}

// Speed считает скорость строго по двум последним записям истории.
// Меньше двух записей либо нулевой интервал - нет оценки (nil), не ошибка.
func (s *Store) Speed(entityID string) (*float64, error) {
	rec, ok := s.records.Get(entityID)
	if !ok {
		return nil, ErrUnknownEntity
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if len(rec.history) < 2 {
		return nil, nil
	}
	last := rec.history[len(rec.history)-1]
	prev := rec.history[len(rec.history)-2]

	elapsed := last.Timestamp.Sub(prev.Timestamp).Seconds()
	if elapsed <= 0 {
		return nil, nil
	}
	speed := geo.DistanceMeters(prev.Location.Coordinate, last.Location.Coordinate) / elapsed
	return &speed, nil
}

// confidenceForSource отображает источник выборки в оценку доверия [0,1]
func confidenceForSource(source models.LocationSource) float64 {
	switch source {
	case models.SourceGPS:
		return 0.95
	case models.SourceNetwork:
		return 0.7
	case models.SourceManual:
		return 0.5
	case models.SourceWitness:
		return 0.3
	}
	return 0.5
}
