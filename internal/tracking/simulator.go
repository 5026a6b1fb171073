package tracking

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// Интервал генерации выборок по умолчанию
	DefaultSimulationInterval = 5 * time.Second

	// Огибающая случайного смещения за тик, метры
	DefaultJitterMeters = 100.0

	metersPerDegreeLat = 111320.0
)

// SubmitFunc - точка подачи сырой выборки; взаимозаменяема с реальным
// телеметрическим входом без изменения контрактов хранилища и шины
type SubmitFunc func(ctx context.Context, entityID string, sample models.Location)

// Simulator генерирует периодические позиционные выборки для активных
// потерянных сущностей - замена настоящего GPS/радиомодуля устройства
// для демо и тестов
type Simulator struct {
	interval     time.Duration
	jitterMeters float64
	submit       SubmitFunc
	logger       *logrus.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewSimulator создает симулятор перемещения
func NewSimulator(interval time.Duration, jitterMeters float64, submit SubmitFunc, logger *logrus.Logger) *Simulator {
	if interval <= 0 {
		interval = DefaultSimulationInterval
	}
	if jitterMeters <= 0 {
		jitterMeters = DefaultJitterMeters
	}
	return &Simulator{
		interval:     interval,
		jitterMeters: jitterMeters,
		submit:       submit,
		logger:       logger,
		cancels:      make(map[string]context.CancelFunc),
	}
}

// Enable запускает генерацию выборок для сущности от стартовой точки.
// Повторное включение уже активной сущности перезапускает ее цикл.
func (s *Simulator) Enable(entityID string, start models.Coordinate) {
	s.mu.Lock()
	if cancel, ok := s.cancels[entityID]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[entityID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, entityID, start)

	s.logger.WithField("entity_id", entityID).Info("Simulated location source enabled")
}

// Disable останавливает генерацию для сущности до следующего тика;
// no-op если сущность не симулируется
func (s *Simulator) Disable(entityID string) {
	s.mu.Lock()
	cancel, ok := s.cancels[entityID]
	if ok {
		delete(s.cancels, entityID)
	}
	s.mu.Unlock()

	if ok {
		cancel()
		s.logger.WithField("entity_id", entityID).Info("Simulated location source disabled")
	}
}

// Stop останавливает все циклы симуляции и дожидается их завершения
func (s *Simulator) Stop() {
	s.mu.Lock()
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Simulator) run(ctx context.Context, entityID string, position models.Coordinate) {
	defer s.wg.Done()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(len(entityID))))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			position = s.drift(rnd, position)
			sample := models.Location{
				Coordinate: position,
				Timestamp:  time.Now().UTC(),
				Source:     models.SourceGPS,
			}
			s.submit(ctx, entityID, sample)
		}
	}
}

// drift смещает точку на случайный вектор в пределах огибающей
func (s *Simulator) drift(rnd *rand.Rand, c models.Coordinate) models.Coordinate {
	dNorth := (rnd.Float64()*2 - 1) * s.jitterMeters
	dEast := (rnd.Float64()*2 - 1) * s.jitterMeters

	lat := c.Latitude + dNorth/metersPerDegreeLat
	lon := c.Longitude + dEast/(metersPerDegreeLat*math.Cos(c.Latitude*math.Pi/180))
	return models.Coordinate{Latitude: lat, Longitude: lon}
}
