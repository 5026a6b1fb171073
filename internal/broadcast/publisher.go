package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	updateQueueKey = "tracking_update_events"

	entityChannelPrefix = "tracking:"
)

// EntityChannel возвращает имя Redis-канала живых обновлений сущности
func EntityChannel(entityID string) string {
	return entityChannelPrefix + entityID
}

// UpdateEvent - полезная нагрузка нисходящей трансляции принятого обновления
type UpdateEvent struct {
	UpdateID   uuid.UUID `json:"update_id"`
	EntityID   string    `json:"entity_id"`
	EntityKind string    `json:"entity_kind"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy_meters,omitempty"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventFromUpdate собирает событие трансляции из принятого обновления
func EventFromUpdate(update models.TrackingUpdate) UpdateEvent {
	return UpdateEvent{
		UpdateID:   update.ID,
		EntityID:   update.EntityID,
		EntityKind: string(update.EntityKind),
		Latitude:   update.Location.Coordinate.Latitude,
		Longitude:  update.Location.Coordinate.Longitude,
		Accuracy:   update.Location.AccuracyMeters,
		Source:     update.Source,
		Confidence: update.Confidence,
		Timestamp:  update.Timestamp,
	}
}

// Publisher - интерфейс нисходящей трансляции принятых обновлений
type Publisher interface {
	Publish(ctx context.Context, event UpdateEvent) error
}

// RedisPublisher - реализация Publisher поверх Redis: очередь для воркера
// доставки вебхуков плюс PUBLISH в канал сущности для удаленных наблюдателей
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь и в канал сущности
func (p *RedisPublisher) Publish(ctx context.Context, event UpdateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal update event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, updateQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue update event to Redis: %w", err)
	}

	if err := p.redisClient.Publish(ctx, EntityChannel(event.EntityID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish update event to Redis channel: %w", err)
	}
	return nil
}
