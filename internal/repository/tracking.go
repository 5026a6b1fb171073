package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/service"
	"github.com/redis/go-redis/v9"
)

// TTL кеша текущей позиции по умолчанию
const defaultLocationCacheTTL = 5 * time.Minute

type TrackingRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

// NewTrackingRepository создает репозиторий поверх PostgreSQL и Redis
func NewTrackingRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.TrackingRepository {
	if cacheTTL <= 0 {
		cacheTTL = defaultLocationCacheTTL
	}
	return &TrackingRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// SaveEntity создает либо обновляет запись отслеживаемой сущности
func (r *TrackingRepository) SaveEntity(ctx context.Context, entity *models.TrackedEntity) error {
	query := `
		INSERT INTO tracked_entities (id, kind, label, status, is_active, last_known_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			label = EXCLUDED.label,
			status = EXCLUDED.status,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at;
	`
	var lastKnown []byte
	if entity.LastKnownLocation != nil {
		var err error
		lastKnown, err = json.Marshal(entity.LastKnownLocation)
		if err != nil {
			return fmt.Errorf("failed to marshal last known location: %w", err)
		}
	}

	_, err := r.db.Exec(ctx, query,
		entity.ID,
		entity.Kind,
		entity.Label,
		entity.Status,
		entity.IsActive,
		lastKnown,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save tracked entity: %w", err)
	}
	return nil
}

// GetEntity возвращает сущность по идентификатору
func (r *TrackingRepository) GetEntity(ctx context.Context, id string) (*models.TrackedEntity, error) {
	entity := &models.TrackedEntity{}
	var lastKnown []byte

	query := `
		SELECT id, kind, label, status, is_active, last_known_location, created_at, updated_at
		FROM tracked_entities
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entity.ID,
		&entity.Kind,
		&entity.Label,
		&entity.Status,
		&entity.IsActive,
		&lastKnown,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tracked entity with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get tracked entity by id: %w", err)
	}

	if len(lastKnown) > 0 {
		loc := &models.Location{}
		if err := json.Unmarshal(lastKnown, loc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal last known location: %w", err)
		}
		entity.LastKnownLocation = loc
	}
	return entity, nil
}

// ListActiveEntities возвращает сущности с включенным живым отслеживанием
// (для восстановления симуляции после рестарта)
func (r *TrackingRepository) ListActiveEntities(ctx context.Context) ([]*models.TrackedEntity, error) {
	query := `
		SELECT id, kind, label, status, is_active, last_known_location, created_at, updated_at
		FROM tracked_entities
		WHERE is_active = TRUE
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active entities: %w", err)
	}
	defer rows.Close()

	entities := make([]*models.TrackedEntity, 0)
	for rows.Next() {
		entity := &models.TrackedEntity{}
		var lastKnown []byte
		err := rows.Scan(
			&entity.ID,
			&entity.Kind,
			&entity.Label,
			&entity.Status,
			&entity.IsActive,
			&lastKnown,
			&entity.CreatedAt,
			&entity.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracked entity row: %w", err)
		}
		if len(lastKnown) > 0 {
			loc := &models.Location{}
			if err := json.Unmarshal(lastKnown, loc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal last known location: %w", err)
			}
			entity.LastKnownLocation = loc
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error active entities iteration: %w", err)
	}
	return entities, nil
}

// UpdateEntityStatus проставляет статус и флаг активности сущности
func (r *TrackingRepository) UpdateEntityStatus(ctx context.Context, id string, status models.EntityStatus, isActive bool) error {
	query := `
		UPDATE tracked_entities SET
			status = $1,
			is_active = $2,
			updated_at = NOW()
		WHERE id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, isActive, id)
	if err != nil {
		return fmt.Errorf("failed to update entity status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tracked entity with id %s not found for status update", id)
	}
	return nil
}

// SaveTrackingUpdate дописывает принятое обновление позиции
func (r *TrackingRepository) SaveTrackingUpdate(ctx context.Context, update *models.TrackingUpdate) error {
	query := `
		INSERT INTO tracking_updates
			(id, entity_id, entity_kind, location, accuracy_meters, address, source, confidence, recorded_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		update.ID,
		update.EntityID,
		update.EntityKind,
		update.Location.Coordinate.Longitude,
		update.Location.Coordinate.Latitude,
		update.Location.AccuracyMeters,
		update.Location.Address,
		update.Source,
		update.Confidence,
		update.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save tracking update: %w", err)
	}
	return nil
}

// ListTrackingUpdates возвращает последние принятые обновления сущности
// в хронологическом порядке
func (r *TrackingRepository) ListTrackingUpdates(ctx context.Context, entityID string, limit int) ([]*models.TrackingUpdate, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := `
		SELECT
			id,
			entity_id,
			entity_kind,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			accuracy_meters,
			address,
			source,
			confidence,
			recorded_at
		FROM (
			SELECT * FROM tracking_updates
			WHERE entity_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at;
	`
	rows, err := r.db.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking updates: %w", err)
	}
	defer rows.Close()

	updates := make([]*models.TrackingUpdate, 0)
	for rows.Next() {
		update := &models.TrackingUpdate{}
		err := rows.Scan(
			&update.ID,
			&update.EntityID,
			&update.EntityKind,
			&update.Location.Coordinate.Latitude,
			&update.Location.Coordinate.Longitude,
			&update.Location.AccuracyMeters,
			&update.Location.Address,
			&update.Source,
			&update.Confidence,
			&update.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracking update row: %w", err)
		}
		update.Location.Timestamp = update.Timestamp
		update.Location.Source = models.LocationSource(update.Source)
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error tracking updates iteration: %w", err)
	}
	return updates, nil
}

// SaveMobileRequest фиксирует запрос мобильного отслеживания вместе с итогом
func (r *TrackingRepository) SaveMobileRequest(ctx context.Context, req *models.MobileTrackingRequest) error {
	query := `
		INSERT INTO mobile_tracking_requests
			(id, entity_id, mobile_number, request_type, priority, officer_id,
			 court_order_number, emergency_code, consent_token,
			 carrier, state, success, error, location, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	var location []byte
	if req.Location != nil {
		var err error
		location, err = json.Marshal(req.Location)
		if err != nil {
			return fmt.Errorf("failed to marshal request location: %w", err)
		}
	}

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.EntityID,
		req.MobileNumber,
		req.RequestType,
		req.Priority,
		req.OfficerID,
		req.CourtOrderNumber,
		req.EmergencyCode,
		req.ConsentToken,
		req.Carrier,
		req.State().String(),
		req.Success,
		req.Error,
		location,
		req.CreatedAt,
		req.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save mobile tracking request: %w", err)
	}
	return nil
}

// GetUser возвращает пользователя для проверки авторизации
func (r *TrackingRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, role, is_active
		FROM users
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// CacheCurrentLocation сохраняет текущую позицию сущности в Redis
func (r *TrackingRepository) CacheCurrentLocation(ctx context.Context, entityID string, loc *models.Location) error {
	key := currentLocationKey(entityID)
	val, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set location in cache: %w", err)
	}
	return nil
}

// CachedCurrentLocation пытается получить текущую позицию из Redis
func (r *TrackingRepository) CachedCurrentLocation(ctx context.Context, entityID string) (*models.Location, error) {
	key := currentLocationKey(entityID)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location from cache: %w", err)
	}

	loc := &models.Location{}
	if err := json.Unmarshal(val, loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location from cache: %w", err)
	}
	return loc, nil
}

func currentLocationKey(entityID string) string {
	return fmt.Sprintf("current_location:%s", entityID)
}
