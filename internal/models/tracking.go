package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingUpdate - каноническая запись о принятой позиции сущности.
// Создается только после прохождения фильтра значимости, append-only.
type TrackingUpdate struct {
	ID         uuid.UUID  `json:"id"`
	EntityID   string     `json:"entity_id"`
	EntityKind EntityKind `json:"entity_kind"`
	Location   Location   `json:"location"`
	Timestamp  time.Time  `json:"timestamp"`
	Source     string     `json:"source"`
	Confidence float64    `json:"confidence"`
}
