package models

import (
	"time"
)

// EntityKind - дискриминант отслеживаемой сущности: устройство или транспорт
type EntityKind string

const (
	KindDevice  EntityKind = "device"
	KindVehicle EntityKind = "vehicle"
)

// Valid проверяет, что вид сущности известен
func (k EntityKind) Valid() bool {
	switch k {
	case KindDevice, KindVehicle:
		return true
	}
	return false
}

// EntityStatus - статус сущности в жизненном цикле потери/находки
type EntityStatus string

const (
	StatusLost     EntityStatus = "lost"
	StatusFound    EntityStatus = "found"
	StatusReturned EntityStatus = "returned"
)

// Valid проверяет, что статус известен
func (s EntityStatus) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusReturned:
		return true
	}
	return false
}

// TrackedEntity - отслеживаемое устройство или транспортное средство.
// LastKnownLocation фиксируется при подаче заявления и не перезаписывается
// живыми обновлениями; CurrentLocation ведет TrackingStore.
type TrackedEntity struct {
	ID                string       `json:"id"`
	Kind              EntityKind   `json:"kind"`
	Label             string       `json:"label"`
	Status            EntityStatus `json:"status"`
	IsActive          bool         `json:"is_active"`
	LastKnownLocation *Location    `json:"last_known_location,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
