package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationSource - происхождение позиционной выборки
type LocationSource string

const (
	SourceGPS     LocationSource = "gps"
	SourceNetwork LocationSource = "network"
	SourceManual  LocationSource = "manual"
	SourceWitness LocationSource = "witness"
)

// Valid проверяет, что источник входит в число известных
func (s LocationSource) Valid() bool {
	switch s {
	case SourceGPS, SourceNetwork, SourceManual, SourceWitness:
		return true
	}
	return false
}

// Coordinate - географическая точка в градусах (WGS84)
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location - принятая позиционная выборка; неизменяема после создания
type Location struct {
	ID             uuid.UUID      `json:"id"`
	Coordinate     Coordinate     `json:"coordinate"`
	AccuracyMeters float64        `json:"accuracy_meters,omitempty"`
	Address        string         `json:"address,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Source         LocationSource `json:"source"`
}
