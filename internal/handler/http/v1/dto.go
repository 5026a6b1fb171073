package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationPayload DTO позиционной выборки
// @Description DTO позиционной выборки
type LocationPayload struct {
	Latitude       float64 `json:"latitude" validate:"required,latitude"`
	Longitude      float64 `json:"longitude" validate:"required,longitude"`
	AccuracyMeters float64 `json:"accuracy_meters,omitempty" validate:"omitempty,gte=0"`
	Address        string  `json:"address,omitempty"`
	Source         string  `json:"source,omitempty" validate:"omitempty,oneof=gps network manual witness"`
}

// RegisterEntityRequest DTO для регистрации отслеживаемой сущности
// @Description DTO для регистрации отслеживаемой сущности
type RegisterEntityRequest struct {
	ID                string           `json:"id" validate:"required,min=1,max=64"`
	Kind              string           `json:"kind" validate:"required,oneof=device vehicle"`
	Label             string           `json:"label,omitempty" validate:"omitempty,max=255"`
	Status            string           `json:"status,omitempty" validate:"omitempty,oneof=lost found returned"`
	LastKnownLocation *LocationPayload `json:"last_known_location,omitempty"`
}

// StatusReportRequest DTO для перехода статуса сущности
// @Description DTO для перехода статуса сущности
type StatusReportRequest struct {
	Status string `json:"status" validate:"required,oneof=lost found returned"`
}

// LocationResponse DTO для ответа с позицией
// @Description DTO для ответа с позицией
type LocationResponse struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters,omitempty"`
	Address        string    `json:"address,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source"`
}

// TrackingUpdateResponse DTO принятого обновления позиции
// @Description DTO принятого обновления позиции
type TrackingUpdateResponse struct {
	ID         uuid.UUID        `json:"id"`
	EntityID   string           `json:"entity_id"`
	EntityKind string           `json:"entity_kind"`
	Location   LocationResponse `json:"location"`
	Timestamp  time.Time        `json:"timestamp"`
	Source     string           `json:"source"`
	Confidence float64          `json:"confidence"`
}

// SubmitSampleResponse DTO итога подачи выборки
// @Description DTO итога подачи выборки
type SubmitSampleResponse struct {
	Accepted bool                    `json:"accepted"`
	Update   *TrackingUpdateResponse `json:"update,omitempty"`
}

// MovementResponse DTO признака движения
// @Description DTO признака движения
type MovementResponse struct {
	EntityID string `json:"entity_id"`
	IsMoving bool   `json:"is_moving"`
}

// SpeedResponse DTO оценки скорости
// @Description DTO оценки скорости
type SpeedResponse struct {
	EntityID    string   `json:"entity_id"`
	SpeedMps    *float64 `json:"speed_mps,omitempty"`
	HasEstimate bool     `json:"has_estimate"`
}

// PointPayload DTO географической точки
// @Description DTO географической точки
type PointPayload struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// DistanceRequest DTO для расчета расстояния между двумя точками
// @Description DTO для расчета расстояния между двумя точками
type DistanceRequest struct {
	From PointPayload `json:"from" validate:"required"`
	To   PointPayload `json:"to" validate:"required"`
}

// DistanceResponse DTO результата расчета расстояния
// @Description DTO результата расчета расстояния
type DistanceResponse struct {
	Meters         float64 `json:"meters"`
	Formatted      string  `json:"formatted"`
	BearingDegrees float64 `json:"bearing_degrees"`
}

// MobileTrackingRequestDTO DTO запроса отслеживания по мобильной сети
// @Description DTO запроса отслеживания по мобильной сети
type MobileTrackingRequestDTO struct {
	EntityID         string `json:"entity_id,omitempty" validate:"omitempty,max=64"`
	MobileNumber     string `json:"mobile_number" validate:"required,min=9,max=16"`
	RequestType      string `json:"request_type" validate:"required,oneof=EMERGENCY COURT_ORDER CONSENT LOST_DEVICE"`
	Priority         string `json:"priority,omitempty" validate:"omitempty,oneof=low normal high"`
	OfficerID        string `json:"officer_id" validate:"required"`
	CourtOrderNumber string `json:"court_order_number,omitempty"`
	EmergencyCode    string `json:"emergency_code,omitempty"`
	ConsentToken     string `json:"consent_token,omitempty"`
}

// MobileTrackingResponse DTO итога запроса мобильного отслеживания
// @Description DTO итога запроса мобильного отслеживания
type MobileTrackingResponse struct {
	RequestID uuid.UUID         `json:"request_id"`
	Success   bool              `json:"success"`
	Carrier   string            `json:"carrier,omitempty"`
	Location  *LocationResponse `json:"location,omitempty"`
	UpdateID  *uuid.UUID        `json:"update_id,omitempty"`
	Error     string            `json:"error,omitempty"`
}
