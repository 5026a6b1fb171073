package models

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// MobileRequestType - правовое основание запроса на отслеживание по номеру
type MobileRequestType string

const (
	RequestEmergency  MobileRequestType = "EMERGENCY"
	RequestCourtOrder MobileRequestType = "COURT_ORDER"
	RequestConsent    MobileRequestType = "CONSENT"
	RequestLostDevice MobileRequestType = "LOST_DEVICE"
)

// Valid проверяет, что тип запроса известен
func (t MobileRequestType) Valid() bool {
	switch t {
	case RequestEmergency, RequestCourtOrder, RequestConsent, RequestLostDevice:
		return true
	}
	return false
}

// Carrier - оператор мобильной сети
type Carrier string

const (
	CarrierSafaricom Carrier = "SAFARICOM"
	CarrierAirtel    Carrier = "AIRTEL"
	CarrierTelkom    Carrier = "TELKOM"
	CarrierUnknown   Carrier = "UNKNOWN"
)

// RequestState - состояние запроса на отслеживание по мобильной сети
type RequestState int32

const (
	RequestCreated RequestState = iota
	RequestDispatched
	RequestSucceeded
	RequestFailed
)

// String возвращает строковое представление состояния
func (s RequestState) String() string {
	switch s {
	case RequestCreated:
		return "created"
	case RequestDispatched:
		return "dispatched"
	case RequestSucceeded:
		return "succeeded"
	case RequestFailed:
		return "failed"
	}
	return "unknown"
}

// MobileTrackingRequest - запрос на определение местоположения по номеру
// телефона. Исход проставляется ровно один раз: переходы состояния атомарны,
// из терминального состояния (Succeeded/Failed) выхода нет.
type MobileTrackingRequest struct {
	ID               uuid.UUID         `json:"id"`
	EntityID         string            `json:"entity_id"`
	MobileNumber     string            `json:"mobile_number"`
	RequestType      MobileRequestType `json:"request_type"`
	Priority         string            `json:"priority,omitempty"`
	OfficerID        string            `json:"officer_id"`
	CourtOrderNumber string            `json:"court_order_number,omitempty"`
	EmergencyCode    string            `json:"emergency_code,omitempty"`
	ConsentToken     string            `json:"consent_token,omitempty"`

	Carrier     Carrier   `json:"carrier,omitempty"`
	Success     bool      `json:"success"`
	Location    *Location `json:"location,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`

	state atomic.Int32
}

// State возвращает текущее состояние запроса
func (r *MobileTrackingRequest) State() RequestState {
	return RequestState(r.state.Load())
}

// MarkDispatched переводит запрос Created -> Dispatched.
// Возвращает false, если запрос уже ушел дальше.
func (r *MobileTrackingRequest) MarkDispatched() bool {
	return r.state.CompareAndSwap(int32(RequestCreated), int32(RequestDispatched))
}

// Complete переводит запрос в терминальное состояние ровно один раз.
// Повторный вызов возвращает false и ничего не меняет.
func (r *MobileTrackingRequest) Complete(success bool) bool {
	target := RequestFailed
	if success {
		target = RequestSucceeded
	}
	if r.state.CompareAndSwap(int32(RequestDispatched), int32(target)) {
		return true
	}
	// Отказ до диспетчеризации (авторизация, неизвестный оператор)
	return r.state.CompareAndSwap(int32(RequestCreated), int32(target))
}

// MobileTrackingResult - структурированный итог запроса для вызывающей стороны.
// Unauthorized выставляется отдельно от текста ошибки: решения вызывающей
// стороны (например, не оставлять запись о запросе) не завязаны на формулировку.
type MobileTrackingResult struct {
	RequestID    uuid.UUID  `json:"request_id"`
	Success      bool       `json:"success"`
	Unauthorized bool       `json:"unauthorized,omitempty"`
	Carrier      Carrier    `json:"carrier,omitempty"`
	Location     *Location  `json:"location,omitempty"`
	UpdateID     *uuid.UUID `json:"update_id,omitempty"`
	Error        string     `json:"error,omitempty"`
}
