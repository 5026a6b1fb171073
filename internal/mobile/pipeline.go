package mobile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani/device_tracking_system/internal/geo"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

// SampleSink - приемник принятых позиций; успешный результат оператора
// вливается в отслеживание тем же путем, что и любая другая выборка
type SampleSink interface {
	Accept(entityID string, sample models.Location) (*models.TrackingUpdate, bool, error)
}

// Pipeline проводит запрос на отслеживание по мобильной сети:
// авторизация -> определение оператора -> диспетчеризация -> фиксация итога.
// Каждый запрос ровно один раз попадает в терминальное состояние; повторные
// попытки моделируются новыми запросами.
type Pipeline struct {
	authorizer *DispatchAuthorizer
	carriers   AdapterRegistry
	sink       SampleSink
	logger     *logrus.Logger
}

// NewPipeline собирает конвейер мобильного отслеживания
func NewPipeline(authorizer *DispatchAuthorizer, carriers AdapterRegistry, sink SampleSink, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		authorizer: authorizer,
		carriers:   carriers,
		sink:       sink,
		logger:     logger,
	}
}

// Track выполняет запрос до терминального состояния и возвращает
// структурированный итог. Отказ авторизации и сбои оператора не
// ретраятся автоматически.
func (p *Pipeline) Track(ctx context.Context, req *models.MobileTrackingRequest) *models.MobileTrackingResult {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	log := p.logger.WithFields(logrus.Fields{
		"service":       "mobile_pipeline",
		"request_id":    req.ID,
		"request_type":  req.RequestType,
		"mobile_number": req.MobileNumber,
	})
	log.Info("Processing mobile tracking request")

	if err := p.authorizer.Authorize(ctx, req); err != nil {
		log.WithError(err).Warn("Mobile tracking request rejected by authorization policy")
		return p.fail(req, err)
	}

	carrier := ResolveCarrier(req.MobileNumber)
	req.Carrier = carrier
	if carrier == models.CarrierUnknown {
		log.Warn("Mobile number prefix does not map to a known carrier")
		return p.fail(req, ErrUnknownCarrier)
	}

	adapter, ok := p.carriers[carrier]
	if !ok {
		log.WithField("carrier", carrier).Warn("No adapter registered for carrier")
		return p.fail(req, fmt.Errorf("%w: no %s adapter registered", ErrCarrierUnavailable, carrier))
	}

	if !req.MarkDispatched() {
		log.Error("Request is not in a dispatchable state")
		return p.fail(req, fmt.Errorf("request %s already processed", req.ID))
	}

	location, err := adapter.Locate(ctx, req.MobileNumber)
	if err != nil {
		log.WithError(err).Warn("Carrier lookup failed")
		return p.fail(req, err)
	}

	if !geo.WithinKenya(location.Coordinate) {
		log.WithFields(logrus.Fields{
			"latitude":  location.Coordinate.Latitude,
			"longitude": location.Coordinate.Longitude,
		}).Warn("Carrier returned a location outside the service region")
		return p.fail(req, fmt.Errorf("%w: location outside service region", ErrCarrierUnavailable))
	}

	var updateID *uuid.UUID
	if p.sink != nil && req.EntityID != "" {
		update, accepted, err := p.sink.Accept(req.EntityID, *location)
		if err != nil {
			log.WithError(err).Warn("Failed to persist carrier location as tracking update")
		} else if accepted {
			updateID = &update.ID
		}
	}

	req.Success = true
	req.Location = location
	req.CompletedAt = time.Now().UTC()
	req.Complete(true)

	log.WithField("carrier", carrier).Info("Mobile tracking request succeeded")
	return &models.MobileTrackingResult{
		RequestID: req.ID,
		Success:   true,
		Carrier:   carrier,
		Location:  location,
		UpdateID:  updateID,
	}
}

// fail фиксирует терминальный неуспех запроса ровно один раз
func (p *Pipeline) fail(req *models.MobileTrackingRequest, cause error) *models.MobileTrackingResult {
	if req.Complete(false) {
		req.Success = false
		req.Error = errorLabel(cause)
		req.CompletedAt = time.Now().UTC()
	}
	return &models.MobileTrackingResult{
		RequestID:    req.ID,
		Success:      false,
		Unauthorized: errors.Is(cause, ErrUnauthorized),
		Carrier:      req.Carrier,
		Error:        req.Error,
	}
}

// errorLabel сводит причину к стабильной формулировке для вызывающей стороны
func errorLabel(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrUnknownCarrier):
		return "Unknown network provider"
	case errors.Is(err, ErrCarrierUnavailable):
		return fmt.Sprintf("Carrier unavailable: %v", err)
	}
	return err.Error()
}
