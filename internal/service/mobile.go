package service

import (
	"context"

	"github.com/jkimani/device_tracking_system/internal/mobile"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=mobile.go -destination=mocks/mock_mobile.go -package=mocks

// MobileTrackingService определяет контракт запросов на отслеживание
// по мобильной сети
type MobileTrackingService interface {
	RequestTracking(ctx context.Context, req *models.MobileTrackingRequest) (*models.MobileTrackingResult, error)
}

type mobileTrackingService struct {
	pipeline *mobile.Pipeline
	repo     TrackingRepository
	logger   *logrus.Logger
}

// NewMobileTrackingService собирает сервис мобильного отслеживания
func NewMobileTrackingService(pipeline *mobile.Pipeline, repo TrackingRepository, logger *logrus.Logger) MobileTrackingService {
	return &mobileTrackingService{
		pipeline: pipeline,
		repo:     repo,
		logger:   logger,
	}
}

// RequestTracking проводит запрос через конвейер до терминального состояния
// и фиксирует итог в хранилище. Сбой записи не меняет итог запроса.
func (s *mobileTrackingService) RequestTracking(ctx context.Context, req *models.MobileTrackingRequest) (*models.MobileTrackingResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "mobile_tracking",
		"method":       "RequestTracking",
		"request_type": req.RequestType,
		"officer_id":   req.OfficerID,
	})
	log.Info("Handling mobile tracking request")

	result := s.pipeline.Track(ctx, req)

	// Отказ авторизации не оставляет записи о сетевом запросе
	if s.repo != nil && !result.Unauthorized {
		if err := s.repo.SaveMobileRequest(ctx, req); err != nil {
			log.WithError(err).Error("Failed to persist mobile tracking request")
		}
	}

	log.WithFields(logrus.Fields{
		"request_id": result.RequestID,
		"success":    result.Success,
		"carrier":    result.Carrier,
	}).Info("Mobile tracking request completed")
	return result, nil
}
