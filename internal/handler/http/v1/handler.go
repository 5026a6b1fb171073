package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jkimani/device_tracking_system/internal/config"
	"github.com/jkimani/device_tracking_system/internal/geo"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/service"
	"github.com/jkimani/device_tracking_system/internal/tracking"
	"github.com/sirupsen/logrus"
)

// Размер буфера подписчика SSE: медленный клиент теряет старые события,
// а не тормозит фан-аут
const streamBufferSize = 32

type Handler struct {
	trackingService service.TrackingService
	mobileService   service.MobileTrackingService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(trackingService service.TrackingService, mobileService service.MobileTrackingService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		trackingService: trackingService,
		mobileService:   mobileService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Register a tracked entity
// @Description Register a lost device or vehicle for tracking. Requires API key.
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity body RegisterEntityRequest true "Entity registration request"
// @Success 201 {object} RegisterEntityRequest
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /entities [post]
func (h *Handler) registerEntity(c *gin.Context) {
	var input RegisterEntityRequest
	log := h.logger.WithField("method", "registerEntity")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity := DTOToEntityModel(input)
	if err := h.trackingService.RegisterEntity(c.Request.Context(), entity); err != nil {
		log.WithError(err).Error("Failed to register entity in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entity.ID, "status": string(entity.Status)})
}

// @Summary Report entity status
// @Description Apply a status transition (lost/found/returned) to a tracked entity. Requires API key.
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Param status body StatusReportRequest true "Status report request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/status [post]
func (h *Handler) reportStatus(c *gin.Context) {
	entityID := c.Param("id")
	log := h.logger.WithField("method", "reportStatus").WithField("entity_id", entityID)

	var input StatusReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.trackingService.ReportStatus(c.Request.Context(), entityID, models.EntityStatus(input.Status)); err != nil {
		if errors.Is(err, tracking.ErrUnknownEntity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
			return
		}
		log.WithError(err).Error("Failed to report status in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Submit a position sample
// @Description Submit a raw position sample for a tracked entity. Insignificant samples are filtered out. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Param sample body LocationPayload true "Position sample"
// @Success 200 {object} SubmitSampleResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/samples [post]
func (h *Handler) submitSample(c *gin.Context) {
	entityID := c.Param("id")
	log := h.logger.WithField("method", "submitSample").WithField("entity_id", entityID)

	var input LocationPayload
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, accepted, err := h.trackingService.SubmitSample(c.Request.Context(), entityID, DTOToLocationModel(input))
	if err != nil {
		if errors.Is(err, tracking.ErrUnknownEntity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
			return
		}
		log.WithError(err).Error("Failed to submit sample in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, SubmitSampleResponse{
		Accepted: accepted,
		Update:   ModelToUpdateResponse(update),
	})
}

// @Summary Get current entity location
// @Description Get the most recent accepted location of a tracked entity. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Success 200 {object} LocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity or location not found"
// @Router /entities/{id}/location [get]
func (h *Handler) currentLocation(c *gin.Context) {
	entityID := c.Param("id")
	log := h.logger.WithField("method", "currentLocation").WithField("entity_id", entityID)

	loc, err := h.trackingService.CurrentLocation(c.Request.Context(), entityID)
	if err != nil {
		log.WithError(err).Warn("Failed to get current location from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	if loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location recorded yet"})
		return
	}
	c.JSON(http.StatusOK, ModelToLocationResponse(loc))
}

// @Summary Get entity tracking history
// @Description Get the accepted tracking updates of an entity, oldest first. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Success 200 {array} TrackingUpdateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/history [get]
func (h *Handler) history(c *gin.Context) {
	entityID := c.Param("id")
	log := h.logger.WithField("method", "history").WithField("entity_id", entityID)

	updates, err := h.trackingService.History(c.Request.Context(), entityID)
	if err != nil {
		log.WithError(err).Warn("Failed to get history from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	c.JSON(http.StatusOK, ModelsToUpdateResponses(updates))
}

// @Summary Get entity movement state
// @Description Infer whether the entity is currently moving from recent history. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Success 200 {object} MovementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/movement [get]
func (h *Handler) movement(c *gin.Context) {
	entityID := c.Param("id")
	log := h.logger.WithField("method", "movement").WithField("entity_id", entityID)

	moving, err := h.trackingService.IsMoving(c.Request.Context(), entityID)
	if err != nil {
		log.WithError(err).Warn("Failed to infer movement in service")
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	c.JSON(http.StatusOK, MovementResponse{EntityID: entityID, IsMoving: moving})
}

// @Summary Get entity speed estimate
// @Description Estimate the entity speed in meters per second from the two most recent updates. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Success 200 {object} SpeedResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/speed [get]
func (h *Handler) speed(c *gin.Context) {
	entityID := c.Param("id")
	log := h.logger.WithField("method", "speed").WithField("entity_id", entityID)

	estimate, err := h.trackingService.Speed(c.Request.Context(), entityID)
	if err != nil {
		log.WithError(err).Warn("Failed to estimate speed in service")
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	c.JSON(http.StatusOK, SpeedResponse{
		EntityID:    entityID,
		SpeedMps:    estimate,
		HasEstimate: estimate != nil,
	})
}

// @Summary Stream live tracking updates
// @Description Subscribe to live tracking updates of an entity over Server-Sent Events. Requires API key.
// @Tags Tracking
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param id path string true "Entity ID"
// @Success 200 {object} TrackingUpdateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /entities/{id}/stream [get]
func (h *Handler) streamUpdates(c *gin.Context) {
	entityID := c.Param("id")
	subscriberID := uuid.NewString()
	log := h.logger.WithField("method", "streamUpdates").WithField("entity_id", entityID)

	updates := make(chan models.TrackingUpdate, streamBufferSize)
	h.trackingService.Subscribe(entityID, subscriberID, func(update models.TrackingUpdate) {
		select {
		case updates <- update:
		default:
			// Переполненный клиент пропускает событие
		}
	})
	defer h.trackingService.Unsubscribe(entityID, subscriberID)

	log.Info("SSE subscriber connected")
	c.Stream(func(w io.Writer) bool {
		select {
		case update := <-updates:
			c.SSEvent("tracking_update", ModelToUpdateResponse(&update))
			return true
		case <-c.Request.Context().Done():
			log.Info("SSE subscriber disconnected")
			return false
		}
	})
}

// @Summary Request mobile network tracking
// @Description Locate a mobile number through its carrier. The request must carry a valid legal basis and an authorized officer. Requires API key.
// @Tags Mobile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body MobileTrackingRequestDTO true "Mobile tracking request"
// @Success 200 {object} MobileTrackingResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /mobile/track [post]
func (h *Handler) requestMobileTracking(c *gin.Context) {
	var input MobileTrackingRequestDTO
	log := h.logger.WithField("method", "requestMobileTracking")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.mobileService.RequestTracking(c.Request.Context(), DTOToMobileRequestModel(input))
	if err != nil {
		log.WithError(err).Error("Failed to handle mobile tracking request in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToMobileResponse(result))
}

// @Summary Compute distance between two points
// @Description Compute the great-circle distance, human-readable form and initial bearing between two points. Requires API key.
// @Tags Geo
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param points body DistanceRequest true "Distance request"
// @Success 200 {object} DistanceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /geo/distance [post]
func (h *Handler) distance(c *gin.Context) {
	var input DistanceRequest
	log := h.logger.WithField("method", "distance")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := models.Coordinate{Latitude: input.From.Latitude, Longitude: input.From.Longitude}
	to := models.Coordinate{Latitude: input.To.Latitude, Longitude: input.To.Longitude}
	meters := geo.DistanceMeters(from, to)
	bearing := geo.BearingDegrees(from, to)

	c.JSON(http.StatusOK, DistanceResponse{
		Meters:         meters,
		Formatted:      geo.FormatDistance(meters),
		BearingDegrees: bearing,
	})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
