package v1

import (
	"github.com/jkimani/device_tracking_system/internal/models"
)

// DTOToLocationModel преобразует DTO выборки в доменную модель.
// Источник по умолчанию - gps, отметка времени проставляется ядром.
func DTOToLocationModel(dto LocationPayload) models.Location {
	source := models.LocationSource(dto.Source)
	if !source.Valid() {
		source = models.SourceGPS
	}
	return models.Location{
		Coordinate: models.Coordinate{
			Latitude:  dto.Latitude,
			Longitude: dto.Longitude,
		},
		AccuracyMeters: dto.AccuracyMeters,
		Address:        dto.Address,
		Source:         source,
	}
}

// DTOToEntityModel преобразует DTO регистрации в доменную модель
func DTOToEntityModel(dto RegisterEntityRequest) *models.TrackedEntity {
	entity := &models.TrackedEntity{
		ID:     dto.ID,
		Kind:   models.EntityKind(dto.Kind),
		Label:  dto.Label,
		Status: models.EntityStatus(dto.Status),
	}
	if dto.LastKnownLocation != nil {
		loc := DTOToLocationModel(*dto.LastKnownLocation)
		entity.LastKnownLocation = &loc
	}
	return entity
}

// DTOToMobileRequestModel преобразует DTO мобильного запроса в доменную модель
func DTOToMobileRequestModel(dto MobileTrackingRequestDTO) *models.MobileTrackingRequest {
	return &models.MobileTrackingRequest{
		EntityID:         dto.EntityID,
		MobileNumber:     dto.MobileNumber,
		RequestType:      models.MobileRequestType(dto.RequestType),
		Priority:         dto.Priority,
		OfficerID:        dto.OfficerID,
		CourtOrderNumber: dto.CourtOrderNumber,
		EmergencyCode:    dto.EmergencyCode,
		ConsentToken:     dto.ConsentToken,
	}
}

// ModelToLocationResponse преобразует доменную модель позиции в DTO для ответа
func ModelToLocationResponse(model *models.Location) *LocationResponse {
	if model == nil {
		return nil
	}
	return &LocationResponse{
		Latitude:       model.Coordinate.Latitude,
		Longitude:      model.Coordinate.Longitude,
		AccuracyMeters: model.AccuracyMeters,
		Address:        model.Address,
		Timestamp:      model.Timestamp,
		Source:         string(model.Source),
	}
}

// ModelToUpdateResponse преобразует принятое обновление в DTO для ответа
func ModelToUpdateResponse(model *models.TrackingUpdate) *TrackingUpdateResponse {
	if model == nil {
		return nil
	}
	return &TrackingUpdateResponse{
		ID:         model.ID,
		EntityID:   model.EntityID,
		EntityKind: string(model.EntityKind),
		Location:   *ModelToLocationResponse(&model.Location),
		Timestamp:  model.Timestamp,
		Source:     model.Source,
		Confidence: model.Confidence,
	}
}

// ModelsToUpdateResponses преобразует слайс обновлений в слайс DTO
func ModelsToUpdateResponses(updates []models.TrackingUpdate) []*TrackingUpdateResponse {
	responses := make([]*TrackingUpdateResponse, len(updates))
	for i := range updates {
		responses[i] = ModelToUpdateResponse(&updates[i])
	}
	return responses
}

// ModelToMobileResponse преобразует итог мобильного запроса в DTO для ответа
func ModelToMobileResponse(model *models.MobileTrackingResult) *MobileTrackingResponse {
	return &MobileTrackingResponse{
		RequestID: model.RequestID,
		Success:   model.Success,
		Carrier:   string(model.Carrier),
		Location:  ModelToLocationResponse(model.Location),
		UpdateID:  model.UpdateID,
		Error:     model.Error,
	}
}
