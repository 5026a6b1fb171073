package mobile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jkimani/device_tracking_system/internal/models"
)

// ErrUnauthorized возвращается при провале политики авторизации запроса
var ErrUnauthorized = errors.New("unauthorized")

// UserDirectory - справочник пользователей для проверки роли запрашивающего
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// StaticUserDirectory - справочник на карте в памяти; используется без
// подключенной базы пользователей и в тестах
type StaticUserDirectory map[string]models.User

// GetUser возвращает пользователя по идентификатору
func (d StaticUserDirectory) GetUser(_ context.Context, id string) (*models.User, error) {
	user, ok := d[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return &user, nil
}

// DispatchAuthorizer - чистая проверка политики перед диспетчеризацией
// запроса оператору. Результат бинарный: авторизован или нет, частичной
// авторизации не бывает.
type DispatchAuthorizer struct {
	users UserDirectory
}

// NewDispatchAuthorizer создает авторизатор поверх справочника пользователей
func NewDispatchAuthorizer(users UserDirectory) *DispatchAuthorizer {
	return &DispatchAuthorizer{users: users}
}

// Authorize проверяет запрос: запрашивающий должен быть активным пользователем
// с ролью POLICE или ADMIN, а тип запроса - подкреплен обязательным реквизитом
// (EMERGENCY - код, COURT_ORDER - номер постановления, CONSENT - токен
// согласия, LOST_DEVICE - ничего дополнительно)
func (a *DispatchAuthorizer) Authorize(ctx context.Context, req *models.MobileTrackingRequest) error {
	if !req.RequestType.Valid() {
		return fmt.Errorf("%w: unsupported request type %q", ErrUnauthorized, req.RequestType)
	}

	switch req.RequestType {
	case models.RequestEmergency:
		if req.EmergencyCode == "" {
			return fmt.Errorf("%w: emergency code is required", ErrUnauthorized)
		}
	case models.RequestCourtOrder:
		if req.CourtOrderNumber == "" {
			return fmt.Errorf("%w: court order number is required", ErrUnauthorized)
		}
	case models.RequestConsent:
		if req.ConsentToken == "" {
			return fmt.Errorf("%w: consent token is required", ErrUnauthorized)
		}
	case models.RequestLostDevice:
		// Дополнительных реквизитов не требуется
	}

	user, err := a.users.GetUser(ctx, req.OfficerID)
	if err != nil {
		return fmt.Errorf("%w: officer lookup failed: %v", ErrUnauthorized, err)
	}
	if user == nil || !user.IsActive {
		return fmt.Errorf("%w: officer is not an active user", ErrUnauthorized)
	}
	if user.Role != models.RolePolice && user.Role != models.RoleAdmin {
		return fmt.Errorf("%w: role %q may not request mobile tracking", ErrUnauthorized, user.Role)
	}
	return nil
}
