package mobile

import (
	"context"
	"testing"

	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func testDirectory() StaticUserDirectory {
	return StaticUserDirectory{
		"officer-1": {ID: "officer-1", Name: "Wanjiku", Role: models.RolePolice, IsActive: true},
		"admin-1":   {ID: "admin-1", Name: "Otieno", Role: models.RoleAdmin, IsActive: true},
		"citizen-1": {ID: "citizen-1", Name: "Mumbi", Role: models.RoleCitizen, IsActive: true},
		"retired-1": {ID: "retired-1", Name: "Kiprop", Role: models.RolePolice, IsActive: false},
	}
}

func TestAuthorize_PoliceLostDevice(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	err := auth.Authorize(context.Background(), &models.MobileTrackingRequest{
		OfficerID:   "officer-1",
		RequestType: models.RequestLostDevice,
	})
	assert.NoError(t, err)
}

func TestAuthorize_AdminAllowed(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	err := auth.Authorize(context.Background(), &models.MobileTrackingRequest{
		OfficerID:     "admin-1",
		RequestType:   models.RequestEmergency,
		EmergencyCode: "EC-911",
	})
	assert.NoError(t, err)
}

func TestAuthorize_CitizenRejected(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	err := auth.Authorize(context.Background(), &models.MobileTrackingRequest{
		OfficerID:   "citizen-1",
		RequestType: models.RequestLostDevice,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_InactiveOfficerRejected(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	err := auth.Authorize(context.Background(), &models.MobileTrackingRequest{
		OfficerID:   "retired-1",
		RequestType: models.RequestLostDevice,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_UnknownOfficerRejected(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	err := auth.Authorize(context.Background(), &models.MobileTrackingRequest{
		OfficerID:   "ghost",
		RequestType: models.RequestLostDevice,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_MissingCredentialRejected(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	tests := []struct {
		name string
		req  *models.MobileTrackingRequest
	}{
		{"emergency without code", &models.MobileTrackingRequest{OfficerID: "officer-1", RequestType: models.RequestEmergency}},
		{"court order without number", &models.MobileTrackingRequest{OfficerID: "officer-1", RequestType: models.RequestCourtOrder}},
		{"consent without token", &models.MobileTrackingRequest{OfficerID: "officer-1", RequestType: models.RequestConsent}},
		{"unsupported type", &models.MobileTrackingRequest{OfficerID: "officer-1", RequestType: "WIRETAP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, auth.Authorize(context.Background(), tt.req), ErrUnauthorized)
		})
	}
}

func TestAuthorize_EmptyCourtOrderRejectedRegardlessOfRole(t *testing.T) {
	auth := NewDispatchAuthorizer(testDirectory())

	// Пустой номер постановления отклоняется даже для ADMIN
	for _, officer := range []string{"officer-1", "admin-1"} {
		err := auth.Authorize(context.Background(), &models.MobileTrackingRequest{
			OfficerID:   officer,
			RequestType: models.RequestCourtOrder,
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
}
