package models

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message must have content or at least one attachment")
	ErrBuildingNotFound     = errors.New("building not found")
	ErrApartmentNotFound    = errors.New("apartment not found")
	ErrLeaseNotFound        = errors.New("lease not found")
	ErrIncidentNotFound     = errors.New("incident not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)
