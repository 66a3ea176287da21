package util

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")

	ErrModuleNotCompleted    = errors.New("all lessons must be completed first")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrRegistrationClosed    = errors.New("registration deadline has passed")
	ErrEventFull             = errors.New("event has reached maximum participants")
	ErrNotRegistered         = errors.New("not registered for this event")
	ErrInsufficientPoints    = errors.New("insufficient points")
	ErrRewardOutOfStock      = errors.New("reward is out of stock")
	ErrRewardInactive        = errors.New("reward is not available")
	ErrNotParticipant        = errors.New("not a participant of this challenge")
	ErrSubmissionNotRequired = errors.New("challenge does not accept submissions")
	ErrAlreadyReviewed       = errors.New("submission already reviewed")
	ErrRequestDecided        = errors.New("pin request already reviewed")
	ErrDailyAlreadyAnswered  = errors.New("daily question already answered today")
	ErrInvalidOTP            = errors.New("invalid or expired otp")
)
