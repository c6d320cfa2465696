package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrPhoneTaken         = errors.New("an account with this phone number already exists")
	ErrUserSuspended      = errors.New("account suspended")
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("invalid or expired otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
	ErrSMSDelivery    = errors.New("failed to send verification code")
)

// Token and session errors
var (
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient permissions")
)

// Payment errors
var (
	ErrInvalidTier        = errors.New("invalid membership tier")
	ErrWebhookSignature   = errors.New("invalid webhook signature")
	ErrMembershipNotFound = errors.New("membership not found")
)

// Document errors
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidAccess    = errors.New("invalid access level")
)
