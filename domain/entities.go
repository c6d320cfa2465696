package domain

import "time"

// User represents a club member's identity record
type User struct {
	ID               uint
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	PasswordHash     string
	Role             Role
	MembershipStatus MembershipStatus
	MembershipTier   MembershipTier
	MembershipExpiry *time.Time
	TwoFactorEnabled bool
	Verified         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Suspended reports whether the user's account has been suspended.
// Suspended users fail every authenticated operation, including ones
// carrying a still-valid session token.
func (u *User) Suspended() bool {
	return u.MembershipStatus == MembershipSuspended
}

// Session represents a revocable server-side login record. The signed
// token alone is never sufficient; the row must still exist.
type Session struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at time now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// OtpCode is a six-digit second-factor code sent by SMS. At most one
// unused code per user is valid; issuing a new one retires the rest.
type OtpCode struct {
	ID        uint
	UserID    uint
	Phone     string
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Membership records a single season's paid membership purchase, bound
// to the payment provider's checkout session.
type Membership struct {
	ID                uint
	UserID            uint
	Tier              MembershipTier
	Season            int
	Amount            int64
	Currency          string
	CheckoutSessionID string
	PaymentID         string
	Status            PaymentStatus
	PaidAt            *time.Time
	CreatedAt         time.Time
}

// Document is an uploaded file gated by an access level and served via
// short-lived presigned links.
type Document struct {
	ID           uint
	Title        string
	Description  string
	StorageKey   string
	FileType     string
	FileSize     int64
	Category     string
	Access       AccessLevel
	UploadedByID uint
	CreatedAt    time.Time
}

// TokenClaims represents the signed session token's payload
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CheckoutResult is returned when a membership purchase is initiated.
type CheckoutResult struct {
	CheckoutURL       string
	CheckoutSessionID string
	Membership        *Membership
}

// SeasonExpiry returns the membership expiry for a paid season: the end
// of the English cricket membership year, 31 March of the next year.
// Season 2024 expires 2025-03-31.
func SeasonExpiry(season int) time.Time {
	return time.Date(season+1, time.March, 31, 0, 0, 0, 0, time.UTC)
}
