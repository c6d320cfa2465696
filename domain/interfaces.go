package domain

import (
	"context"
	"io"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkVerified(ctx context.Context, userID uint) error
	ActivateMembership(ctx context.Context, userID uint, tier MembershipTier, expiry time.Time) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// OtpRepository defines OTP code data access operations
type OtpRepository interface {
	Create(ctx context.Context, code *OtpCode) error
	// FindActive returns the most recent unused, unexpired code matching
	// the user and code value exactly.
	FindActive(ctx context.Context, userID uint, code string, now time.Time) (*OtpCode, error)
	MarkUsed(ctx context.Context, id uint) error
	// InvalidateAll marks every unused code for the user as used.
	InvalidateAll(ctx context.Context, userID uint) error
}

// MembershipRepository defines membership data access operations
type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*Membership, error)
	FindByPayment(ctx context.Context, paymentID string) (*Membership, error)
	Update(ctx context.Context, m *Membership) error
}

// DocumentRepository defines document data access operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id uint) (*Document, error)
	// ListAccessible returns documents whose access rank is at or below
	// the viewer's role rank, newest first.
	ListAccessible(ctx context.Context, viewer Role) ([]*Document, error)
	Delete(ctx context.Context, id uint) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	// Login checks credentials. When the user has two-factor enabled it
	// issues an OTP and returns an empty token; otherwise it creates a
	// session directly.
	Login(ctx context.Context, email, password string) (*User, string, error)
	VerifyOTP(ctx context.Context, userID uint, code string) (*User, string, error)
	Logout(ctx context.Context, token string) error
}

// Registration carries validated registration input.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Tier      MembershipTier
}

// OTPService defines one-time-password operations
type OTPService interface {
	Issue(ctx context.Context, userID uint, phone string) error
	Verify(ctx context.Context, userID uint, code string) (bool, error)
}

// SessionService issues and validates revocable signed session tokens.
// Verify performs both the cryptographic check and the liveness check;
// callers must never trust a signature alone.
type SessionService interface {
	Create(ctx context.Context, user *User) (string, error)
	Verify(ctx context.Context, token string) (*User, error)
	Destroy(ctx context.Context, token string) error
}

// MembershipService drives the paid-membership checkout and the
// asynchronous payment reconciliation.
type MembershipService interface {
	StartCheckout(ctx context.Context, user *User, tier MembershipTier) (*CheckoutResult, error)
	// HandleWebhook verifies and applies a raw provider notification.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// DocumentService stores gated documents and mints download links.
type DocumentService interface {
	Upload(ctx context.Context, up DocumentUpload) (*Document, error)
	List(ctx context.Context, viewer Role) ([]*Document, error)
	// DownloadURL returns a short-lived presigned link, enforcing the
	// viewer's role rank against the document's access level.
	DownloadURL(ctx context.Context, viewer Role, docID uint) (string, error)
	Delete(ctx context.Context, docID uint) error
}

// DocumentUpload carries a validated upload request.
type DocumentUpload struct {
	Title        string
	Description  string
	Category     string
	Access       AccessLevel
	Filename     string
	ContentType  string
	Size         int64
	Body         io.Reader
	UploadedByID uint
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines signed session token operations
type TokenService interface {
	Generate(userID uint, role Role, sessionID string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService defines outbound notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// PaymentGateway abstracts the hosted payment provider.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, p CheckoutParams) (sessionID, checkoutURL string, err error)
	// VerifyEvent authenticates a webhook payload against the shared
	// signing secret and decodes it.
	VerifyEvent(payload []byte, signature string) (*PaymentEvent, error)
}

// CheckoutParams describes a hosted checkout session to create.
type CheckoutParams struct {
	UserID      uint
	Email       string
	Tier        MembershipTier
	Season      int
	Amount      int64
	Currency    string
	Label       string
	Description string
	SuccessURL  string
	CancelURL   string
}

// PaymentEvent is a decoded, authenticated provider notification.
type PaymentEvent struct {
	ID                string
	Type              PaymentEventType
	CheckoutSessionID string
	PaymentID         string
	UserID            uint
	Tier              MembershipTier
	Season            int
}

// PaymentEventType is the subset of provider events the club acts on.
type PaymentEventType string

const (
	EventCheckoutCompleted PaymentEventType = "checkout.session.completed"
	EventPaymentFailed     PaymentEventType = "payment_intent.payment_failed"
	EventUnknown           PaymentEventType = "unknown"
)

// ObjectStorage abstracts the object-storage bucket for uploads and
// presigned downloads.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// EventLedger records processed webhook event ids so redeliveries can be
// acknowledged without reapplying them.
type EventLedger interface {
	// FirstSeen records the id and reports whether this delivery is the
	// first one observed.
	FirstSeen(ctx context.Context, eventID string) (bool, error)
	// Forget releases a recorded id so the provider's next redelivery
	// is treated as first. Used when applying the event failed.
	Forget(ctx context.Context, eventID string) error
}
