package mocks

import (
	"context"
	"io"
	"time"

	"github.com/you/clubsvc/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(userID uint, role domain.Role, sessionID string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Generate(userID uint, role domain.Role, sessionID string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role, sessionID)
	}
	return "token_" + sessionID, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

var _ domain.TokenService = (*MockTokenService)(nil)

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error
	Sent        []string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	m.Sent = append(m.Sent, message)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

var _ domain.NotificationService = (*MockNotificationService)(nil)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, userID uint, phone string) error
	VerifyFunc func(ctx context.Context, userID uint, code string) (bool, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, userID uint, phone string) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID, phone)
	}
	return nil
}

func (m *MockOTPService) Verify(ctx context.Context, userID uint, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, code)
	}
	return false, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	CreateFunc  func(ctx context.Context, user *domain.User) (string, error)
	VerifyFunc  func(ctx context.Context, token string) (*domain.User, error)
	DestroyFunc func(ctx context.Context, token string) error
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Create(ctx context.Context, user *domain.User) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return "session_token", nil
}

func (m *MockSessionService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionService) Destroy(ctx context.Context, token string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, token)
	}
	return nil
}

var _ domain.SessionService = (*MockSessionService)(nil)

// MockPaymentGateway implements domain.PaymentGateway for testing
type MockPaymentGateway struct {
	CreateCheckoutFunc func(ctx context.Context, p domain.CheckoutParams) (string, string, error)
	VerifyEventFunc    func(payload []byte, signature string) (*domain.PaymentEvent, error)
}

// NewMockPaymentGateway creates a new MockPaymentGateway with default behaviors
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) CreateCheckout(ctx context.Context, p domain.CheckoutParams) (string, string, error) {
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, p)
	}
	return "cs_test_123", "https://checkout.example.com/cs_test_123", nil
}

func (m *MockPaymentGateway) VerifyEvent(payload []byte, signature string) (*domain.PaymentEvent, error) {
	if m.VerifyEventFunc != nil {
		return m.VerifyEventFunc(payload, signature)
	}
	return nil, domain.ErrWebhookSignature
}

var _ domain.PaymentGateway = (*MockPaymentGateway)(nil)

// MockObjectStorage implements domain.ObjectStorage for testing
type MockObjectStorage struct {
	PutFunc        func(ctx context.Context, key, contentType string, body io.Reader) error
	DeleteFunc     func(ctx context.Context, key string) error
	PresignGetFunc func(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// NewMockObjectStorage creates a new MockObjectStorage with default behaviors
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{}
}

func (m *MockObjectStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, contentType, body)
	}
	return nil
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *MockObjectStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.PresignGetFunc != nil {
		return m.PresignGetFunc(ctx, key, expiry)
	}
	return "https://bucket.example.com/" + key + "?signed=1", nil
}

var _ domain.ObjectStorage = (*MockObjectStorage)(nil)

// MockEventLedger implements domain.EventLedger for testing
type MockEventLedger struct {
	FirstSeenFunc func(ctx context.Context, eventID string) (bool, error)
	ForgetFunc    func(ctx context.Context, eventID string) error
	seen          map[string]bool
}

// NewMockEventLedger creates a new MockEventLedger that tracks event ids
// in memory
func NewMockEventLedger() *MockEventLedger {
	return &MockEventLedger{seen: make(map[string]bool)}
}

func (m *MockEventLedger) FirstSeen(ctx context.Context, eventID string) (bool, error) {
	if m.FirstSeenFunc != nil {
		return m.FirstSeenFunc(ctx, eventID)
	}
	if m.seen[eventID] {
		return false, nil
	}
	m.seen[eventID] = true
	return true, nil
}

func (m *MockEventLedger) Forget(ctx context.Context, eventID string) error {
	if m.ForgetFunc != nil {
		return m.ForgetFunc(ctx, eventID)
	}
	delete(m.seen, eventID)
	return nil
}

var _ domain.EventLedger = (*MockEventLedger)(nil)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc  func(ctx context.Context, reg domain.Registration) (*domain.User, error)
	LoginFunc     func(ctx context.Context, email, password string) (*domain.User, string, error)
	VerifyOTPFunc func(ctx context.Context, userID uint, code string) (*domain.User, string, error)
	LogoutFunc    func(ctx context.Context, token string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return nil, domain.ErrEmailTaken
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, "", domain.ErrInvalidCredentials
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, userID uint, code string) (*domain.User, string, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, userID, code)
	}
	return nil, "", domain.ErrOTPInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

var _ domain.AuthService = (*MockAuthService)(nil)

// MockMembershipService implements domain.MembershipService for testing
type MockMembershipService struct {
	StartCheckoutFunc func(ctx context.Context, user *domain.User, tier domain.MembershipTier) (*domain.CheckoutResult, error)
	HandleWebhookFunc func(ctx context.Context, payload []byte, signature string) error
}

// NewMockMembershipService creates a new MockMembershipService with default behaviors
func NewMockMembershipService() *MockMembershipService {
	return &MockMembershipService{}
}

func (m *MockMembershipService) StartCheckout(ctx context.Context, user *domain.User, tier domain.MembershipTier) (*domain.CheckoutResult, error) {
	if m.StartCheckoutFunc != nil {
		return m.StartCheckoutFunc(ctx, user, tier)
	}
	return nil, domain.ErrInvalidTier
}

func (m *MockMembershipService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if m.HandleWebhookFunc != nil {
		return m.HandleWebhookFunc(ctx, payload, signature)
	}
	return domain.ErrWebhookSignature
}

var _ domain.MembershipService = (*MockMembershipService)(nil)

// MockDocumentService implements domain.DocumentService for testing
type MockDocumentService struct {
	UploadFunc      func(ctx context.Context, up domain.DocumentUpload) (*domain.Document, error)
	ListFunc        func(ctx context.Context, viewer domain.Role) ([]*domain.Document, error)
	DownloadURLFunc func(ctx context.Context, viewer domain.Role, docID uint) (string, error)
	DeleteFunc      func(ctx context.Context, docID uint) error
}

// NewMockDocumentService creates a new MockDocumentService with default behaviors
func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{}
}

func (m *MockDocumentService) Upload(ctx context.Context, up domain.DocumentUpload) (*domain.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, up)
	}
	return nil, domain.ErrInvalidAccess
}

func (m *MockDocumentService) List(ctx context.Context, viewer domain.Role) ([]*domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, viewer)
	}
	return nil, nil
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, viewer domain.Role, docID uint) (string, error) {
	if m.DownloadURLFunc != nil {
		return m.DownloadURLFunc(ctx, viewer, docID)
	}
	return "", domain.ErrDocumentNotFound
}

func (m *MockDocumentService) Delete(ctx context.Context, docID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, docID)
	}
	return nil
}

var _ domain.DocumentService = (*MockDocumentService)(nil)
