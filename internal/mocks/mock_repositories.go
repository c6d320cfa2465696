package mocks

import (
	"context"
	"time"

	"github.com/you/clubsvc/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc        func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc   func(ctx context.Context, token string) (*domain.Session, error)
	DeleteFunc        func(ctx context.Context, token string) error
	DeleteExpiredFunc func(ctx context.Context) error
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return nil
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

// MockOtpRepository implements domain.OtpRepository for testing
type MockOtpRepository struct {
	CreateFunc        func(ctx context.Context, code *domain.OtpCode) error
	FindActiveFunc    func(ctx context.Context, userID uint, code string, now time.Time) (*domain.OtpCode, error)
	MarkUsedFunc      func(ctx context.Context, id uint) error
	InvalidateAllFunc func(ctx context.Context, userID uint) error
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

func (m *MockOtpRepository) Create(ctx context.Context, code *domain.OtpCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

func (m *MockOtpRepository) FindActive(ctx context.Context, userID uint, code string, now time.Time) (*domain.OtpCode, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, userID, code, now)
	}
	return nil, domain.ErrOTPInvalid
}

func (m *MockOtpRepository) MarkUsed(ctx context.Context, id uint) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockOtpRepository) InvalidateAll(ctx context.Context, userID uint) error {
	if m.InvalidateAllFunc != nil {
		return m.InvalidateAllFunc(ctx, userID)
	}
	return nil
}

var _ domain.OtpRepository = (*MockOtpRepository)(nil)

// MockMembershipRepository implements domain.MembershipRepository for testing
type MockMembershipRepository struct {
	CreateFunc                func(ctx context.Context, m *domain.Membership) error
	FindByCheckoutSessionFunc func(ctx context.Context, checkoutSessionID string) (*domain.Membership, error)
	FindByPaymentFunc         func(ctx context.Context, paymentID string) (*domain.Membership, error)
	UpdateFunc                func(ctx context.Context, m *domain.Membership) error
}

// NewMockMembershipRepository creates a new MockMembershipRepository with default behaviors
func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{}
}

func (m *MockMembershipRepository) Create(ctx context.Context, mem *domain.Membership) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mem)
	}
	return nil
}

func (m *MockMembershipRepository) FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*domain.Membership, error) {
	if m.FindByCheckoutSessionFunc != nil {
		return m.FindByCheckoutSessionFunc(ctx, checkoutSessionID)
	}
	return nil, domain.ErrMembershipNotFound
}

func (m *MockMembershipRepository) FindByPayment(ctx context.Context, paymentID string) (*domain.Membership, error) {
	if m.FindByPaymentFunc != nil {
		return m.FindByPaymentFunc(ctx, paymentID)
	}
	return nil, domain.ErrMembershipNotFound
}

func (m *MockMembershipRepository) Update(ctx context.Context, mem *domain.Membership) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mem)
	}
	return nil
}

var _ domain.MembershipRepository = (*MockMembershipRepository)(nil)

// MockDocumentRepository implements domain.DocumentRepository for testing
type MockDocumentRepository struct {
	CreateFunc         func(ctx context.Context, doc *domain.Document) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Document, error)
	ListAccessibleFunc func(ctx context.Context, viewer domain.Role) ([]*domain.Document, error)
	DeleteFunc         func(ctx context.Context, id uint) error
}

// NewMockDocumentRepository creates a new MockDocumentRepository with default behaviors
func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{}
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	return nil
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uint) (*domain.Document, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrDocumentNotFound
}

func (m *MockDocumentRepository) ListAccessible(ctx context.Context, viewer domain.Role) ([]*domain.Document, error) {
	if m.ListAccessibleFunc != nil {
		return m.ListAccessibleFunc(ctx, viewer)
	}
	return nil, nil
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var _ domain.DocumentRepository = (*MockDocumentRepository)(nil)
