package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/clubsvc/domain"
)

// MembershipRepositoryImpl implements domain.MembershipRepository using GORM
type MembershipRepositoryImpl struct {
	db *gorm.DB
}

// DBMembership represents the database model for Membership
type DBMembership struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"index"`
	Tier              string `gorm:"size:32"`
	Season            int    `gorm:"index"`
	Amount            int64
	Currency          string `gorm:"size:8"`
	CheckoutSessionID string `gorm:"index;size:255"`
	PaymentID         string `gorm:"index;size:255"`
	Status            string `gorm:"index;size:16"`
	PaidAt            *time.Time
	CreatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBMembership) TableName() string {
	return "memberships"
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) domain.MembershipRepository {
	return &MembershipRepositoryImpl{db: db}
}

// Create implements domain.MembershipRepository
func (r *MembershipRepositoryImpl) Create(ctx context.Context, m *domain.Membership) error {
	dbm := membershipToDB(m)
	if err := r.db.WithContext(ctx).Create(dbm).Error; err != nil {
		return err
	}
	m.ID = dbm.ID
	m.CreatedAt = dbm.CreatedAt
	return nil
}

// FindByCheckoutSession implements domain.MembershipRepository
func (r *MembershipRepositoryImpl) FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*domain.Membership, error) {
	var dbm DBMembership
	err := r.db.WithContext(ctx).Where("checkout_session_id = ?", checkoutSessionID).First(&dbm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return membershipToDomain(&dbm), nil
}

// FindByPayment implements domain.MembershipRepository
func (r *MembershipRepositoryImpl) FindByPayment(ctx context.Context, paymentID string) (*domain.Membership, error) {
	var dbm DBMembership
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&dbm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return membershipToDomain(&dbm), nil
}

// Update implements domain.MembershipRepository
func (r *MembershipRepositoryImpl) Update(ctx context.Context, m *domain.Membership) error {
	return r.db.WithContext(ctx).Save(membershipToDB(m)).Error
}

func membershipToDB(m *domain.Membership) *DBMembership {
	return &DBMembership{
		ID:                m.ID,
		UserID:            m.UserID,
		Tier:              string(m.Tier),
		Season:            m.Season,
		Amount:            m.Amount,
		Currency:          m.Currency,
		CheckoutSessionID: m.CheckoutSessionID,
		PaymentID:         m.PaymentID,
		Status:            string(m.Status),
		PaidAt:            m.PaidAt,
	}
}

func membershipToDomain(dbm *DBMembership) *domain.Membership {
	return &domain.Membership{
		ID:                dbm.ID,
		UserID:            dbm.UserID,
		Tier:              domain.MembershipTier(dbm.Tier),
		Season:            dbm.Season,
		Amount:            dbm.Amount,
		Currency:          dbm.Currency,
		CheckoutSessionID: dbm.CheckoutSessionID,
		PaymentID:         dbm.PaymentID,
		Status:            domain.PaymentStatus(dbm.Status),
		PaidAt:            dbm.PaidAt,
		CreatedAt:         dbm.CreatedAt,
	}
}
