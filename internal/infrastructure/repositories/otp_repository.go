package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/clubsvc/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using GORM
type OtpRepositoryImpl struct {
	db *gorm.DB
}

// DBOtpCode represents the database model for OtpCode
type DBOtpCode struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Phone     string `gorm:"size:32"`
	Code      string `gorm:"size:8"`
	ExpiresAt time.Time
	Used      bool `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOtpCode) TableName() string {
	return "otp_codes"
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) domain.OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

// Create implements domain.OtpRepository
func (r *OtpRepositoryImpl) Create(ctx context.Context, code *domain.OtpCode) error {
	dbCode := &DBOtpCode{
		UserID:    code.UserID,
		Phone:     code.Phone,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
		Used:      code.Used,
	}
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.ID = dbCode.ID
	code.CreatedAt = dbCode.CreatedAt
	return nil
}

// FindActive implements domain.OtpRepository. Expired and wrong codes
// both come back as not found; callers never learn which.
func (r *OtpRepositoryImpl) FindActive(ctx context.Context, userID uint, code string, now time.Time) (*domain.OtpCode, error) {
	var dbCode DBOtpCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND used = ? AND expires_at > ?", userID, code, false, now).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOTPInvalid
		}
		return nil, err
	}

	return &domain.OtpCode{
		ID:        dbCode.ID,
		UserID:    dbCode.UserID,
		Phone:     dbCode.Phone,
		Code:      dbCode.Code,
		ExpiresAt: dbCode.ExpiresAt,
		Used:      dbCode.Used,
		CreatedAt: dbCode.CreatedAt,
	}, nil
}

// MarkUsed implements domain.OtpRepository
func (r *OtpRepositoryImpl) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBOtpCode{}).Where("id = ?", id).Update("used", true).Error
}

// InvalidateAll implements domain.OtpRepository
func (r *OtpRepositoryImpl) InvalidateAll(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBOtpCode{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}
