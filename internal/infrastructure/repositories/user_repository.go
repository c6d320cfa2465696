package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/clubsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID               uint   `gorm:"primaryKey"`
	FirstName        string `gorm:"size:50"`
	LastName         string `gorm:"size:50"`
	Email            string `gorm:"uniqueIndex;size:255"`
	Phone            string `gorm:"uniqueIndex;size:32"`
	PasswordHash     string `gorm:"column:password"`
	Role             string `gorm:"index;size:32"`
	MembershipStatus string `gorm:"index;size:32"`
	MembershipTier   string `gorm:"size:32"`
	MembershipExpiry *time.Time
	TwoFactorEnabled bool
	Verified         bool
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. The unique indexes on email
// and phone are the source of truth for conflicts; a duplicate-key error
// is mapped to the sentinel for whichever field collided, so concurrent
// registrations surface the same way as the handler's pre-checks.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateField(ctx, user.Email)
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

func (r *UserRepositoryImpl) duplicateField(ctx context.Context, email string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		return domain.ErrEmailTaken
	}
	return domain.ErrPhoneTaken
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(userToDB(user)).Error
}

// MarkVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("verified", true).Error
}

// ActivateMembership implements domain.UserRepository
func (r *UserRepositoryImpl) ActivateMembership(ctx context.Context, userID uint, tier domain.MembershipTier, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"membership_status": string(domain.MembershipActive),
		"membership_tier":   string(tier),
		"membership_expiry": expiry,
	}).Error
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Email:            user.Email,
		Phone:            user.Phone,
		PasswordHash:     user.PasswordHash,
		Role:             string(user.Role),
		MembershipStatus: string(user.MembershipStatus),
		MembershipTier:   string(user.MembershipTier),
		MembershipExpiry: user.MembershipExpiry,
		TwoFactorEnabled: user.TwoFactorEnabled,
		Verified:         user.Verified,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:               dbUser.ID,
		FirstName:        dbUser.FirstName,
		LastName:         dbUser.LastName,
		Email:            dbUser.Email,
		Phone:            dbUser.Phone,
		PasswordHash:     dbUser.PasswordHash,
		Role:             domain.Role(dbUser.Role),
		MembershipStatus: domain.MembershipStatus(dbUser.MembershipStatus),
		MembershipTier:   domain.MembershipTier(dbUser.MembershipTier),
		MembershipExpiry: dbUser.MembershipExpiry,
		TwoFactorEnabled: dbUser.TwoFactorEnabled,
		Verified:         dbUser.Verified,
		CreatedAt:        dbUser.CreatedAt,
		UpdatedAt:        dbUser.UpdatedAt,
	}
}
