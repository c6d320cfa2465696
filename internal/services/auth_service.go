package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/clubsvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	otpSvc      domain.OTPService
	sessionSvc  domain.SessionService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	otpSvc domain.OTPService,
	sessionSvc domain.SessionService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		otpSvc:      otpSvc,
		sessionSvc:  sessionSvc,
	}
}

// Register implements domain.AuthService. The conflict error names the
// field that collided so the form can point at it.
func (s *AuthServiceImpl) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrEmailTaken
	}
	if _, err := s.userRepo.FindByPhone(ctx, reg.Phone); err == nil {
		return nil, domain.ErrPhoneTaken
	}

	hashedPassword, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName:        reg.FirstName,
		LastName:         reg.LastName,
		Email:            reg.Email,
		Phone:            reg.Phone,
		PasswordHash:     hashedPassword,
		Role:             domain.RoleMember,
		MembershipStatus: domain.MembershipPending,
		MembershipTier:   reg.Tier,
		TwoFactorEnabled: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A registration that raced past the pre-checks still reports
		// which field collided.
		if err == domain.ErrEmailTaken || err == domain.ErrPhoneTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Kick off phone verification. A failed send must not fail the
	// registration; the member can request a new code from the login page.
	if err := s.otpSvc.Issue(ctx, user.ID, user.Phone); err != nil {
		log.Printf("REGISTER_OTP_FAILED: user_id=%d error=%v timestamp=%s",
			user.ID, err, time.Now().UTC().Format(time.RFC3339))
	}

	return user, nil
}

// Login implements domain.AuthService. With two-factor enabled the
// session is withheld until the OTP step; the returned token is empty.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	if user.Suspended() {
		return nil, "", domain.ErrUserSuspended
	}

	if user.TwoFactorEnabled {
		if err := s.otpSvc.Issue(ctx, user.ID, user.Phone); err != nil {
			return nil, "", err
		}
		return user, "", nil
	}

	token, err := s.sessionSvc.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	log.Printf("USER_LOGIN: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))

	return user, token, nil
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, userID uint, code string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", domain.ErrUserNotFound
	}

	valid, err := s.otpSvc.Verify(ctx, userID, code)
	if err != nil {
		return nil, "", err
	}
	if !valid {
		return nil, "", domain.ErrOTPInvalid
	}

	if !user.Verified {
		if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
			return nil, "", fmt.Errorf("failed to mark user verified: %w", err)
		}
		user.Verified = true
	}

	token, err := s.sessionSvc.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	log.Printf("USER_LOGIN: user_id=%d email=%s otp=true timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))

	return user, token, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return s.sessionSvc.Destroy(ctx, token)
}
