package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/clubsvc/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in the
// database (single-active-code per user, checked lazily); Redis carries
// only the volatile abuse counters: a resend throttle per phone and a
// verification attempt counter per user.
type OTPServiceImpl struct {
	otpRepo         domain.OtpRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
	ClubName     string
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OtpRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

// Issue implements domain.OTPService. A new code retires every earlier
// unused code for the user. The code is persisted before the SMS is
// dispatched and stays valid if delivery fails: the remedy for a lost
// text is resend, not a transactional rollback.
func (s *OTPServiceImpl) Issue(ctx context.Context, userID uint, phone string) error {
	resendKey := fmt.Sprintf("otp:res:%s", phone)

	ok, err := s.redisClient.SetNX(ctx, resendKey, 1, s.config.ResendWindow).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if !ok {
		return domain.ErrOTPResendLimit
	}

	if err := s.otpRepo.InvalidateAll(ctx, userID); err != nil {
		s.redisClient.Del(ctx, resendKey)
		return fmt.Errorf("failed to invalidate previous codes: %w", err)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		s.redisClient.Del(ctx, resendKey)
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	otp := &domain.OtpCode{
		UserID:    userID,
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		// No code was issued; holding the throttle would lock the member
		// out of resend for the whole window.
		s.redisClient.Del(ctx, resendKey)
		return fmt.Errorf("failed to persist OTP code: %w", err)
	}

	// Reset the attempt counter for the fresh code.
	attemptsKey := fmt.Sprintf("otp:att:%d", userID)
	if err := s.redisClient.Set(ctx, attemptsKey, 0, s.config.TTL).Err(); err != nil {
		s.redisClient.Del(ctx, resendKey)
		return fmt.Errorf("failed to reset attempts counter: %w", err)
	}

	message := fmt.Sprintf("Your %s login code is: %s. Valid for %d minutes. Do not share this code.",
		s.config.ClubName, code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		// The persisted code stays valid; just release the throttle so
		// the caller can retry by resending straight away.
		s.redisClient.Del(ctx, resendKey)
		return domain.ErrSMSDelivery
	}

	return nil
}

// Verify implements domain.OTPService. Wrong, expired and superseded
// codes all fail the same way; a match is consumed on first use.
func (s *OTPServiceImpl) Verify(ctx context.Context, userID uint, code string) (bool, error) {
	attemptsKey := fmt.Sprintf("otp:att:%d", userID)

	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		// Counter created by this Incr; bound its lifetime.
		s.redisClient.Expire(ctx, attemptsKey, s.config.TTL)
	}

	if attempts > int64(s.config.MaxAttempts) {
		if err := s.otpRepo.InvalidateAll(ctx, userID); err != nil {
			return false, fmt.Errorf("failed to invalidate codes: %w", err)
		}
		return false, domain.ErrOTPMaxAttempts
	}

	otp, err := s.otpRepo.FindActive(ctx, userID, code, time.Now())
	if err != nil {
		if err == domain.ErrOTPInvalid {
			return false, nil
		}
		return false, err
	}

	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		return false, fmt.Errorf("failed to mark OTP used: %w", err)
	}
	s.redisClient.Del(ctx, attemptsKey)

	return true, nil
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
