package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you/clubsvc/domain"
)

// SessionServiceImpl implements domain.SessionService. A session is
// valid only while both checks pass: the token's signature verifies and
// the server-side row still exists. Logout deletes the row; it cannot
// retract the signature, which is why the second check is mandatory.
type SessionServiceImpl struct {
	sessionRepo domain.SessionRepository
	userRepo    domain.UserRepository
	tokenSvc    domain.TokenService
	ttl         time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo domain.SessionRepository, userRepo domain.UserRepository, tokenSvc domain.TokenService, ttl time.Duration) domain.SessionService {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		tokenSvc:    tokenSvc,
		ttl:         ttl,
	}
}

// Create implements domain.SessionService
func (s *SessionServiceImpl) Create(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.tokenSvc.Generate(user.ID, user.Role, uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// Verify implements domain.SessionService
func (s *SessionServiceImpl) Verify(ctx context.Context, token string) (*domain.User, error) {
	// Step 1: cryptographic check.
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	// Step 2: liveness check against the revocable row.
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, domain.ErrSessionExpired
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Suspended() {
		return nil, domain.ErrUserSuspended
	}

	return user, nil
}

// Destroy implements domain.SessionService
func (s *SessionServiceImpl) Destroy(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}
