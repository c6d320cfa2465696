package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/infrastructure/auth"
	"github.com/you/clubsvc/internal/mocks"
)

// memorySessionStore backs the mock repository with a real map so that
// deletes are observable through subsequent lookups.
func memorySessionStore(repo *mocks.MockSessionRepository) map[string]*domain.Session {
	store := make(map[string]*domain.Session)
	repo.CreateFunc = func(ctx context.Context, s *domain.Session) error {
		store[s.Token] = s
		return nil
	}
	repo.FindByTokenFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		s, ok := store[token]
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		return s, nil
	}
	repo.DeleteFunc = func(ctx context.Context, token string) error {
		delete(store, token)
		return nil
	}
	return store
}

func newSessionTestEnv(t *testing.T, user *domain.User) (domain.SessionService, *mocks.MockSessionRepository, map[string]*domain.Session) {
	t.Helper()

	sessionRepo := mocks.NewMockSessionRepository()
	store := memorySessionStore(sessionRepo)

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		if user != nil && id == user.ID {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}

	tokenSvc := auth.NewJWTService("test-secret-key", "clubsvc-test", time.Hour)
	svc := NewSessionService(sessionRepo, userRepo, tokenSvc, 7*24*time.Hour)
	return svc, sessionRepo, store
}

func memberUser() *domain.User {
	return &domain.User{
		ID:               42,
		Email:            "member@club.test",
		Role:             domain.RoleMember,
		MembershipStatus: domain.MembershipActive,
	}
}

func TestSessionCreateAndVerify(t *testing.T) {
	user := memberUser()
	svc, _, _ := newSessionTestEnv(t, user)
	ctx := context.Background()

	token, err := svc.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestDestroyedSessionRejectedDespiteValidSignature(t *testing.T) {
	user := memberUser()
	svc, _, _ := newSessionTestEnv(t, user)
	ctx := context.Background()

	token, err := svc.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(ctx, token))

	// The JWT still carries a valid signature; revocation lives in
	// the row, and the row is gone.
	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestExpiredSessionRowRejected(t *testing.T) {
	user := memberUser()
	svc, _, store := newSessionTestEnv(t, user)
	ctx := context.Background()

	token, err := svc.Create(ctx, user)
	require.NoError(t, err)

	store[token].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSuspendedUserSessionRejected(t *testing.T) {
	user := memberUser()
	svc, _, _ := newSessionTestEnv(t, user)
	ctx := context.Background()

	token, err := svc.Create(ctx, user)
	require.NoError(t, err)

	user.MembershipStatus = domain.MembershipSuspended

	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, domain.ErrUserSuspended)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc, _, _ := newSessionTestEnv(t, memberUser())

	_, err := svc.Verify(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenSignedWithDifferentKeyRejected(t *testing.T) {
	user := memberUser()
	svc, _, store := newSessionTestEnv(t, user)
	ctx := context.Background()

	// Forge a token with a different key and plant a matching row, so
	// only the signature check can catch it.
	forger := auth.NewJWTService("attacker-key", "clubsvc-test", time.Hour)
	forged, err := forger.Generate(user.ID, domain.RoleAdmin, "forged-session")
	require.NoError(t, err)
	store[forged] = &domain.Session{
		Token:     forged,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	_, err = svc.Verify(ctx, forged)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}
