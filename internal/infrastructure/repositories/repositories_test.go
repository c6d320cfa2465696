package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/clubsvc/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DBUser{}, &DBSession{}, &DBOtpCode{}, &DBMembership{}, &DBDocument{}))
	return db
}

func seedUser(t *testing.T, repo domain.UserRepository, email, phone string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName:        "Jo",
		LastName:         "Bright",
		Email:            email,
		Phone:            phone,
		PasswordHash:     "x",
		Role:             domain.RoleMember,
		MembershipStatus: domain.MembershipPending,
		MembershipTier:   domain.TierSocial,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryUniqueEmailAndPhone(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	seedUser(t, repo, "jo@club.test", "+447911000001")

	// Conflicts surface as the sentinel for the colliding field, so a
	// registration that slips past the handler pre-checks still gets a
	// conflict response naming the field.
	dup := &domain.User{Email: "jo@club.test", Phone: "+447911000002", Role: domain.RoleMember}
	require.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailTaken)

	dup = &domain.User{Email: "other@club.test", Phone: "+447911000001", Role: domain.RoleMember}
	require.ErrorIs(t, repo.Create(ctx, dup), domain.ErrPhoneTaken)
}

func TestUserRepositoryFindRoundTrip(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	created := seedUser(t, repo, "jo@club.test", "+447911000001")

	byEmail, err := repo.FindByEmail(ctx, "jo@club.test")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)
	require.Equal(t, domain.RoleMember, byEmail.Role)

	byPhone, err := repo.FindByPhone(ctx, "+447911000001")
	require.NoError(t, err)
	require.Equal(t, created.ID, byPhone.ID)

	_, err = repo.FindByEmail(ctx, "nobody@club.test")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryActivateMembership(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "jo@club.test", "+447911000001")
	expiry := domain.SeasonExpiry(2024)

	require.NoError(t, repo.ActivateMembership(ctx, user.ID, domain.TierSeniorPlaying, expiry))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MembershipActive, got.MembershipStatus)
	require.Equal(t, domain.TierSeniorPlaying, got.MembershipTier)
	require.NotNil(t, got.MembershipExpiry)
	require.True(t, got.MembershipExpiry.Equal(expiry))
}

func TestSessionRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewSessionRepository(testDB(t))
	ctx := context.Background()

	session := &domain.Session{Token: "tok_1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, session))

	require.NoError(t, repo.Delete(ctx, "tok_1"))
	require.NoError(t, repo.Delete(ctx, "tok_1"))

	_, err := repo.FindByToken(ctx, "tok_1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	repo := NewSessionRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Session{Token: "dead", UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Session{Token: "live", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, repo.DeleteExpired(ctx))

	_, err := repo.FindByToken(ctx, "dead")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = repo.FindByToken(ctx, "live")
	require.NoError(t, err)
}

func TestOtpRepositoryFindActive(t *testing.T) {
	repo := NewOtpRepository(testDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &domain.OtpCode{UserID: 1, Code: "111111", ExpiresAt: now.Add(10 * time.Minute)}))

	otp, err := repo.FindActive(ctx, 1, "111111", now)
	require.NoError(t, err)
	require.Equal(t, "111111", otp.Code)

	// Wrong code, wrong user, and stale lookups all miss.
	_, err = repo.FindActive(ctx, 1, "222222", now)
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
	_, err = repo.FindActive(ctx, 2, "111111", now)
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
	_, err = repo.FindActive(ctx, 1, "111111", now.Add(11*time.Minute))
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestOtpRepositoryMarkUsedAndInvalidateAll(t *testing.T) {
	repo := NewOtpRepository(testDB(t))
	ctx := context.Background()
	now := time.Now()

	first := &domain.OtpCode{UserID: 1, Code: "111111", ExpiresAt: now.Add(10 * time.Minute)}
	require.NoError(t, repo.Create(ctx, first))

	require.NoError(t, repo.MarkUsed(ctx, first.ID))
	_, err := repo.FindActive(ctx, 1, "111111", now)
	require.ErrorIs(t, err, domain.ErrOTPInvalid)

	second := &domain.OtpCode{UserID: 1, Code: "222222", ExpiresAt: now.Add(10 * time.Minute)}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.InvalidateAll(ctx, 1))
	_, err = repo.FindActive(ctx, 1, "222222", now)
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestMembershipRepositoryLookups(t *testing.T) {
	repo := NewMembershipRepository(testDB(t))
	ctx := context.Background()

	m := &domain.Membership{
		UserID:            1,
		Tier:              domain.TierSocial,
		Season:            2024,
		Amount:            2500,
		Currency:          "GBP",
		CheckoutSessionID: "cs_1",
		Status:            domain.PaymentPending,
	}
	require.NoError(t, repo.Create(ctx, m))
	require.NotZero(t, m.ID)

	got, err := repo.FindByCheckoutSession(ctx, "cs_1")
	require.NoError(t, err)
	require.Equal(t, m.ID, got.ID)

	_, err = repo.FindByCheckoutSession(ctx, "cs_missing")
	require.ErrorIs(t, err, domain.ErrMembershipNotFound)

	paidAt := time.Now()
	got.Status = domain.PaymentPaid
	got.PaymentID = "pi_1"
	got.PaidAt = &paidAt
	require.NoError(t, repo.Update(ctx, got))

	byPayment, err := repo.FindByPayment(ctx, "pi_1")
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, byPayment.Status)
	require.NotNil(t, byPayment.PaidAt)
}

func TestDocumentRepositoryListAccessible(t *testing.T) {
	repo := NewDocumentRepository(testDB(t))
	ctx := context.Background()

	docs := []*domain.Document{
		{Title: "Fixtures", StorageKey: "f/1", Access: domain.AccessAllMembers},
		{Title: "Selection Policy", StorageKey: "p/1", Access: domain.AccessPlayingMembers},
		{Title: "Minutes", StorageKey: "m/1", Access: domain.AccessCommittee},
		{Title: "Accounts", StorageKey: "a/1", Access: domain.AccessAdmin},
	}
	for _, d := range docs {
		require.NoError(t, repo.Create(ctx, d))
	}

	titles := func(role domain.Role) []string {
		list, err := repo.ListAccessible(ctx, role)
		require.NoError(t, err)
		var out []string
		for _, d := range list {
			out = append(out, d.Title)
		}
		return out
	}

	require.ElementsMatch(t, []string{"Fixtures"}, titles(domain.RoleMember))
	require.ElementsMatch(t, []string{"Fixtures", "Selection Policy"}, titles(domain.RolePlayer))
	require.ElementsMatch(t, []string{"Fixtures", "Selection Policy", "Minutes"}, titles(domain.RoleCommittee))
	require.ElementsMatch(t, []string{"Fixtures", "Selection Policy", "Minutes", "Accounts"}, titles(domain.RoleAdmin))
}
