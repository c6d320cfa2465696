package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/config"
	"github.com/you/clubsvc/internal/infrastructure/auth"
	"github.com/you/clubsvc/internal/infrastructure/database"
	"github.com/you/clubsvc/internal/infrastructure/notifications"
	"github.com/you/clubsvc/internal/infrastructure/payments"
	"github.com/you/clubsvc/internal/infrastructure/repositories"
	"github.com/you/clubsvc/internal/infrastructure/storage"
	"github.com/you/clubsvc/internal/services"
)

// ClubName appears in SMS texts and checkout line items.
const ClubName = "WMCC"

// Container holds all dependencies, built once at process start so no
// component reaches for a global client.
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Registry    *prometheus.Registry

	UserRepo       domain.UserRepository
	SessionRepo    domain.SessionRepository
	OtpRepo        domain.OtpRepository
	MembershipRepo domain.MembershipRepository
	DocumentRepo   domain.DocumentRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Gateway         domain.PaymentGateway
	Storage         domain.ObjectStorage
	Ledger          domain.EventLedger

	OTPSvc        domain.OTPService
	SessionSvc    domain.SessionService
	AuthSvc       domain.AuthService
	MembershipSvc domain.MembershipService
	DocumentSvc   domain.DocumentService
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg, Registry: prometheus.NewRegistry()}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	c.Storage, err = storage.NewS3Service(ctx, storage.S3Options{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	if err != nil {
		return nil, err
	}

	c.UserRepo = repositories.NewUserRepository(db)
	c.SessionRepo = repositories.NewSessionRepository(db)
	// Expiry is checked on every read; clearing stale rows at boot keeps
	// the table from growing between deploys.
	if err := c.SessionRepo.DeleteExpired(ctx); err != nil {
		return nil, err
	}
	c.OtpRepo = repositories.NewOtpRepository(db)
	c.MembershipRepo = repositories.NewMembershipRepository(db)
	c.DocumentRepo = repositories.NewDocumentRepository(db)
	c.Ledger = repositories.NewEventLedger(c.RedisClient, 24*time.Hour)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)
	c.NotificationSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	c.Gateway = payments.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey)

	c.OTPSvc = services.NewOTPService(c.OtpRepo, c.NotificationSvc, c.RedisClient, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
		ClubName:     ClubName,
	})
	c.SessionSvc = services.NewSessionService(c.SessionRepo, c.UserRepo, c.TokenSvc, cfg.SessionTTL)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.OTPSvc, c.SessionSvc)
	c.MembershipSvc = services.NewMembershipService(c.MembershipRepo, c.UserRepo, c.Gateway, c.Ledger, cfg.BaseURL, ClubName)
	c.DocumentSvc = services.NewDocumentService(c.DocumentRepo, c.Storage)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
