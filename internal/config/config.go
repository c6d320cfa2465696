package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
	Env     string `yaml:"env"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	TTL        string `yaml:"ttl"`
	CookieName string `yaml:"cookie_name"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

type S3Config struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Stripe   StripeConfig   `yaml:"stripe"`
	S3       S3Config       `yaml:"s3"`
}

type Config struct {
	Port              string
	GinMode           string
	BaseURL           string
	Production        bool
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SessionSecret     string
	SessionIssuer     string
	SessionTTL        time.Duration
	CookieName        string
	OTP_TTL           time.Duration
	OTP_Length        int
	OTP_MaxAttempts   int
	OTP_ResendWindow  time.Duration
	TwilioSID         string
	TwilioToken       string
	TwilioFrom        string
	StripeSecretKey   string
	StripeWebhookKey  string
	S3Region          string
	S3Bucket          string
	S3AccessKey       string
	S3SecretKey       string
	S3Endpoint        string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CLUBSVC_CONFIG", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	cookieName := configFile.Session.CookieName
	if cookieName == "" {
		cookieName = "club_session"
	}

	// Secrets always come from the environment when set; the yaml values
	// are development defaults.
	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		BaseURL:          env("BASE_URL", configFile.App.BaseURL),
		Production:       env("APP_ENV", configFile.App.Env) == "production",
		DSN:              env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		SessionSecret:    env("SESSION_SECRET", configFile.Session.Secret),
		SessionIssuer:    configFile.Session.Issuer,
		SessionTTL:       sessTTL,
		CookieName:       cookieName,
		OTP_TTL:          otpTTL,
		OTP_Length:       configFile.OTP.Length,
		OTP_MaxAttempts:  configFile.OTP.MaxAttempts,
		OTP_ResendWindow: resWnd,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_PHONE_NUMBER", configFile.Twilio.FromNumber),
		StripeSecretKey:  env("STRIPE_SECRET_KEY", configFile.Stripe.SecretKey),
		StripeWebhookKey: env("STRIPE_WEBHOOK_SECRET", configFile.Stripe.WebhookSecret),
		S3Region:         env("AWS_REGION", configFile.S3.Region),
		S3Bucket:         env("AWS_S3_BUCKET", configFile.S3.Bucket),
		S3AccessKey:      env("AWS_ACCESS_KEY_ID", configFile.S3.AccessKey),
		S3SecretKey:      env("AWS_SECRET_ACCESS_KEY", configFile.S3.SecretKey),
		S3Endpoint:       env("AWS_S3_ENDPOINT", configFile.S3.Endpoint),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
