package config

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gorm.io/gorm"
)

type AppConfig struct {
	Env            string   `env:"APP_ENV, default=development"`
	Port           string   `env:"PORT, default=8088"`
	FrontendURL    string   `env:"FRONTEND_URL"` // empty: fall back to the request Origin
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
	AdminUsername  string   `env:"ADMIN_USERNAME"`
	AdminEmail     string   `env:"ADMIN_EMAIL"`
	AdminPassword  string   `env:"ADMIN_PASSWORD"`
}

type DBConfig struct {
	DSN          string `env:"DB_DSN"` // takes precedence over the discrete fields
	Host         string `env:"DB_HOST, default=localhost"`
	Port         string `env:"DB_PORT, default=5432"`
	User         string `env:"DB_USER, default=postgres"`
	Password     string `env:"DB_PASSWORD, default=password"`
	Name         string `env:"DB_NAME, default=squadup"`
	SSLMode      string `env:"DB_SSLMODE, default=disable"`
	TimeZone     string `env:"DB_TIMEZONE, default=UTC"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS, default=5"`
}

type JWTConfig struct {
	AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET, default=your-very-strong-access-secret"`
	AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES, default=120"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Format string `env:"LOG_FORMAT, default=json"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME, default=squadup"`
}

type NATSConfig struct {
	URL string `env:"NATS_URL"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=no-reply@squadup.local"`
}

type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	NATS      NATSConfig
	SMTP      SMTPConfig
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Global DB instance, set by Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig reads .env (if any) and the process environment into a Config.
func LoadConfig(ctx context.Context) (*Config, error) {
	// A missing .env is fine, production sets real env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables.")
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.JWT.AccessTokenSecret == "your-very-strong-access-secret" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET must be set in production")
	}
	if cfg.JWT.AccessTokenExpiryMinutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %d", cfg.JWT.AccessTokenExpiryMinutes)
	}
	return cfg, nil
}

// Initialize loads the configuration and connects to the database once.
func Initialize(ctx context.Context) error {
	var initErr error
	once.Do(func() {
		cfg, err := LoadConfig(ctx)
		if err != nil {
			initErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = cfg

		if _, err := ConnectDB(ctx, cfg); err != nil {
			initErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
		}
	})
	return initErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}
