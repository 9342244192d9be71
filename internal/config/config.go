package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SectorLockingMode selects how rental creation guards the sector state flip.
type SectorLockingMode string

const (
	// LockingCheck reads the sector state and writes it in two statements,
	// reproducing the original check-then-act behavior.
	LockingCheck SectorLockingMode = "check"
	// LockingCAS flips the state with a conditional UPDATE so concurrent
	// creations against the same sector cannot both succeed.
	LockingCAS SectorLockingMode = "cas"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	CORS         CORSConfig
	Rental       RentalConfig
	API          APIConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// SectorCacheTTLSeconds bounds staleness of the available-sector listing.
	SectorCacheTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	// PlaintextCredentials keeps credentials verbatim as the original system
	// did. Off by default; bcrypt is used instead.
	PlaintextCredentials bool
	// ProtectAdminRoutes requires a bearer token on sector state updates and
	// user deletion. Off by default to preserve the original open contract.
	ProtectAdminRoutes bool
}

// CORSConfig mirrors the original cross-origin policy.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
	MaxAgeSeconds    int
}

// RentalConfig tunes the rental workflow.
type RentalConfig struct {
	SectorLocking SectorLockingMode
}

// APIConfig tunes error rendering at the HTTP boundary.
type APIConfig struct {
	// LegacyErrorMapping collapses user-endpoint failures to 500 the way the
	// original controllers did instead of surfacing domain statuses.
	LegacyErrorMapping bool
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	locking := SectorLockingMode(getEnv("RENTAL_SECTOR_LOCKING", string(LockingCAS)))
	if locking != LockingCheck && locking != LockingCAS {
		return nil, fmt.Errorf("invalid RENTAL_SECTOR_LOCKING: %q", locking)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "warehouse-rental-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:                  getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:              os.Getenv("REDIS_PASSWORD"),
			DB:                    redisDB,
			SectorCacheTTLSeconds: getEnvAsInt("REDIS_SECTOR_CACHE_TTL_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			PlaintextCredentials:  getEnvAsBool("AUTH_PLAINTEXT_CREDENTIALS", false),
			ProtectAdminRoutes:    getEnvAsBool("AUTH_PROTECT_ADMIN", false),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8080", "http://localhost:8081"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAgeSeconds:    getEnvAsInt("CORS_MAX_AGE_SECONDS", 3600),
		},
		Rental: RentalConfig{
			SectorLocking: locking,
		},
		API: APIConfig{
			LegacyErrorMapping: getEnvAsBool("API_LEGACY_ERROR_MAPPING", false),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SectorCacheTTL returns the TTL for cached sector listings.
func (r RedisConfig) SectorCacheTTL() time.Duration {
	if r.SectorCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.SectorCacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
