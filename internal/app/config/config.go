// Package config assembles the process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jobportal_backend/internal/platform/db"
	"jobportal_backend/internal/platform/media"
	"jobportal_backend/internal/platform/password"
	"jobportal_backend/internal/platform/redis"
)

// ErrMissingJWTSecret is returned by Validate when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config is built once at startup and handed to the constructors that need it.
type Config struct {
	Port         string
	APIPrefix    string
	JWTSecret    string
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool
	PasswordCost int
	CORSOrigins  []string

	// RunMigrations is false when SKIP_MIGRATIONS=true.
	RunMigrations bool

	DB    db.Config
	Redis redis.Config
	Media media.Config
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	return Config{
		Port:         envOr("PORT", "8080"),
		APIPrefix:    envOr("API_PREFIX", "/api/v1"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     envDuration("TOKEN_TTL", 24*time.Hour),
		CookieName:   envOr("COOKIE_NAME", "token"),
		CookieSecure: envBool("COOKIE_SECURE", true),
		PasswordCost: envInt("BCRYPT_COST", password.DefaultCost),
		CORSOrigins:  splitList(envOr("CORS_ORIGINS", "http://localhost:5173")),

		RunMigrations: !envBool("SKIP_MIGRATIONS", false),

		DB:    db.LoadConfigFromEnv(),
		Redis: redis.LoadConfig(),
		Media: media.LoadConfig(),
	}
}

// Validate reports settings the server cannot run without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
