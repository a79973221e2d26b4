package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_PREFIX", "JWT_SECRET", "TOKEN_TTL", "COOKIE_NAME", "COOKIE_SECURE", "BCRYPT_COST", "CORS_ORIGINS", "SKIP_MIGRATIONS"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "token", cfg.CookieName)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.PasswordCost)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.RunMigrations)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("DB_HOST", "db")
	t.Setenv("S3_BUCKET", "uploads")
	t.Setenv("SKIP_MIGRATIONS", "true")

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 12, cfg.PasswordCost)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "uploads", cfg.Media.Bucket)
	assert.False(t, cfg.RunMigrations)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "-5m")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("BCRYPT_COST", "ten")

	cfg := FromEnv()

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.PasswordCost)
}
