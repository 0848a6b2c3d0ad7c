package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("API_RATE_LIMIT", "")
	t.Setenv("CONTENT_FILTER_ENABLED", "")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.False(t, cfg.UsesSQLite())
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 120, cfg.APIRateLimit)
	assert.False(t, cfg.ContentFilterEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("API_RATE_LIMIT", "0")
	t.Setenv("CONTENT_FILTER_ENABLED", "true")
	t.Setenv("DIRECTORY_CACHE_TTL", "not-a-duration")

	cfg := Load()
	assert.True(t, cfg.UsesSQLite())
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 0, cfg.APIRateLimit)
	assert.True(t, cfg.ContentFilterEnabled)
	assert.Equal(t, time.Minute, cfg.DirectoryCacheTTL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
