package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "JWT_TTL", "KAFKA_BROKERS", "LOGIN_BURST", "GOOGLE_CLIENT_ID"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "fitness.db", cfg.DatabaseURL)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.GoogleEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.GoogleEnabled())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("LOGIN_BURST", "many")
	t.Setenv("JWT_TTL", "-5m")

	cfg := Load()

	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
}

func TestLoadWarnsOnDefaultJWTSecret(t *testing.T) {
	var buf bytes.Buffer
	prev := utils.Log
	utils.Log = utils.NewLogger(&buf)
	t.Cleanup(func() { utils.Log = prev })

	t.Setenv("JWT_SECRET", "")
	cfg := Load()
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "JWT_SECRET is not set")

	buf.Reset()
	t.Setenv("JWT_SECRET", "prod-secret")
	cfg = Load()
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.NotContains(t, buf.String(), "JWT_SECRET")
}
