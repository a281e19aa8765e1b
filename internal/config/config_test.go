package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsync/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "custom", cfg.HSN.MetafieldNamespace)
	assert.Equal(t, "hsn_code", cfg.HSN.MetafieldKey)
	assert.Equal(t, 168*time.Hour, cfg.HSN.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.DocGen.Timeout)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, int64(2<<20), cfg.Webhook.MaxBodyBytes)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.True(t, cfg.Tax.UsePayloadRate)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxIdleTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GSTSYNC_DB_HOST", "db.internal")
	t.Setenv("GSTSYNC_DB_PORT", "6543")
	t.Setenv("GSTSYNC_REDIS_ADDR", "redis:6379")
	t.Setenv("GSTSYNC_DOCGEN_TIMEOUT", "5s")
	t.Setenv("GSTSYNC_BACKFILL_ENABLED", "true")
	t.Setenv("GSTSYNC_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GSTSYNC_TAX_USE_PAYLOAD_RATE", "false")
	t.Setenv("GSTSYNC_DB_CONN_MAX_LIFETIME", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.DocGen.Timeout)
	assert.True(t, cfg.Backfill.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Tax.UsePayloadRate)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GSTSYNC_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_ProductionRequiresWebhookSecret(t *testing.T) {
	t.Setenv("GSTSYNC_SERVER_ENVIRONMENT", "production")
	t.Setenv("GSTSYNC_WEBHOOK_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())
}
