package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Webhook  WebhookConfig
	S3       S3Config
	DocGen   DocGenConfig
	Platform PlatformConfig
	HSN      HSNConfig
	Tax      TaxConfig
	Email    EmailConfig
	Backfill BackfillConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// Recycle pooled connections so a failover or pgbouncer restart is
	// picked up without a process restart.
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds the classification cache connection settings.
// An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds settings for verifying report access tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// WebhookConfig holds inbound webhook settings.
type WebhookConfig struct {
	Secret       string `mapstructure:"secret"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// DocGenConfig holds settings for the invoice rendering service.
type DocGenConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PlatformConfig holds settings for the commerce platform Admin API.
type PlatformConfig struct {
	APIVersion string        `mapstructure:"api_version"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// HSNConfig holds classification lookup settings.
type HSNConfig struct {
	MetafieldNamespace string        `mapstructure:"metafield_namespace"`
	MetafieldKey       string        `mapstructure:"metafield_key"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	LiveFetch          bool          `mapstructure:"live_fetch"`
}

// TaxConfig holds rate selection settings for the invoice transform.
// UsePayloadRate takes the rate from the order's tax lines when present;
// disabling it applies the 5%/18% bracket to every line.
type TaxConfig struct {
	UsePayloadRate bool `mapstructure:"use_payload_rate"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// BackfillConfig holds document backfill worker settings.
type BackfillConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	PollIntervalSecs int  `mapstructure:"poll_interval_secs"`
	BatchSize        int  `mapstructure:"batch_size"`
	Concurrency      int  `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the GSTSYNC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstsync")
	v.SetDefault("db.password", "gstsync_secret")
	v.SetDefault("db.name", "gstsync_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")

	// Redis defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "gstsync")

	// Webhook defaults
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.max_body_bytes", 2<<20)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "gstsync-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 604800)

	// Document generation defaults
	v.SetDefault("docgen.url", "")
	v.SetDefault("docgen.api_key", "")
	v.SetDefault("docgen.timeout", "30s")

	// Platform defaults
	v.SetDefault("platform.api_version", "2024-07")
	v.SetDefault("platform.base_url", "")
	v.SetDefault("platform.timeout", "10s")

	// HSN defaults
	v.SetDefault("hsn.metafield_namespace", "custom")
	v.SetDefault("hsn.metafield_key", "hsn_code")
	v.SetDefault("hsn.cache_ttl", "168h")
	v.SetDefault("hsn.live_fetch", true)

	// Tax defaults
	v.SetDefault("tax.use_payload_rate", true)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "invoices@gstsync.in")
	v.SetDefault("email.from_name", "GST Sync")

	// Backfill defaults
	v.SetDefault("backfill.enabled", false)
	v.SetDefault("backfill.poll_interval_secs", 60)
	v.SetDefault("backfill.batch_size", 20)
	v.SetDefault("backfill.concurrency", 2)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "GSTSYNC_SERVER_PORT",
		"server.read_timeout":         "GSTSYNC_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "GSTSYNC_SERVER_WRITE_TIMEOUT",
		"server.environment":          "GSTSYNC_SERVER_ENVIRONMENT",
		"db.host":                     "GSTSYNC_DB_HOST",
		"db.port":                     "GSTSYNC_DB_PORT",
		"db.user":                     "GSTSYNC_DB_USER",
		"db.password":                 "GSTSYNC_DB_PASSWORD",
		"db.name":                     "GSTSYNC_DB_NAME",
		"db.sslmode":                  "GSTSYNC_DB_SSLMODE",
		"db.max_open":                 "GSTSYNC_DB_MAX_OPEN",
		"db.max_idle":                 "GSTSYNC_DB_MAX_IDLE",
		"db.conn_max_lifetime":        "GSTSYNC_DB_CONN_MAX_LIFETIME",
		"db.conn_max_idle_time":       "GSTSYNC_DB_CONN_MAX_IDLE_TIME",
		"redis.addr":                  "GSTSYNC_REDIS_ADDR",
		"redis.password":              "GSTSYNC_REDIS_PASSWORD",
		"redis.db":                    "GSTSYNC_REDIS_DB",
		"jwt.secret":                  "GSTSYNC_JWT_SECRET",
		"jwt.issuer":                  "GSTSYNC_JWT_ISSUER",
		"webhook.secret":              "GSTSYNC_WEBHOOK_SECRET",
		"webhook.max_body_bytes":      "GSTSYNC_WEBHOOK_MAX_BODY_BYTES",
		"s3.region":                   "GSTSYNC_S3_REGION",
		"s3.bucket":                   "GSTSYNC_S3_BUCKET",
		"s3.endpoint":                 "GSTSYNC_S3_ENDPOINT",
		"s3.access_key":               "GSTSYNC_S3_ACCESS_KEY",
		"s3.secret_key":               "GSTSYNC_S3_SECRET_KEY",
		"s3.presign_expiry":           "GSTSYNC_S3_PRESIGN_EXPIRY",
		"docgen.url":                  "GSTSYNC_DOCGEN_URL",
		"docgen.api_key":              "GSTSYNC_DOCGEN_API_KEY",
		"docgen.timeout":              "GSTSYNC_DOCGEN_TIMEOUT",
		"platform.api_version":        "GSTSYNC_PLATFORM_API_VERSION",
		"platform.base_url":           "GSTSYNC_PLATFORM_BASE_URL",
		"platform.timeout":            "GSTSYNC_PLATFORM_TIMEOUT",
		"hsn.metafield_namespace":     "GSTSYNC_HSN_METAFIELD_NAMESPACE",
		"hsn.metafield_key":           "GSTSYNC_HSN_METAFIELD_KEY",
		"hsn.cache_ttl":               "GSTSYNC_HSN_CACHE_TTL",
		"hsn.live_fetch":              "GSTSYNC_HSN_LIVE_FETCH",
		"tax.use_payload_rate":        "GSTSYNC_TAX_USE_PAYLOAD_RATE",
		"email.provider":              "GSTSYNC_EMAIL_PROVIDER",
		"email.region":                "GSTSYNC_EMAIL_REGION",
		"email.from_address":          "GSTSYNC_EMAIL_FROM_ADDRESS",
		"email.from_name":             "GSTSYNC_EMAIL_FROM_NAME",
		"backfill.enabled":            "GSTSYNC_BACKFILL_ENABLED",
		"backfill.poll_interval_secs": "GSTSYNC_BACKFILL_POLL_INTERVAL_SECS",
		"backfill.batch_size":         "GSTSYNC_BACKFILL_BATCH_SIZE",
		"backfill.concurrency":        "GSTSYNC_BACKFILL_CONCURRENCY",
		"cors.allowed_origins":        "GSTSYNC_CORS_ALLOWED_ORIGINS",
		"log.level":                   "GSTSYNC_LOG_LEVEL",
		"log.format":                  "GSTSYNC_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTSYNC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTSYNC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		ConnMaxIdleTime: v.GetDuration("db.conn_max_idle_time"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Webhook = WebhookConfig{
		Secret:       v.GetString("webhook.secret"),
		MaxBodyBytes: v.GetInt64("webhook.max_body_bytes"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.DocGen = DocGenConfig{
		URL:     v.GetString("docgen.url"),
		APIKey:  v.GetString("docgen.api_key"),
		Timeout: v.GetDuration("docgen.timeout"),
	}
	cfg.Platform = PlatformConfig{
		APIVersion: v.GetString("platform.api_version"),
		BaseURL:    v.GetString("platform.base_url"),
		Timeout:    v.GetDuration("platform.timeout"),
	}
	cfg.HSN = HSNConfig{
		MetafieldNamespace: v.GetString("hsn.metafield_namespace"),
		MetafieldKey:       v.GetString("hsn.metafield_key"),
		CacheTTL:           v.GetDuration("hsn.cache_ttl"),
		LiveFetch:          v.GetBool("hsn.live_fetch"),
	}
	cfg.Tax = TaxConfig{
		UsePayloadRate: v.GetBool("tax.use_payload_rate"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Backfill = BackfillConfig{
		Enabled:          v.GetBool("backfill.enabled"),
		PollIntervalSecs: v.GetInt("backfill.poll_interval_secs"),
		BatchSize:        v.GetInt("backfill.batch_size"),
		Concurrency:      v.GetInt("backfill.concurrency"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	if cfg.Server.Environment == "production" && cfg.Webhook.Secret == "" {
		return nil, fmt.Errorf("config: GSTSYNC_WEBHOOK_SECRET is required in production")
	}

	return cfg, nil
}
