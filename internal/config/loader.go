package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies GRADEHAWK_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known GRADEHAWK_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Cards ──
	setStr(&cfg.Cards.BaseURL, "GRADEHAWK_CARDS_BASE_URL")
	setStr(&cfg.Cards.APIKey, "GRADEHAWK_CARDS_API_KEY")
	setDuration(&cfg.Cards.Timeout, "GRADEHAWK_CARDS_TIMEOUT")

	// ── eBay ──
	setStr(&cfg.Ebay.BaseURL, "GRADEHAWK_EBAY_BASE_URL")
	setStr(&cfg.Ebay.AppID, "GRADEHAWK_EBAY_APP_ID")
	setStr(&cfg.Ebay.CertID, "GRADEHAWK_EBAY_CERT_ID")
	setStr(&cfg.Ebay.OAuthToken, "GRADEHAWK_EBAY_OAUTH_TOKEN")
	setStr(&cfg.Ebay.Marketplace, "GRADEHAWK_EBAY_MARKETPLACE")
	setInt(&cfg.Ebay.PageSize, "GRADEHAWK_EBAY_PAGE_SIZE")
	setDuration(&cfg.Ebay.Timeout, "GRADEHAWK_EBAY_TIMEOUT")

	// ── Scrape ──
	setDuration(&cfg.Scrape.SourceTimeout, "GRADEHAWK_SCRAPE_SOURCE_TIMEOUT")
	setStr(&cfg.Scrape.TargetGrade, "GRADEHAWK_SCRAPE_TARGET_GRADE")
	setBool(&cfg.Scrape.Headless, "GRADEHAWK_SCRAPE_HEADLESS")
	setStr(&cfg.Scrape.ChromePath, "GRADEHAWK_SCRAPE_CHROME_PATH")
	setStringSlice(&cfg.Scrape.Sources, "GRADEHAWK_SCRAPE_SOURCES")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "GRADEHAWK_POSTGRES_DSN")
	setStr(&cfg.Postgres.DSN, "DATABASE_URL") // compatibility alias
	setStr(&cfg.Postgres.Host, "GRADEHAWK_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "GRADEHAWK_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "GRADEHAWK_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "GRADEHAWK_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "GRADEHAWK_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "GRADEHAWK_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "GRADEHAWK_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "GRADEHAWK_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "GRADEHAWK_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "GRADEHAWK_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "GRADEHAWK_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "GRADEHAWK_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "GRADEHAWK_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "GRADEHAWK_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "GRADEHAWK_REDIS_TLS_ENABLED")

	// ── S3 ──
	setStr(&cfg.S3.Endpoint, "GRADEHAWK_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "GRADEHAWK_S3_REGION")
	setStr(&cfg.S3.Bucket, "GRADEHAWK_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "GRADEHAWK_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "GRADEHAWK_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "GRADEHAWK_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "GRADEHAWK_S3_FORCE_PATH_STYLE")

	// ── Pipeline ──
	setBool(&cfg.Pipeline.Enabled, "GRADEHAWK_PIPELINE_ENABLED")
	setDuration(&cfg.Pipeline.SnapshotTTL, "GRADEHAWK_PIPELINE_SNAPSHOT_TTL")
	setDuration(&cfg.Pipeline.CleanupInterval, "GRADEHAWK_PIPELINE_CLEANUP_INTERVAL")
	setBool(&cfg.Pipeline.ArchiveEnabled, "GRADEHAWK_PIPELINE_ARCHIVE_ENABLED")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "GRADEHAWK_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "GRADEHAWK_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "GRADEHAWK_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "GRADEHAWK_SERVER_API_KEY")
	setInt(&cfg.Server.RateLimit, "GRADEHAWK_SERVER_RATE_LIMIT")
	setDuration(&cfg.Server.RateLimitWindow, "GRADEHAWK_SERVER_RATE_LIMIT_WINDOW")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "GRADEHAWK_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "GRADEHAWK_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "GRADEHAWK_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "GRADEHAWK_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "GRADEHAWK_MODE")
	setStr(&cfg.LogLevel, "GRADEHAWK_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
