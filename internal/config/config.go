// Package config defines the top-level configuration for the gradehawk
// service and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by GRADEHAWK_* environment
// variables.
type Config struct {
	Cards    CardsConfig    `toml:"cards"`
	Ebay     EbayConfig     `toml:"ebay"`
	Scrape   ScrapeConfig   `toml:"scrape"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	S3       S3Config       `toml:"s3"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Server   ServerConfig   `toml:"server"`
	Notify   NotifyConfig   `toml:"notify"`
	Mode     string         `toml:"mode"`
	LogLevel string         `toml:"log_level"`
}

// CardsConfig holds the card database (Pokémon TCG API) parameters.
type CardsConfig struct {
	BaseURL string   `toml:"base_url"`
	APIKey  string   `toml:"api_key"`
	Timeout duration `toml:"timeout"`
}

// EbayConfig holds eBay Browse API credentials and search parameters.
type EbayConfig struct {
	BaseURL     string   `toml:"base_url"`
	AppID       string   `toml:"app_id"`
	CertID      string   `toml:"cert_id"`
	OAuthToken  string   `toml:"oauth_token"`
	Marketplace string   `toml:"marketplace"`
	PageSize    int      `toml:"page_size"`
	Timeout     duration `toml:"timeout"`
}

// ScrapeConfig holds parameters shared by the browser-based reference-price
// scrapers (StockX, TCGplayer, PWCC).
type ScrapeConfig struct {
	// SourceTimeout is the per-source latency ceiling enforced by the
	// aggregation orchestrator, not by the adapters themselves.
	SourceTimeout duration `toml:"source_timeout"`
	// TargetGrade is the grade the StockX adapter is pointed at, e.g. "PSA 10".
	TargetGrade string `toml:"target_grade"`
	Headless    bool   `toml:"headless"`
	ChromePath  string `toml:"chrome_path"`
	// Sources restricts which scrapers run; empty means all.
	Sources []string `toml:"sources"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds S3-compatible object storage parameters.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// PipelineConfig holds snapshot retention and cleanup parameters.
type PipelineConfig struct {
	Enabled         bool     `toml:"enabled"`
	SnapshotTTL     duration `toml:"snapshot_ttl"`
	CleanupInterval duration `toml:"cleanup_interval"`
	ArchiveEnabled  bool     `toml:"archive_enabled"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled         bool     `toml:"enabled"`
	Port            int      `toml:"port"`
	CORSOrigins     []string `toml:"cors_origins"`
	APIKey          string   `toml:"api_key"`
	RateLimit       int      `toml:"rate_limit"`
	RateLimitWindow duration `toml:"rate_limit_window"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Cards: CardsConfig{
			BaseURL: "https://api.pokemontcg.io/v2",
			Timeout: duration{15 * time.Second},
		},
		Ebay: EbayConfig{
			BaseURL:     "https://api.ebay.com/buy/browse/v1",
			Marketplace: "EBAY_US",
			PageSize:    50,
			Timeout:     duration{15 * time.Second},
		},
		Scrape: ScrapeConfig{
			SourceTimeout: duration{30 * time.Second},
			TargetGrade:   "PSA 10",
			Headless:      true,
		},
		Postgres: PostgresConfig{
			Host:          "localhost",
			Port:          5432,
			Database:      "gradehawk",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		S3: S3Config{
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "gradehawk-archive",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Pipeline: PipelineConfig{
			Enabled:         true,
			SnapshotTTL:     duration{48 * time.Hour},
			CleanupInterval: duration{time.Hour},
			ArchiveEnabled:  true,
		},
		Server: ServerConfig{
			Enabled:         true,
			Port:            8000,
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:       30,
			RateLimitWindow: duration{time.Minute},
		},
		Notify: NotifyConfig{
			Events: []string{"arbitrage_found", "error"},
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"server":   true,
	"pipeline": true,
	"full":     true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: server, pipeline, full)", c.Mode))
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Cards.BaseURL == "" {
		errs = append(errs, "cards: base_url must not be empty")
	}

	if c.Ebay.BaseURL == "" {
		errs = append(errs, "ebay: base_url must not be empty")
	}
	if c.Ebay.PageSize < 1 || c.Ebay.PageSize > 200 {
		errs = append(errs, fmt.Sprintf("ebay: page_size must be 1-200, got %d", c.Ebay.PageSize))
	}

	if c.Scrape.SourceTimeout.Duration <= 0 {
		errs = append(errs, "scrape: source_timeout must be positive")
	}

	if strings.TrimSpace(c.Postgres.DSN) == "" {
		if c.Postgres.Host == "" {
			errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
		}
		if c.Postgres.Database == "" {
			errs = append(errs, "postgres: database must not be empty")
		}
	}
	if c.Postgres.PoolMaxConns < 1 {
		errs = append(errs, "postgres: pool_max_conns must be >= 1")
	}
	if c.Postgres.PoolMinConns < 0 {
		errs = append(errs, "postgres: pool_min_conns must be >= 0")
	}
	if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
		errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
	}

	if c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty")
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	if c.Pipeline.Enabled {
		if c.Pipeline.SnapshotTTL.Duration <= 0 {
			errs = append(errs, "pipeline: snapshot_ttl must be positive")
		}
		if c.Pipeline.CleanupInterval.Duration <= 0 {
			errs = append(errs, "pipeline: cleanup_interval must be positive")
		}
		if c.Pipeline.ArchiveEnabled {
			if c.S3.Endpoint == "" {
				errs = append(errs, "s3: endpoint must not be empty when archiving is enabled")
			}
			if c.S3.Bucket == "" {
				errs = append(errs, "s3: bucket must not be empty when archiving is enabled")
			}
		}
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server: rate_limit must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
