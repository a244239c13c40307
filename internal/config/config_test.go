package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "bogus"
	cfg.LogLevel = "loud"
	cfg.Ebay.PageSize = 0
	cfg.Redis.Addr = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"mode", "log_level", "page_size", "redis"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestValidateDSNSkipsHostChecks(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.DSN = "postgres://u:p@db:5432/gradehawk"
	cfg.Postgres.Host = ""
	cfg.Postgres.Database = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DSN should bypass host/database checks: %v", err)
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Fatalf("got %v", d.Duration)
	}
	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestRedactedConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Cards.APIKey = "secret-key"
	cfg.Postgres.Password = "hunter2"
	cfg.Server.APIKey = "api-key"
	cfg.Notify.TelegramToken = "bot-token"

	red := RedactedConfig(&cfg)

	if red.Cards.APIKey != "***" || red.Postgres.Password != "***" ||
		red.Server.APIKey != "***" || red.Notify.TelegramToken != "***" {
		t.Fatalf("secrets not redacted: %+v", red)
	}
	if cfg.Cards.APIKey != "secret-key" {
		t.Fatal("original config mutated")
	}
	// Empty secrets stay empty rather than becoming misleading placeholders.
	if red.Ebay.OAuthToken != "" {
		t.Fatalf("empty secret should remain empty, got %q", red.Ebay.OAuthToken)
	}
}
