package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadNormalizesRunModeAndExclusions(t *testing.T) {
	path := writeFile(t, `
telegram:
  token: abc
  run_mode: Polling
rate_limit:
  interval_ms: 500
  exclude_updates: [" Contact ", "COMMAND", ""]
metrics:
  listen: ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q", cfg.Telegram.RunMode)
	}
	got := cfg.RateLimit.ExcludeUpdates
	if got[0] != UpdateContact || got[1] != UpdateCommand {
		t.Fatalf("exclusions = %v", got)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Fatalf("metrics path = %q", cfg.Metrics.Path)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("TELEGRAM_ADMIN_ID", "99")

	cfg, err := Load(writeFile(t, "telegram:\n  token: from-yaml\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Fatalf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 99 {
		t.Fatalf("admin id = %d", cfg.Telegram.AdminID)
	}
}

func TestNormalizeErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"no token", Config{}},
		{"bad run mode", Config{Telegram: TelegramConfig{Token: "t", RunMode: "push"}}},
		{"webhook without url", Config{Telegram: TelegramConfig{Token: "t", RunMode: "webhook"}}},
		{"webhook without port", Config{
			Telegram: TelegramConfig{Token: "t", RunMode: "webhook"},
			Webhook:  WebhookConfig{URL: "https://x", Listen: "0.0.0.0"},
		}},
		{"negative timeout", Config{Telegram: TelegramConfig{Token: "t", LongPollTimeoutSeconds: -1}}},
		{"unknown exclusion", Config{
			Telegram:  TelegramConfig{Token: "t"},
			RateLimit: RateLimitConfig{ExcludeUpdates: []string{"callback"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			if err := Normalize(&cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if err := Normalize(nil); err == nil {
		t.Fatalf("nil config accepted")
	}
}
