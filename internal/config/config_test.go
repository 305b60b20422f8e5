package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.TelegramAPIBase != "https://api.telegram.org" {
		t.Errorf("TelegramAPIBase = %q", cfg.TelegramAPIBase)
	}
	if cfg.NotifyTimeout != 5*time.Second {
		t.Errorf("NotifyTimeout = %v", cfg.NotifyTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "30")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg := FromEnv()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.TelegramBotToken != "test-token" {
		t.Errorf("TelegramBotToken = %q", cfg.TelegramBotToken)
	}
}

func TestEnvDurationBadValue(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")

	if got := envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second); got != 10*time.Second {
		t.Errorf("bad value must fall back to default, got %v", got)
	}
}
