package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresRevolutSecret(t *testing.T) {
	unsetEnv(t, "REVOLUT_SECRET")
	setEnv(t, "REVOLUT_BASE_URL", "https://sandbox-merchant.revolut.com")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing REVOLUT_SECRET")
	}
}

func TestLoadRequiresRevolutBaseURL(t *testing.T) {
	setEnv(t, "REVOLUT_SECRET", "sk_test")
	unsetEnv(t, "REVOLUT_BASE_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing REVOLUT_BASE_URL")
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEnv(t, "REVOLUT_SECRET", "sk_test")
	setEnv(t, "REVOLUT_BASE_URL", "https://sandbox-merchant.revolut.com/")
	setEnv(t, "APP_SERVICE_NAME", "webhooks-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "REVOLUT_HTTP_TIMEOUT_SECONDS", "20")
	setEnv(t, "NGROK_ENABLED", "true")
	setEnv(t, "NGROK_AGENT_URL", "http://localhost:14040/")
	setEnv(t, "WEBHOOK_EVENTS", "ORDER_COMPLETED, ORDER_CANCELLED")
	setEnv(t, "EVENTS_JOURNAL_SIZE", "32")
	unsetEnv(t, "WEBHOOK_PUBLIC_URL")
	unsetEnv(t, "HTTP_HOST")
	unsetEnv(t, "REVOLUT_API_VERSION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "webhooks-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != "8181" {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
	if cfg.Revolut.BaseURL != "https://sandbox-merchant.revolut.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.Revolut.BaseURL)
	}
	if cfg.Revolut.APIVersion != "2024-09-01" {
		t.Fatalf("unexpected api version: %s", cfg.Revolut.APIVersion)
	}
	if cfg.Revolut.HTTPTimeout != 20*time.Second {
		t.Fatalf("unexpected revolut timeout: %v", cfg.Revolut.HTTPTimeout)
	}
	if !cfg.Ngrok.Enabled || cfg.Ngrok.AgentURL != "http://localhost:14040" {
		t.Fatalf("unexpected ngrok config: %+v", cfg.Ngrok)
	}
	if cfg.Webhook.Path != "/webhooks/revolut" {
		t.Fatalf("unexpected webhook path: %s", cfg.Webhook.Path)
	}
	if len(cfg.Webhook.Events) != 2 || cfg.Webhook.Events[1] != "ORDER_CANCELLED" {
		t.Fatalf("unexpected webhook events: %v", cfg.Webhook.Events)
	}
	if cfg.Events.JournalSize != 32 {
		t.Fatalf("unexpected journal size: %d", cfg.Events.JournalSize)
	}
}

func TestLoadDefaultWebhookEvents(t *testing.T) {
	setEnv(t, "REVOLUT_SECRET", "sk_test")
	setEnv(t, "REVOLUT_BASE_URL", "https://sandbox-merchant.revolut.com")
	unsetEnv(t, "WEBHOOK_EVENTS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Webhook.Events) != 2 || cfg.Webhook.Events[0] != "ORDER_COMPLETED" || cfg.Webhook.Events[1] != "ORDER_AUTHORISED" {
		t.Fatalf("unexpected default events: %v", cfg.Webhook.Events)
	}
}
