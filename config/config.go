package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HTTP    ServerConfig
	Log     LogConfig
	Revolut RevolutConfig
	Ngrok   NgrokConfig
	Webhook WebhookConfig
	Events  EventsConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type LogConfig struct {
	Level string
}

type RevolutConfig struct {
	APIKey      string
	Secret      string
	BaseURL     string
	APIVersion  string
	HTTPTimeout time.Duration
}

type NgrokConfig struct {
	Enabled     bool
	AgentURL    string
	HTTPTimeout time.Duration
}

type WebhookConfig struct {
	PublicURL string
	Path      string
	Events    []string
}

type EventsConfig struct {
	JournalSize int
	OrdersSize  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("REVOLUT_SECRET")
	if secret == "" {
		return nil, errors.New("REVOLUT_SECRET environment variable is required")
	}
	baseURL := strings.TrimRight(os.Getenv("REVOLUT_BASE_URL"), "/")
	if baseURL == "" {
		return nil, errors.New("REVOLUT_BASE_URL environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "webhooks-service"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8000"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Revolut: RevolutConfig{
			APIKey:      getEnv("REVOLUT_API_KEY", ""),
			Secret:      secret,
			BaseURL:     baseURL,
			APIVersion:  getEnv("REVOLUT_API_VERSION", "2024-09-01"),
			HTTPTimeout: getSecondsEnv("REVOLUT_HTTP_TIMEOUT_SECONDS", 10*time.Second),
		},
		Ngrok: NgrokConfig{
			Enabled:     getBoolEnv("NGROK_ENABLED", false),
			AgentURL:    strings.TrimRight(getEnv("NGROK_AGENT_URL", "http://localhost:4040"), "/"),
			HTTPTimeout: getSecondsEnv("NGROK_HTTP_TIMEOUT_SECONDS", 5*time.Second),
		},
		Webhook: WebhookConfig{
			PublicURL: strings.TrimRight(getEnv("WEBHOOK_PUBLIC_URL", ""), "/"),
			Path:      getEnv("WEBHOOK_PATH", "/webhooks/revolut"),
			Events:    getListEnv("WEBHOOK_EVENTS", []string{"ORDER_COMPLETED", "ORDER_AUTHORISED"}),
		},
		Events: EventsConfig{
			JournalSize: getIntEnv("EVENTS_JOURNAL_SIZE", 256),
			OrdersSize:  getIntEnv("ORDERS_JOURNAL_SIZE", 256),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
