package tunnel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoTunnel is returned when the agent is reachable but reports no active
// tunnel.
var ErrNoTunnel = errors.New("no active tunnel found")

type AgentConfig struct {
	AgentURL    string
	HTTPTimeout time.Duration
}

// AgentClient reads the local ngrok agent API. The tunnel process itself is
// run and managed outside this service; we only ask it for the public URL it
// currently forwards to us.
type AgentClient struct {
	cfg    AgentConfig
	client *http.Client
}

func NewAgentClient(cfg AgentConfig) *AgentClient {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cfg.AgentURL = strings.TrimRight(strings.TrimSpace(cfg.AgentURL), "/")

	return &AgentClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// PublicURL returns the public address of the active tunnel, preferring https
// over http when the agent forwards both.
func (c *AgentClient) PublicURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.AgentURL+"/api/tunnels", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ngrok agent request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload struct {
		Tunnels []struct {
			PublicURL string `json:"public_url"`
			Proto     string `json:"proto"`
		} `json:"tunnels"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}

	fallback := ""
	for _, item := range payload.Tunnels {
		publicURL := strings.TrimSpace(item.PublicURL)
		if publicURL == "" {
			continue
		}
		if strings.EqualFold(item.Proto, "https") {
			return publicURL, nil
		}
		if fallback == "" {
			fallback = publicURL
		}
	}
	if fallback != "" {
		return fallback, nil
	}

	return "", ErrNoTunnel
}
