package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-webhooks/app/entity"
	"github.com/vibast-solutions/ms-go-webhooks/app/provider"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

// RegisterEndpoint registers our webhook URL with the provider. When no
// explicit URL is given, the public URL is resolved from configuration or
// tunnel discovery.
func (s *WebhookService) RegisterEndpoint(ctx context.Context, explicitURL string) (*entity.WebhookEndpoint, error) {
	callbackURL := strings.TrimSpace(explicitURL)
	if callbackURL == "" {
		resolved, err := s.ResolveCallbackURL(ctx)
		if err != nil {
			return nil, err
		}
		callbackURL = resolved
	}

	providerClient, err := s.providerReg.Get(int32(types.ProviderTypeRevolut))
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotSupported) {
			return nil, ErrProviderUnsupported
		}
		return nil, err
	}

	output, err := providerClient.RegisterWebhook(ctx, callbackURL, s.webhookCfg.Events)
	if err != nil {
		return nil, err
	}

	endpoint := &entity.WebhookEndpoint{
		ID:            output.EndpointID,
		Provider:      int32(types.ProviderTypeRevolut),
		URL:           output.URL,
		Events:        output.Events,
		SigningSecret: output.SigningSecret,
		CreatedAt:     time.Now().UTC(),
	}

	s.logger.WithField("url", endpoint.URL).Info("webhook_endpoint_registered")

	return endpoint, nil
}

func (s *WebhookService) ListEndpoints(ctx context.Context) ([]*entity.WebhookEndpoint, error) {
	providerClient, err := s.providerReg.Get(int32(types.ProviderTypeRevolut))
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotSupported) {
			return nil, ErrProviderUnsupported
		}
		return nil, err
	}

	outputs, err := providerClient.ListWebhooks(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.WebhookEndpoint, 0, len(outputs))
	for _, output := range outputs {
		items = append(items, &entity.WebhookEndpoint{
			ID:            output.EndpointID,
			Provider:      int32(types.ProviderTypeRevolut),
			URL:           output.URL,
			Events:        output.Events,
			SigningSecret: output.SigningSecret,
		})
	}
	return items, nil
}

// ResolveCallbackURL builds the publicly reachable webhook URL: an explicitly
// configured public URL wins, otherwise the tunnel agent is asked.
func (s *WebhookService) ResolveCallbackURL(ctx context.Context) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(s.webhookCfg.PublicURL), "/")
	if base == "" && s.tunnel != nil {
		discovered, err := s.tunnel.PublicURL(ctx)
		if err != nil {
			return "", err
		}
		base = strings.TrimRight(strings.TrimSpace(discovered), "/")
	}
	if base == "" {
		return "", ErrNoPublicURL
	}

	path := s.webhookCfg.Path
	if path == "" {
		path = "/webhooks/revolut"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return base + path, nil
}
