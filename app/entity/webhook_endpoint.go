package entity

import "time"

type WebhookEndpoint struct {
	ID string

	Provider int32
	URL      string
	Events   []string

	// Issued by the provider at registration time. Recorded for operator
	// reference only; inbound events are not authenticated by this service.
	SigningSecret *string

	CreatedAt time.Time
}
