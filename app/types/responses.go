package types

import "encoding/json"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Order struct {
	Id          string `json:"id"`
	RequestId   string `json:"request_id,omitempty"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Provider    string `json:"provider"`
	Token       string `json:"token,omitempty"`
	CheckoutUrl string `json:"checkout_url,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type OrderEnvelopeResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type WebhookEvent struct {
	Id                  string          `json:"id"`
	Provider            string          `json:"provider"`
	EventType           string          `json:"event_type"`
	OrderId             string          `json:"order_id,omitempty"`
	MerchantOrderExtRef string          `json:"merchant_order_ext_ref,omitempty"`
	Status              string          `json:"status"`
	Payload             json.RawMessage `json:"payload,omitempty"`
	OccurredAt          string          `json:"occurred_at,omitempty"`
	ReceivedAt          string          `json:"received_at"`
}

type EventEnvelopeResponse struct {
	Event *WebhookEvent `json:"event"`
}

type ListEventsResponse struct {
	Events []*WebhookEvent `json:"events"`
}

type WebhookEndpoint struct {
	Id        string   `json:"id"`
	Provider  string   `json:"provider"`
	Url       string   `json:"url"`
	Events    []string `json:"events"`
	CreatedAt string   `json:"created_at"`
}

type EndpointEnvelopeResponse struct {
	Endpoint *WebhookEndpoint `json:"endpoint"`
}

type ListEndpointsResponse struct {
	Endpoints []*WebhookEndpoint `json:"endpoints"`
}
