package provider

import (
	"context"
	"time"
)

type CreateOrderInput struct {
	RequestID   string
	AmountMinor int64
	Currency    string
	Description string
}

type OrderOutput struct {
	OrderID     string
	Token       *string
	CheckoutURL *string
	Status      int32
}

type EndpointOutput struct {
	EndpointID    string
	URL           string
	Events        []string
	SigningSecret *string
}

type Event struct {
	EventType           string
	OrderID             *string
	MerchantOrderExtRef *string
	NewStatus           int32
	OccurredAt          *time.Time
}

type Provider interface {
	Code() int32
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*OrderOutput, error)
	RetrieveOrder(ctx context.Context, orderID string) (*OrderOutput, error)
	RegisterWebhook(ctx context.Context, url string, events []string) (*EndpointOutput, error)
	ListWebhooks(ctx context.Context) ([]*EndpointOutput, error)
	ParseEvent(payload []byte) (*Event, error)
}
