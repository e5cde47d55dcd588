package entity

import "time"

type WebhookEvent struct {
	ID string

	Provider  int32
	EventType string

	OrderID             *string
	MerchantOrderExtRef *string
	NewStatus           int32

	PayloadJSON string

	OccurredAt *time.Time
	ReceivedAt time.Time
}
