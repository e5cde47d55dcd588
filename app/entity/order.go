package entity

import "time"

type Order struct {
	ID string

	RequestID   string
	AmountMinor int64
	Currency    string
	Description string

	Status      int32
	Provider    int32
	Token       *string
	CheckoutURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
