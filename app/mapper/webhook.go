package mapper

import (
	"encoding/json"
	"time"

	"github.com/vibast-solutions/ms-go-webhooks/app/entity"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

func OrderToResponse(item *entity.Order) *types.Order {
	if item == nil {
		return nil
	}

	return &types.Order{
		Id:          item.ID,
		RequestId:   item.RequestID,
		AmountMinor: item.AmountMinor,
		Currency:    item.Currency,
		Description: item.Description,
		Status:      types.OrderStatus(item.Status).String(),
		Provider:    types.ProviderType(item.Provider).String(),
		Token:       derefString(item.Token),
		CheckoutUrl: derefString(item.CheckoutURL),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToResponse(items []*entity.Order) []*types.Order {
	result := make([]*types.Order, 0, len(items))
	for _, item := range items {
		result = append(result, OrderToResponse(item))
	}
	return result
}

func EventToResponse(item *entity.WebhookEvent) *types.WebhookEvent {
	if item == nil {
		return nil
	}

	response := &types.WebhookEvent{
		Id:                  item.ID,
		Provider:            types.ProviderType(item.Provider).String(),
		EventType:           item.EventType,
		OrderId:             derefString(item.OrderID),
		MerchantOrderExtRef: derefString(item.MerchantOrderExtRef),
		Status:              types.OrderStatus(item.NewStatus).String(),
		Payload:             json.RawMessage(item.PayloadJSON),
		ReceivedAt:          item.ReceivedAt.UTC().Format(time.RFC3339),
	}
	if item.OccurredAt != nil {
		response.OccurredAt = item.OccurredAt.UTC().Format(time.RFC3339)
	}
	return response
}

func EventsToResponse(items []*entity.WebhookEvent) []*types.WebhookEvent {
	result := make([]*types.WebhookEvent, 0, len(items))
	for _, item := range items {
		result = append(result, EventToResponse(item))
	}
	return result
}

func EndpointToResponse(item *entity.WebhookEndpoint) *types.WebhookEndpoint {
	if item == nil {
		return nil
	}

	// The signing secret issued at registration never leaves the service.
	return &types.WebhookEndpoint{
		Id:        item.ID,
		Provider:  types.ProviderType(item.Provider).String(),
		Url:       item.URL,
		Events:    append([]string(nil), item.Events...),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func EndpointsToResponse(items []*entity.WebhookEndpoint) []*types.WebhookEndpoint {
	result := make([]*types.WebhookEndpoint, 0, len(items))
	for _, item := range items {
		result = append(result, EndpointToResponse(item))
	}
	return result
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
