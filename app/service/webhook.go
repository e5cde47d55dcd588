package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-webhooks/app/entity"
	"github.com/vibast-solutions/ms-go-webhooks/app/factory"
	"github.com/vibast-solutions/ms-go-webhooks/app/mapper"
	"github.com/vibast-solutions/ms-go-webhooks/app/provider"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
	"github.com/vibast-solutions/ms-go-webhooks/config"
)

type eventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	FindByID(ctx context.Context, id string) (*entity.WebhookEvent, error)
	ListRecent(ctx context.Context, limit int, eventType string) ([]*entity.WebhookEvent, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	FindByRequestID(ctx context.Context, requestID string) (*entity.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)
}

type eventValidator interface {
	Validate(payload []byte) error
}

type eventBroadcaster interface {
	Broadcast(message []byte)
}

type tunnelClient interface {
	PublicURL(ctx context.Context) (string, error)
}

type WebhookService struct {
	providerReg *provider.Registry
	eventRepo   eventRepository
	orderRepo   orderRepository
	validator   eventValidator
	broadcaster eventBroadcaster
	tunnel      tunnelClient
	webhookCfg  config.WebhookConfig
	logger      logrus.FieldLogger
}

func NewWebhookService(
	providerReg *provider.Registry,
	eventRepo eventRepository,
	orderRepo orderRepository,
	validator eventValidator,
	broadcaster eventBroadcaster,
	tunnel tunnelClient,
	webhookCfg config.WebhookConfig,
) *WebhookService {
	return &WebhookService{
		providerReg: providerReg,
		eventRepo:   eventRepo,
		orderRepo:   orderRepo,
		validator:   validator,
		broadcaster: broadcaster,
		tunnel:      tunnel,
		webhookCfg:  webhookCfg,
		logger:      factory.NewModuleLogger("webhooks-service"),
	}
}

// IngestEvent accepts a raw provider notification: validate the envelope,
// normalize it through the provider client, journal it, and fan it out to
// stream clients. Unknown event types are accepted and recorded as-is.
func (s *WebhookService) IngestEvent(ctx context.Context, req *types.IngestEventRequest) (*entity.WebhookEvent, error) {
	providerCode, err := parseProviderCode(req.Provider)
	if err != nil {
		return nil, err
	}

	providerClient, err := s.providerReg.Get(providerCode)
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotSupported) {
			return nil, ErrProviderUnsupported
		}
		return nil, err
	}

	if s.validator != nil {
		if err := s.validator.Validate(req.Payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEventRejected, err)
		}
	}

	parsed, err := providerClient.ParseEvent(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEventRejected, err)
	}

	now := time.Now().UTC()
	event := &entity.WebhookEvent{
		ID:                  uuid.NewString(),
		Provider:            providerCode,
		EventType:           parsed.EventType,
		OrderID:             parsed.OrderID,
		MerchantOrderExtRef: parsed.MerchantOrderExtRef,
		NewStatus:           parsed.NewStatus,
		PayloadJSON:         string(req.Payload),
		OccurredAt:          parsed.OccurredAt,
		ReceivedAt:          now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.applyOrderTransition(ctx, event, now)
	s.broadcastEvent(event)

	entry := s.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.EventType,
	})
	if event.OrderID != nil {
		entry = entry.WithField("order_id", *event.OrderID)
	}
	entry.Info("webhook_event_received")

	return event, nil
}

func (s *WebhookService) GetEvent(ctx context.Context, id string) (*entity.WebhookEvent, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *WebhookService) ListRecentEvents(ctx context.Context, req *types.ListEventsRequest) ([]*entity.WebhookEvent, error) {
	return s.eventRepo.ListRecent(ctx, req.Limit, req.EventType)
}

// applyOrderTransition moves a journaled order to the status carried by the
// event, when the event references one we created.
func (s *WebhookService) applyOrderTransition(ctx context.Context, event *entity.WebhookEvent, now time.Time) {
	if event.OrderID == nil || event.NewStatus == int32(types.OrderStatusUnspecified) {
		return
	}

	order, err := s.orderRepo.FindByID(ctx, *event.OrderID)
	if err != nil || order == nil {
		return
	}
	if order.Status == event.NewStatus {
		return
	}

	oldStatus := order.Status
	order.Status = event.NewStatus
	order.UpdatedAt = now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("Failed to apply order transition")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"old_status": types.OrderStatus(oldStatus).String(),
		"new_status": types.OrderStatus(order.Status).String(),
	}).Info("order_status_updated")
}

func (s *WebhookService) broadcastEvent(event *entity.WebhookEvent) {
	if s.broadcaster == nil {
		return
	}
	message, err := json.Marshal(&types.EventEnvelopeResponse{Event: mapper.EventToResponse(event)})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode event for stream")
		return
	}
	s.broadcaster.Broadcast(message)
}

func parseProviderCode(providerRaw string) (int32, error) {
	switch strings.ToLower(strings.TrimSpace(providerRaw)) {
	case "revolut", "1":
		return int32(types.ProviderTypeRevolut), nil
	default:
		return 0, ErrProviderUnsupported
	}
}
