package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vibast-solutions/ms-go-webhooks/app/entity"
	"github.com/vibast-solutions/ms-go-webhooks/app/provider"
	"github.com/vibast-solutions/ms-go-webhooks/app/repository"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

func (s *WebhookService) CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*entity.Order, error) {
	requestID := strings.TrimSpace(req.RequestId)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	existing, err := s.orderRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	providerClient, err := s.providerReg.Get(int32(types.ProviderTypeRevolut))
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotSupported) {
			return nil, ErrProviderUnsupported
		}
		return nil, err
	}

	output, err := providerClient.CreateOrder(ctx, &provider.CreateOrderInput{
		RequestID:   requestID,
		AmountMinor: req.AmountMinor,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:          output.OrderID,
		RequestID:   requestID,
		AmountMinor: req.AmountMinor,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		Description: strings.TrimSpace(req.Description),
		Status:      output.Status,
		Provider:    int32(types.ProviderTypeRevolut),
		Token:       output.Token,
		CheckoutURL: output.CheckoutURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderAlreadyExists) {
			return nil, ErrOrderAlreadyExists
		}
		return nil, err
	}

	s.logger.WithField("order_id", order.ID).Info("order_created")

	return order, nil
}

// GetOrder serves from the journal first and falls back to the provider for
// orders created outside this process.
func (s *WebhookService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}

	providerClient, err := s.providerReg.Get(int32(types.ProviderTypeRevolut))
	if err != nil {
		return nil, ErrOrderNotFound
	}

	output, err := providerClient.RetrieveOrder(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Debug("Provider order lookup failed")
		return nil, ErrOrderNotFound
	}

	now := time.Now().UTC()
	return &entity.Order{
		ID:          output.OrderID,
		Status:      output.Status,
		Provider:    int32(types.ProviderTypeRevolut),
		Token:       output.Token,
		CheckoutURL: output.CheckoutURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *WebhookService) ListOrders(ctx context.Context, req *types.ListOrdersRequest) ([]*entity.Order, error) {
	return s.orderRepo.ListRecent(ctx, req.Limit)
}
