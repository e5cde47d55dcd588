package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vibast-solutions/ms-go-webhooks/app/factory"
	"github.com/vibast-solutions/ms-go-webhooks/app/mapper"
	"github.com/vibast-solutions/ms-go-webhooks/app/service"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

func (c *WebhookController) CreateOrder(ctx echo.Context) error {
	req, err := types.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	order, err := c.webhookService.CreateOrder(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrProviderUnsupported):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrOrderAlreadyExists):
			return c.writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create order failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(order)})
}

func (c *WebhookController) GetOrder(ctx echo.Context) error {
	req, err := types.NewGetOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	order, err := c.webhookService.GetOrder(ctx.Request().Context(), req.Id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "order not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get order failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(order)})
}

func (c *WebhookController) ListOrders(ctx echo.Context) error {
	req, err := types.NewListOrdersRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.webhookService.ListOrders(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List orders failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListOrdersResponse{Orders: mapper.OrdersToResponse(items)})
}

func (c *WebhookController) RegisterEndpoint(ctx echo.Context) error {
	req, err := types.NewRegisterEndpointRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if req.Url != "" {
		if err := req.Validate(); err != nil {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
	}

	endpoint, err := c.webhookService.RegisterEndpoint(ctx.Request().Context(), req.Url)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPublicURL):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProviderUnsupported):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Register endpoint failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.EndpointEnvelopeResponse{Endpoint: mapper.EndpointToResponse(endpoint)})
}

func (c *WebhookController) ListEndpoints(ctx echo.Context) error {
	items, err := c.webhookService.ListEndpoints(ctx.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrProviderUnsupported) {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List endpoints failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListEndpointsResponse{Endpoints: mapper.EndpointsToResponse(items)})
}
