package controller

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-webhooks/app/factory"
	"github.com/vibast-solutions/ms-go-webhooks/app/mapper"
	"github.com/vibast-solutions/ms-go-webhooks/app/service"
	"github.com/vibast-solutions/ms-go-webhooks/app/stream"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local development inspection endpoint; the dashboard page is served
	// from a different origin than the tunnel.
	CheckOrigin: func(*http.Request) bool { return true },
}

type WebhookController struct {
	webhookService *service.WebhookService
	hub            *stream.Hub
	logger         logrus.FieldLogger
}

func NewWebhookController(webhookService *service.WebhookService, hub *stream.Hub) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
		hub:            hub,
		logger:         factory.NewModuleLogger("webhooks-controller"),
	}
}

func (c *WebhookController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *WebhookController) HandleProviderWebhook(ctx echo.Context) error {
	req, err := types.NewIngestEventRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	event, err := c.webhookService.IngestEvent(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventRejected), errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrProviderUnsupported):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Handle provider webhook failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.EventEnvelopeResponse{Event: mapper.EventToResponse(event)})
}

func (c *WebhookController) GetEvent(ctx echo.Context) error {
	req, err := types.NewGetEventRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	event, err := c.webhookService.GetEvent(ctx.Request().Context(), req.Id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "event not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get event failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.EventEnvelopeResponse{Event: mapper.EventToResponse(event)})
}

func (c *WebhookController) ListEvents(ctx echo.Context) error {
	req, err := types.NewListEventsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.webhookService.ListRecentEvents(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List events failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListEventsResponse{Events: mapper.EventsToResponse(items)})
}

// StreamEvents upgrades the connection and pushes every accepted event to the
// client until it disconnects.
func (c *WebhookController) StreamEvents(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Debug("Stream upgrade failed")
		return nil
	}

	stream.NewClient(c.hub, conn).Serve()
	return nil
}

func (c *WebhookController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
