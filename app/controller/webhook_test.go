package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vibast-solutions/ms-go-webhooks/app/provider"
	"github.com/vibast-solutions/ms-go-webhooks/app/repository"
	"github.com/vibast-solutions/ms-go-webhooks/app/schema"
	"github.com/vibast-solutions/ms-go-webhooks/app/service"
	"github.com/vibast-solutions/ms-go-webhooks/app/stream"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
	"github.com/vibast-solutions/ms-go-webhooks/config"
)

type controllerProvider struct {
	createErr   error
	retrieveErr error
	registerErr error
}

func (p *controllerProvider) Code() int32 {
	return int32(types.ProviderTypeRevolut)
}

func (p *controllerProvider) CreateOrder(_ context.Context, input *provider.CreateOrderInput) (*provider.OrderOutput, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	checkout := "https://checkout.revolut.com/ord_1"
	return &provider.OrderOutput{
		OrderID:     "ord_1",
		CheckoutURL: &checkout,
		Status:      int32(types.OrderStatusPending),
	}, nil
}

func (p *controllerProvider) RetrieveOrder(context.Context, string) (*provider.OrderOutput, error) {
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	return &provider.OrderOutput{OrderID: "ord_remote", Status: int32(types.OrderStatusCompleted)}, nil
}

func (p *controllerProvider) RegisterWebhook(_ context.Context, url string, events []string) (*provider.EndpointOutput, error) {
	if p.registerErr != nil {
		return nil, p.registerErr
	}
	return &provider.EndpointOutput{EndpointID: "wh_1", URL: url, Events: events}, nil
}

func (p *controllerProvider) ListWebhooks(context.Context) ([]*provider.EndpointOutput, error) {
	return []*provider.EndpointOutput{{EndpointID: "wh_1", URL: "https://a.example", Events: []string{"ORDER_COMPLETED"}}}, nil
}

func (p *controllerProvider) ParseEvent(payload []byte) (*provider.Event, error) {
	var doc struct {
		Event   string `json:"event"`
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	if doc.Event == "" {
		return nil, errors.New("event type is missing")
	}
	event := &provider.Event{EventType: doc.Event}
	if doc.OrderID != "" {
		event.OrderID = &doc.OrderID
	}
	return event, nil
}

func newControllerForTest(t *testing.T, p provider.Provider) *WebhookController {
	t.Helper()

	validator, err := schema.NewEventValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	hub := stream.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	webhookService := service.NewWebhookService(
		provider.NewRegistry(p),
		repository.NewEventRepository(16),
		repository.NewOrderRepository(16),
		validator,
		hub,
		nil,
		config.WebhookConfig{Events: []string{"ORDER_COMPLETED", "ORDER_AUTHORISED"}},
	)
	return NewWebhookController(webhookService, hub)
}

func newWebhookContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/revolut", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("provider")
	ctx.SetParamValues("revolut")
	return ctx, rec
}

func TestHealth(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := ctrl.Health(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleProviderWebhookBadJSON(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	ctx, rec := newWebhookContext(echo.New(), "{bad")

	if err := ctrl.HandleProviderWebhook(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProviderWebhookMissingEventField(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	ctx, rec := newWebhookContext(echo.New(), `{"order_id":"ord_1"}`)

	_ = ctrl.HandleProviderWebhook(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleProviderWebhookSuccess(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	ctx, rec := newWebhookContext(echo.New(), `{"event":"ORDER_COMPLETED","order_id":"ord_1"}`)

	_ = ctrl.HandleProviderWebhook(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.EventEnvelopeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Event == nil || payload.Event.EventType != "ORDER_COMPLETED" {
		t.Fatalf("unexpected response event: %+v", payload.Event)
	}
	if payload.Event.Id == "" {
		t.Fatal("expected event id in response")
	}
}

func TestHandleProviderWebhookUnknownProvider(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString(`{"event":"X"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("provider")
	ctx.SetParamValues("stripe")

	_ = ctrl.HandleProviderWebhook(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetEventNotFound(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("missing")

	_ = ctrl.GetEvent(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListEventsAfterIngest(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	e := echo.New()

	ctx, rec := newWebhookContext(e, `{"event":"ORDER_COMPLETED","order_id":"ord_1"}`)
	_ = ctrl.HandleProviderWebhook(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest failed: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	listRec := httptest.NewRecorder()
	listCtx := e.NewContext(req, listRec)

	_ = ctrl.ListEvents(listCtx)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listRec.Code)
	}

	var payload types.ListEventsResponse
	if err := json.Unmarshal(listRec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(payload.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(payload.Events))
	}
}

func TestListEventsInvalidLimit(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerProvider{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events?limit=10000", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.ListEvents(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
