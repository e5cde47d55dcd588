package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

type RevolutConfig struct {
	APIKey      string
	Secret      string
	BaseURL     string
	APIVersion  string
	HTTPTimeout time.Duration
}

type RevolutProvider struct {
	cfg    RevolutConfig
	client *http.Client
}

func NewRevolutProvider(cfg RevolutConfig) *RevolutProvider {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	return &RevolutProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *RevolutProvider) Code() int32 {
	return int32(types.ProviderTypeRevolut)
}

func (p *RevolutProvider) CreateOrder(ctx context.Context, input *CreateOrderInput) (*OrderOutput, error) {
	if strings.TrimSpace(p.cfg.Secret) == "" {
		return nil, errors.New("revolut secret is not configured")
	}

	request := map[string]interface{}{
		"amount":   input.AmountMinor,
		"currency": strings.ToUpper(strings.TrimSpace(input.Currency)),
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		request["description"] = desc
	}
	if ref := strings.TrimSpace(input.RequestID); ref != "" {
		request["merchant_order_ext_ref"] = ref
	}

	body, err := p.doJSON(ctx, http.MethodPost, "/api/orders", request)
	if err != nil {
		return nil, err
	}

	return decodeOrderOutput(body)
}

func (p *RevolutProvider) RetrieveOrder(ctx context.Context, orderID string) (*OrderOutput, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, errors.New("order id is required")
	}

	body, err := p.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}

	return decodeOrderOutput(body)
}

func (p *RevolutProvider) RegisterWebhook(ctx context.Context, webhookURL string, events []string) (*EndpointOutput, error) {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return nil, errors.New("webhook url is required")
	}
	if len(events) == 0 {
		return nil, errors.New("at least one event is required")
	}

	body, err := p.doJSON(ctx, http.MethodPost, "/api/1.0/webhooks", map[string]interface{}{
		"url":    webhookURL,
		"events": events,
	})
	if err != nil {
		return nil, err
	}

	var payload revolutWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return payload.toOutput(), nil
}

func (p *RevolutProvider) ListWebhooks(ctx context.Context) ([]*EndpointOutput, error) {
	body, err := p.doJSON(ctx, http.MethodGet, "/api/1.0/webhooks", nil)
	if err != nil {
		return nil, err
	}

	var payload []revolutWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	items := make([]*EndpointOutput, 0, len(payload))
	for _, item := range payload {
		items = append(items, item.toOutput())
	}
	return items, nil
}

func (p *RevolutProvider) ParseEvent(payload []byte) (*Event, error) {
	var event struct {
		Event               string `json:"event"`
		OrderID             string `json:"order_id"`
		MerchantOrderExtRef string `json:"merchant_order_ext_ref"`
		Timestamp           string `json:"timestamp"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}

	eventType := strings.TrimSpace(event.Event)
	if eventType == "" {
		return nil, errors.New("event type is missing")
	}

	result := &Event{
		EventType: eventType,
		NewStatus: mapEventStatus(eventType),
	}
	if s := strings.TrimSpace(event.OrderID); s != "" {
		result.OrderID = &s
	}
	if s := strings.TrimSpace(event.MerchantOrderExtRef); s != "" {
		result.MerchantOrderExtRef = &s
	}
	if ts := strings.TrimSpace(event.Timestamp); ts != "" {
		if occurredAt, err := time.Parse(time.RFC3339, ts); err == nil {
			utc := occurredAt.UTC()
			result.OccurredAt = &utc
		}
	}

	return result, nil
}

func (p *RevolutProvider) doJSON(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.Secret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if version := strings.TrimSpace(p.cfg.APIVersion); version != "" {
		req.Header.Set("Revolut-Api-Version", version)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("revolut request failed: path=%s status=%d body=%s", path, resp.StatusCode, string(body))
	}

	return body, nil
}

type revolutWebhookPayload struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Events        []string `json:"events"`
	SigningSecret string   `json:"signing_secret"`
}

func (w revolutWebhookPayload) toOutput() *EndpointOutput {
	output := &EndpointOutput{
		EndpointID: strings.TrimSpace(w.ID),
		URL:        strings.TrimSpace(w.URL),
		Events:     w.Events,
	}
	if s := strings.TrimSpace(w.SigningSecret); s != "" {
		output.SigningSecret = &s
	}
	return output
}

func decodeOrderOutput(body []byte) (*OrderOutput, error) {
	var payload struct {
		ID          string `json:"id"`
		Token       string `json:"token"`
		State       string `json:"state"`
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload.ID) == "" {
		return nil, errors.New("revolut order id missing")
	}

	result := &OrderOutput{
		OrderID: strings.TrimSpace(payload.ID),
		Status:  mapOrderState(payload.State),
	}
	if s := strings.TrimSpace(payload.Token); s != "" {
		result.Token = &s
	}
	if s := strings.TrimSpace(payload.CheckoutURL); s != "" {
		result.CheckoutURL = &s
	}

	return result, nil
}

func mapOrderState(state string) int32 {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "pending":
		return int32(types.OrderStatusPending)
	case "processing", "in_settlement":
		return int32(types.OrderStatusProcessing)
	case "authorised":
		return int32(types.OrderStatusAuthorised)
	case "completed":
		return int32(types.OrderStatusCompleted)
	case "cancelled":
		return int32(types.OrderStatusCancelled)
	case "failed":
		return int32(types.OrderStatusFailed)
	default:
		return int32(types.OrderStatusUnspecified)
	}
}

func mapEventStatus(eventType string) int32 {
	switch strings.ToUpper(strings.TrimSpace(eventType)) {
	case "ORDER_COMPLETED":
		return int32(types.OrderStatusCompleted)
	case "ORDER_AUTHORISED":
		return int32(types.OrderStatusAuthorised)
	case "ORDER_CANCELLED":
		return int32(types.OrderStatusCancelled)
	case "ORDER_PAYMENT_DECLINED", "ORDER_PAYMENT_FAILED":
		return int32(types.OrderStatusFailed)
	default:
		return int32(types.OrderStatusUnspecified)
	}
}
