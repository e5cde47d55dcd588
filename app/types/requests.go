package types

import (
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type CreateOrderRequest struct {
	RequestId   string `json:"request_id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.RequestId = strings.TrimSpace(body.RequestId)
	if body.RequestId == "" {
		body.RequestId = strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
	}
	body.Currency = strings.ToUpper(strings.TrimSpace(body.Currency))
	body.Description = strings.TrimSpace(body.Description)

	return &body, nil
}

func (r *CreateOrderRequest) Validate() error {
	if r.AmountMinor <= 0 {
		return errors.New("amount must be > 0")
	}
	if len(strings.TrimSpace(r.Currency)) != 3 {
		return errors.New("currency must be 3 letters")
	}
	return nil
}

type GetOrderRequest struct {
	Id string
}

func NewGetOrderRequestFromContext(ctx echo.Context) (*GetOrderRequest, error) {
	return &GetOrderRequest{Id: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetOrderRequest) Validate() error {
	if r.Id == "" {
		return errors.New("order id is required")
	}
	return nil
}

type ListOrdersRequest struct {
	Limit int
}

func NewListOrdersRequestFromContext(ctx echo.Context) (*ListOrdersRequest, error) {
	req := &ListOrdersRequest{Limit: 100}
	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	return req, nil
}

func (r *ListOrdersRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	return nil
}

type IngestEventRequest struct {
	Provider string
	Payload  []byte
}

func NewIngestEventRequestFromContext(ctx echo.Context) (*IngestEventRequest, error) {
	rawBody, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, err
	}

	return &IngestEventRequest{
		Provider: strings.ToLower(strings.TrimSpace(ctx.Param("provider"))),
		Payload:  rawBody,
	}, nil
}

func (r *IngestEventRequest) Validate() error {
	if strings.TrimSpace(r.Provider) == "" {
		return errors.New("provider is required")
	}
	if len(r.Payload) == 0 {
		return errors.New("payload is required")
	}
	return nil
}

type GetEventRequest struct {
	Id string
}

func NewGetEventRequestFromContext(ctx echo.Context) (*GetEventRequest, error) {
	return &GetEventRequest{Id: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetEventRequest) Validate() error {
	if r.Id == "" {
		return errors.New("event id is required")
	}
	return nil
}

type ListEventsRequest struct {
	Limit     int
	EventType string
}

func NewListEventsRequestFromContext(ctx echo.Context) (*ListEventsRequest, error) {
	req := &ListEventsRequest{
		Limit:     100,
		EventType: strings.TrimSpace(ctx.QueryParam("event_type")),
	}
	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	return req, nil
}

func (r *ListEventsRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	return nil
}

type RegisterEndpointRequest struct {
	Url    string   `json:"url"`
	Events []string `json:"events"`
}

func NewRegisterEndpointRequestFromContext(ctx echo.Context) (*RegisterEndpointRequest, error) {
	var body RegisterEndpointRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Url = strings.TrimSpace(body.Url)
	return &body, nil
}

func (r *RegisterEndpointRequest) Validate() error {
	if r.Url == "" {
		return errors.New("url is required")
	}
	parsed, err := url.Parse(r.Url)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.New("url must be a valid http(s) url")
	}
	return nil
}
