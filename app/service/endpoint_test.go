package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vibast-solutions/ms-go-webhooks/app/provider"
	"github.com/vibast-solutions/ms-go-webhooks/config"
)

func TestRegisterEndpointExplicitURL(t *testing.T) {
	p := &fakeProvider{}
	svc, _, _ := newServiceForTest(p, &fakeValidator{}, &fakeBroadcaster{}, nil, config.WebhookConfig{Events: []string{"ORDER_COMPLETED"}})

	endpoint, err := svc.RegisterEndpoint(context.Background(), "https://public.example/webhooks/revolut")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint.URL != "https://public.example/webhooks/revolut" {
		t.Fatalf("unexpected endpoint url: %s", endpoint.URL)
	}
	if p.lastRegisterURL != "https://public.example/webhooks/revolut" {
		t.Fatalf("unexpected registered url: %s", p.lastRegisterURL)
	}
}

func TestRegisterEndpointUsesConfiguredPublicURL(t *testing.T) {
	p := &fakeProvider{}
	cfg := config.WebhookConfig{
		PublicURL: "https://configured.example/",
		Path:      "/webhooks/revolut",
		Events:    []string{"ORDER_COMPLETED"},
	}
	svc, _, _ := newServiceForTest(p, &fakeValidator{}, &fakeBroadcaster{}, &fakeTunnel{publicURL: "https://tunnel.example"}, cfg)

	_, err := svc.RegisterEndpoint(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.lastRegisterURL != "https://configured.example/webhooks/revolut" {
		t.Fatalf("expected configured url to win, got %s", p.lastRegisterURL)
	}
}

func TestRegisterEndpointDiscoversTunnelURL(t *testing.T) {
	p := &fakeProvider{}
	cfg := config.WebhookConfig{Path: "/webhooks/revolut", Events: []string{"ORDER_COMPLETED"}}
	svc, _, _ := newServiceForTest(p, &fakeValidator{}, &fakeBroadcaster{}, &fakeTunnel{publicURL: "https://abc.ngrok.io"}, cfg)

	_, err := svc.RegisterEndpoint(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.lastRegisterURL != "https://abc.ngrok.io/webhooks/revolut" {
		t.Fatalf("unexpected discovered url: %s", p.lastRegisterURL)
	}
}

func TestRegisterEndpointNoPublicURL(t *testing.T) {
	svc, _, _ := newServiceForTest(&fakeProvider{}, &fakeValidator{}, &fakeBroadcaster{}, nil, config.WebhookConfig{})

	_, err := svc.RegisterEndpoint(context.Background(), "")
	if !errors.Is(err, ErrNoPublicURL) {
		t.Fatalf("expected ErrNoPublicURL, got %v", err)
	}
}

func TestRegisterEndpointTunnelFailure(t *testing.T) {
	svc, _, _ := newServiceForTest(&fakeProvider{}, &fakeValidator{}, &fakeBroadcaster{}, &fakeTunnel{err: errors.New("agent down")}, config.WebhookConfig{})

	if _, err := svc.RegisterEndpoint(context.Background(), ""); err == nil {
		t.Fatal("expected error when tunnel discovery fails")
	}
}

func TestListEndpoints(t *testing.T) {
	secret := "wsk_1"
	p := &fakeProvider{listOutputs: []*provider.EndpointOutput{
		{EndpointID: "wh_1", URL: "https://a.example", Events: []string{"ORDER_COMPLETED"}, SigningSecret: &secret},
	}}
	svc, _, _ := newServiceForTest(p, &fakeValidator{}, &fakeBroadcaster{}, nil, config.WebhookConfig{})

	items, err := svc.ListEndpoints(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "wh_1" {
		t.Fatalf("unexpected endpoints: %+v", items)
	}
}
