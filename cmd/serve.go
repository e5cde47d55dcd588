package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-webhooks/app/controller"
	"github.com/vibast-solutions/ms-go-webhooks/app/provider"
	"github.com/vibast-solutions/ms-go-webhooks/app/repository"
	"github.com/vibast-solutions/ms-go-webhooks/app/schema"
	"github.com/vibast-solutions/ms-go-webhooks/app/service"
	"github.com/vibast-solutions/ms-go-webhooks/app/stream"
	"github.com/vibast-solutions/ms-go-webhooks/app/tunnel"
	"github.com/vibast-solutions/ms-go-webhooks/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server that receives provider webhooks and serves the event journal.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, webhookService, hub := mustCreateWebhookService()

	go hub.Run()
	defer hub.Stop()

	registerEndpointAtBoot(cfg, webhookService)

	webhookController := controller.NewWebhookController(webhookService, hub)
	e := setupHTTPServer(webhookController)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(webhookController *controller.WebhookController) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.GET("/health", webhookController.Health)

	webhooks := e.Group("/webhooks")
	webhooks.POST("/:provider", webhookController.HandleProviderWebhook)

	events := e.Group("/events")
	events.GET("", webhookController.ListEvents)
	events.GET("/stream", webhookController.StreamEvents)
	events.GET("/:id", webhookController.GetEvent)

	orders := e.Group("/orders")
	orders.POST("", webhookController.CreateOrder)
	orders.GET("", webhookController.ListOrders)
	orders.GET("/:id", webhookController.GetOrder)

	endpoints := e.Group("/endpoints")
	endpoints.POST("", webhookController.RegisterEndpoint)
	endpoints.GET("", webhookController.ListEndpoints)

	return e
}

// registerEndpointAtBoot registers the webhook URL with the provider when a
// public URL is configured or the tunnel agent is enabled. Failure is not
// fatal; the endpoint can still be registered later through the API.
func registerEndpointAtBoot(cfg *config.Config, webhookService *service.WebhookService) {
	if !cfg.Ngrok.Enabled && cfg.Webhook.PublicURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	endpoint, err := webhookService.RegisterEndpoint(ctx, "")
	if err != nil {
		logrus.WithError(err).Warn("Webhook endpoint registration failed; continuing without it")
		return
	}
	logrus.WithField("url", endpoint.URL).Info("Webhook endpoint registered")
}

func mustCreateWebhookService() (*config.Config, *service.WebhookService, *stream.Hub) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	validator, err := schema.NewEventValidator()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to compile event schema")
	}

	eventRepo := repository.NewEventRepository(cfg.Events.JournalSize)
	orderRepo := repository.NewOrderRepository(cfg.Events.OrdersSize)

	revolutProvider := provider.NewRevolutProvider(provider.RevolutConfig{
		APIKey:      cfg.Revolut.APIKey,
		Secret:      cfg.Revolut.Secret,
		BaseURL:     cfg.Revolut.BaseURL,
		APIVersion:  cfg.Revolut.APIVersion,
		HTTPTimeout: cfg.Revolut.HTTPTimeout,
	})
	providerRegistry := provider.NewRegistry(revolutProvider)

	hub := stream.NewHub()

	var webhookService *service.WebhookService
	if cfg.Ngrok.Enabled {
		agentClient := tunnel.NewAgentClient(tunnel.AgentConfig{
			AgentURL:    cfg.Ngrok.AgentURL,
			HTTPTimeout: cfg.Ngrok.HTTPTimeout,
		})
		webhookService = service.NewWebhookService(providerRegistry, eventRepo, orderRepo, validator, hub, agentClient, cfg.Webhook)
	} else {
		webhookService = service.NewWebhookService(providerRegistry, eventRepo, orderRepo, validator, hub, nil, cfg.Webhook)
	}

	return cfg, webhookService, hub
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}
