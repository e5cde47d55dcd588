package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-webhooks/app/mapper"
	"github.com/vibast-solutions/ms-go-webhooks/app/service"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

var endpointURL string

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Run webhook endpoint related commands",
}

var endpointsRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the webhook URL with the provider",
	Long:  "Register the webhook URL with the provider. Without --url the public URL is resolved from WEBHOOK_PUBLIC_URL or the ngrok agent.",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand("endpoints_register", func(ctx context.Context, webhookService *service.WebhookService) error {
			endpoint, err := webhookService.RegisterEndpoint(ctx, endpointURL)
			if err != nil {
				return err
			}
			return printJSON(&types.EndpointEnvelopeResponse{Endpoint: mapper.EndpointToResponse(endpoint)})
		})
	},
}

var endpointsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhook endpoints registered with the provider",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand("endpoints_list", func(ctx context.Context, webhookService *service.WebhookService) error {
			items, err := webhookService.ListEndpoints(ctx)
			if err != nil {
				return err
			}
			return printJSON(&types.ListEndpointsResponse{Endpoints: mapper.EndpointsToResponse(items)})
		})
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsCmd.AddCommand(endpointsRegisterCmd)
	endpointsCmd.AddCommand(endpointsListCmd)

	endpointsRegisterCmd.Flags().StringVar(&endpointURL, "url", "", "Explicit webhook URL to register")
}
