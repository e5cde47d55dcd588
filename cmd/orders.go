package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-webhooks/app/mapper"
	"github.com/vibast-solutions/ms-go-webhooks/app/service"
	"github.com/vibast-solutions/ms-go-webhooks/app/types"
)

var (
	orderAmount      int64
	orderCurrency    string
	orderDescription string
	orderRequestID   string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Run order related commands",
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a provider order and print its checkout URL",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand("orders_create", func(ctx context.Context, webhookService *service.WebhookService) error {
			order, err := webhookService.CreateOrder(ctx, &types.CreateOrderRequest{
				RequestId:   orderRequestID,
				AmountMinor: orderAmount,
				Currency:    orderCurrency,
				Description: orderDescription,
			})
			if err != nil {
				return err
			}
			return printJSON(&types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(order)})
		})
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <order-id>",
	Short: "Fetch an order from the journal or the provider",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runCommand("orders_get", func(ctx context.Context, webhookService *service.WebhookService) error {
			order, err := webhookService.GetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(&types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(order)})
		})
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersCreateCmd)
	ordersCmd.AddCommand(ordersGetCmd)

	ordersCreateCmd.Flags().Int64Var(&orderAmount, "amount", 0, "Order amount in minor units")
	ordersCreateCmd.Flags().StringVar(&orderCurrency, "currency", "GBP", "ISO 4217 currency code")
	ordersCreateCmd.Flags().StringVar(&orderDescription, "description", "", "Order description")
	ordersCreateCmd.Flags().StringVar(&orderRequestID, "request-id", "", "Idempotency key for the order")
	_ = ordersCreateCmd.MarkFlagRequired("amount")
}

func runCommand(name string, fn func(ctx context.Context, webhookService *service.WebhookService) error) {
	_, webhookService, _ := mustCreateWebhookService()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	err := fn(ctx, webhookService)
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("command", name).WithField("latency", latency.String()).Error("command_failed")
		os.Exit(1)
	}
	logrus.WithField("command", name).WithField("latency", latency.String()).Info("command_completed")
}

func printJSON(payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
