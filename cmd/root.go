package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webhooks",
	Short: "Webhooks microservice",
	Long:  "A webhook receiver for payment provider events, with order creation, tunnel discovery, and a live event stream.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
