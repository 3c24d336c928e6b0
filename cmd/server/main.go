package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/tropicaldog17/appa/docs"
)

// @title Appa Form Workflow API
// @version 1.0
// @description Add-stock and edit-portfolio dialogs driven as server-side sessions.
// @BasePath /api

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "appa",
		Short: "Portfolio form workflow server",
		Long: `appa drives the add-stock and edit-portfolio dialogs of the
portfolio front end. It validates trading days, resolves historical prices
through the portfolio API and submits the finished forms back to it.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding environment settings")

	root.AddCommand(
		newServeCmd(&configPath),
		newTradableCmd(&configPath),
		newQuoteCmd(&configPath),
	)
	return root
}
