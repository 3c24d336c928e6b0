package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tropicaldog17/appa/internal/config"
	"github.com/tropicaldog17/appa/internal/models"
	"github.com/tropicaldog17/appa/internal/services"
)

func newTradableCmd(configPath *string) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "tradable <date>",
		Short: "Report whether a date can be used as a purchase date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := models.ParseTradeDate(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			calendar := services.NewTradingCalendar(services.NewUSFederalHolidays(), cfg.Location())
			if today != "" {
				pinned, err := models.ParseTradeDate(today)
				if err != nil {
					return fmt.Errorf("invalid --today: %w", err)
				}
				// Midday keeps the pinned day stable across the market time zone offset.
				at := pinned.Time().Add(12 * time.Hour)
				calendar = calendar.WithClock(func() time.Time { return at })
			}

			verdict := "tradable"
			if !calendar.IsTradableDay(date) {
				verdict = "not tradable"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", date, verdict)
			return nil
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "pretend the current date is this day (YYYY-MM-DD)")
	return cmd
}

func newQuoteCmd(configPath *string) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "quote <symbol> <date>",
		Short: "Resolve the closing price of a symbol on a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := models.ParseTradeDate(args[1])
			if err != nil {
				return err
			}
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := services.WithCredential(cmd.Context(), token)
			quote := a.lookup.Resolve(ctx, models.NormalizeSymbol(args[0]), date)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quote)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "access token sent to the portfolio API")
	return cmd
}
