package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tropicaldog17/appa/internal/config"
	"github.com/tropicaldog17/appa/internal/db"
	"github.com/tropicaldog17/appa/internal/handlers"
	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/services"
)

const shutdownTimeout = 10 * time.Second

// app is the wired service graph shared by the subcommands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	database *db.DB
	api      *services.PortfolioAPI
	calendar *services.TradingCalendar
	lookup   *services.PriceLookup
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}

	var cache services.QuoteCache
	if cfg.Cache.Enabled() {
		a.database, err = db.Connect(&cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to connect quote cache: %w", err)
		}
		if err := a.database.Health(); err != nil {
			a.close()
			return nil, fmt.Errorf("quote cache health check failed: %w", err)
		}
		qc, err := services.NewQuoteCacheService(a.database, "portfolio_api")
		if err != nil {
			a.close()
			return nil, err
		}
		cache = qc
		log.Info("quote cache enabled", zap.String("driver", cfg.Cache.Driver))
	}

	a.api, err = services.NewPortfolioAPI(services.PortfolioAPIConfig{
		BaseURL:      cfg.APIBaseURL,
		Timeout:      cfg.APITimeout,
		RateLimit:    cfg.PriceRateLimit,
		RateBurst:    cfg.PriceRateBurst,
		ResponsePath: cfg.PriceResponsePath,
	}, log)
	if err != nil {
		a.close()
		return nil, err
	}

	a.calendar = services.NewTradingCalendar(services.NewUSFederalHolidays(), cfg.Location())
	a.lookup = services.NewPriceLookup(a.api, a.calendar, cache, log)
	return a, nil
}

func (a *app) close() {
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.log.Warn("failed to close quote cache", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			store := services.NewSessionStore(a.cfg.SessionTTL)
			forms := services.NewFormService(a.calendar, a.lookup, a.api, store, a.log)

			// A nil *db.DB inside the interface would defeat the nil check in the health handler.
			var health handlers.HealthChecker
			if a.database != nil {
				health = a.database
			}

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           handlers.NewRouter(forms, health, a.log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server starting",
					zap.String("addr", srv.Addr),
					zap.String("api", a.cfg.APIBaseURL),
					zap.Duration("session_ttl", a.cfg.SessionTTL))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
