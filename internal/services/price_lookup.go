package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/models"
)

// PriceLookup resolves the price of a symbol on a tradable day. It never
// returns an error: every failure becomes a degraded quote.
type PriceLookup struct {
	fetcher  PriceFetcher
	calendar *TradingCalendar
	cache    QuoteCache
	logger   *zap.Logger
}

// NewPriceLookup creates a lookup. cache may be nil.
func NewPriceLookup(fetcher PriceFetcher, calendar *TradingCalendar, cache QuoteCache, log *zap.Logger) *PriceLookup {
	return &PriceLookup{
		fetcher:  fetcher,
		calendar: calendar,
		cache:    cache,
		logger:   logger.OrNop(log).Named("price_lookup"),
	}
}

func (l *PriceLookup) Resolve(ctx context.Context, symbol models.Symbol, date models.TradeDate) models.PriceQuote {
	// Nothing chosen yet: steady state, not a failure.
	if symbol.IsZero() || date.IsZero() {
		return models.DegradedQuote(symbol, date, "")
	}
	if !l.calendar.IsTradableDay(date) {
		return models.DegradedQuote(symbol, date, models.MarketClosedMessage)
	}

	if l.cache != nil {
		cached, err := l.cache.GetCachedQuote(ctx, symbol, date)
		if err != nil {
			l.logger.Warn("quote cache read failed", zap.String("symbol", symbol.String()), zap.Stringer("date", date), zap.Error(err))
		} else if cached != nil {
			return *cached
		}
	}

	resp, err := l.fetcher.FetchPrice(ctx, symbol, date)
	if err != nil {
		l.logger.Warn("price lookup failed", zap.String("symbol", symbol.String()), zap.Stringer("date", date), zap.Error(err))
		return models.DegradedQuote(symbol, date, models.PriceFailedMessage)
	}
	if resp == nil || resp.Price == nil || !resp.Price.IsPositive() {
		l.logger.Info("price lookup returned no usable price", zap.String("symbol", symbol.String()), zap.Stringer("date", date))
		return models.DegradedQuote(symbol, date, models.PriceFailedMessage)
	}

	quote := models.ResolvedQuote(symbol, date, *resp.Price)
	if l.cache != nil {
		if err := l.cache.CacheQuote(ctx, quote); err != nil {
			l.logger.Warn("quote cache write failed", zap.String("symbol", symbol.String()), zap.Stringer("date", date), zap.Error(err))
		}
	}
	return quote
}
