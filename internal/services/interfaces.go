package services

import (
	"context"

	"github.com/tropicaldog17/appa/internal/models"
)

// HolidayCalendar decides whether the exchange is closed for a public holiday.
type HolidayCalendar interface {
	IsHoliday(date models.TradeDate) bool
}

// PriceFetcher performs the remote price lookup for a symbol on a date.
// A response without a usable price is returned with a nil Price, not an error.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceResponse, error)
}

// PriceResolver resolves a quote, degrading instead of failing.
type PriceResolver interface {
	Resolve(ctx context.Context, symbol models.Symbol, date models.TradeDate) models.PriceQuote
}

// QuoteCache stores resolved quotes by (symbol, date).
type QuoteCache interface {
	GetCachedQuote(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceQuote, error)
	CacheQuote(ctx context.Context, quote models.PriceQuote) error
}

// AcquisitionSubmitter records a stock purchase in a portfolio.
type AcquisitionSubmitter interface {
	SubmitAcquisition(ctx context.Context, req models.AcquisitionRequest) models.SubmitOutcome
}

// PortfolioFetcher loads the editable metadata of a portfolio.
type PortfolioFetcher interface {
	FetchPortfolio(ctx context.Context, portfolioID string) (*models.PortfolioBaseline, error)
}

// PortfolioEditor applies a partial update to a portfolio.
type PortfolioEditor interface {
	SubmitPortfolioEdit(ctx context.Context, req models.PortfolioEditRequest) models.SubmitOutcome
}

// PortfolioGateway is everything the workflows need from the remote API.
type PortfolioGateway interface {
	PriceFetcher
	AcquisitionSubmitter
	PortfolioFetcher
	PortfolioEditor
}
