package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/appa/internal/models"
)

// ---- Mocks for collaborators used in unit tests ----

// testToday is Wednesday 2024-06-12; the Friday before is 2024-06-07.
var testToday = time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC)

func newTestCalendar(holidays ...string) *TradingCalendar {
	h := fixedHolidays{}
	for _, d := range holidays {
		h[models.MustParseTradeDate(d)] = true
	}
	c := NewTradingCalendar(h, time.UTC)
	c.now = func() time.Time { return testToday }
	return c
}

type fixedHolidays map[models.TradeDate]bool

func (h fixedHolidays) IsHoliday(d models.TradeDate) bool { return h[d] }

type mockPriceFetcher struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	err    error
	empty  bool
	calls  int
}

func (m *mockPriceFetcher) FetchPrice(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.empty {
		return &models.PriceResponse{}, nil
	}
	p, ok := m.prices[symbol.String()]
	if !ok {
		return &models.PriceResponse{}, nil
	}
	return &models.PriceResponse{Price: &p}, nil
}

func (m *mockPriceFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockQuoteCache struct {
	quotes map[string]models.PriceQuote
	getErr error
	putErr error
	puts   int
}

func newMockQuoteCache() *mockQuoteCache {
	return &mockQuoteCache{quotes: map[string]models.PriceQuote{}}
}

func (m *mockQuoteCache) GetCachedQuote(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceQuote, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	q, ok := m.quotes[symbol.String()+"@"+date.String()]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (m *mockQuoteCache) CacheQuote(ctx context.Context, quote models.PriceQuote) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.quotes[quote.Symbol.String()+"@"+quote.Date.String()] = quote
	return nil
}

// resolverFunc adapts a function to PriceResolver.
type resolverFunc func(ctx context.Context, symbol models.Symbol, date models.TradeDate) models.PriceQuote

func (f resolverFunc) Resolve(ctx context.Context, symbol models.Symbol, date models.TradeDate) models.PriceQuote {
	return f(ctx, symbol, date)
}

// staticResolver resolves every pair to a fixed per-symbol price.
func staticResolver(prices map[string]string) PriceResolver {
	return resolverFunc(func(ctx context.Context, symbol models.Symbol, date models.TradeDate) models.PriceQuote {
		p, ok := prices[symbol.String()]
		if !ok {
			return models.DegradedQuote(symbol, date, models.PriceFailedMessage)
		}
		return models.ResolvedQuote(symbol, date, decimal.RequireFromString(p))
	})
}

type mockGateway struct {
	mu sync.Mutex

	prices map[string]decimal.Decimal

	acquisitionOutcome models.SubmitOutcome
	acquisitions       []models.AcquisitionRequest

	baseline    *models.PortfolioBaseline
	fetchErr    error
	fetchCalls  int
	editOutcome models.SubmitOutcome
	edits       []models.PortfolioEditRequest
	credentials []string
}

func (m *mockGateway) record(ctx context.Context) {
	token, _ := CredentialFrom(ctx)
	m.credentials = append(m.credentials, token)
}

func (m *mockGateway) FetchPrice(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(ctx)
	p, ok := m.prices[symbol.String()]
	if !ok {
		return &models.PriceResponse{}, nil
	}
	return &models.PriceResponse{Price: &p}, nil
}

func (m *mockGateway) SubmitAcquisition(ctx context.Context, req models.AcquisitionRequest) models.SubmitOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(ctx)
	m.acquisitions = append(m.acquisitions, req)
	return m.acquisitionOutcome
}

func (m *mockGateway) FetchPortfolio(ctx context.Context, portfolioID string) (*models.PortfolioBaseline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(ctx)
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.baseline == nil {
		return nil, errors.New("portfolio not found")
	}
	b := *m.baseline
	return &b, nil
}

func (m *mockGateway) SubmitPortfolioEdit(ctx context.Context, req models.PortfolioEditRequest) models.SubmitOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(ctx)
	m.edits = append(m.edits, req)
	return m.editOutcome
}

func eventKinds(events []models.Event) []models.EventKind {
	kinds := make([]models.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
