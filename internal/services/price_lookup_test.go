package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tropicaldog17/appa/internal/models"
)

var lastFriday = models.MustParseTradeDate("2024-06-07")

func TestPriceLookup_MissingInputsSkipNetwork(t *testing.T) {
	fetcher := &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(150)}}
	lookup := NewPriceLookup(fetcher, newTestCalendar(), nil, nil)

	q := lookup.Resolve(context.Background(), "", lastFriday)
	assert.False(t, q.Resolved)
	assert.True(t, q.Price.IsZero())
	assert.Empty(t, q.Message)

	q = lookup.Resolve(context.Background(), "AAPL", models.TradeDate{})
	assert.False(t, q.Resolved)
	assert.True(t, q.Price.IsZero())

	assert.Equal(t, 0, fetcher.Calls())
}

func TestPriceLookup_ClosedMarketSkipsNetwork(t *testing.T) {
	fetcher := &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(150)}}
	lookup := NewPriceLookup(fetcher, newTestCalendar(), nil, nil)

	q := lookup.Resolve(context.Background(), "AAPL", models.MustParseTradeDate("2024-06-08"))
	assert.False(t, q.Resolved)
	assert.Equal(t, models.MarketClosedMessage, q.Message)
	assert.Equal(t, 0, fetcher.Calls())
}

func TestPriceLookup_Resolved(t *testing.T) {
	fetcher := &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.RequireFromString("150.25")}}
	lookup := NewPriceLookup(fetcher, newTestCalendar(), nil, nil)

	q := lookup.Resolve(context.Background(), "AAPL", lastFriday)
	assert.True(t, q.Resolved)
	assert.Equal(t, "150.25", q.Price.String())
	assert.Equal(t, models.Symbol("AAPL"), q.Symbol)
	assert.Equal(t, lastFriday, q.Date)
	assert.Empty(t, q.Message)
}

func TestPriceLookup_Degraded(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *mockPriceFetcher
	}{
		{"transport error", &mockPriceFetcher{err: errors.New("connection refused")}},
		{"no price field", &mockPriceFetcher{empty: true}},
		{"zero price", &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.Zero}}},
		{"negative price", &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(-1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := NewPriceLookup(tt.fetcher, newTestCalendar(), nil, nil)
			q := lookup.Resolve(context.Background(), "AAPL", lastFriday)
			assert.False(t, q.Resolved)
			assert.True(t, q.Price.IsZero())
			assert.Equal(t, models.PriceFailedMessage, q.Message)
		})
	}
}

func TestPriceLookup_UsesCache(t *testing.T) {
	fetcher := &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(150)}}
	cache := newMockQuoteCache()
	lookup := NewPriceLookup(fetcher, newTestCalendar(), cache, nil)

	first := lookup.Resolve(context.Background(), "AAPL", lastFriday)
	second := lookup.Resolve(context.Background(), "AAPL", lastFriday)

	assert.Equal(t, 1, fetcher.Calls())
	assert.Equal(t, 1, cache.puts)
	assert.True(t, first.Price.Equal(second.Price))
	assert.True(t, second.Resolved)
}

func TestPriceLookup_DegradedQuotesNotCached(t *testing.T) {
	fetcher := &mockPriceFetcher{empty: true}
	cache := newMockQuoteCache()
	lookup := NewPriceLookup(fetcher, newTestCalendar(), cache, nil)

	lookup.Resolve(context.Background(), "AAPL", lastFriday)
	lookup.Resolve(context.Background(), "AAPL", lastFriday)

	assert.Equal(t, 2, fetcher.Calls())
	assert.Equal(t, 0, cache.puts)
}

func TestPriceLookup_CacheErrorsAreIgnored(t *testing.T) {
	fetcher := &mockPriceFetcher{prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(150)}}
	cache := newMockQuoteCache()
	cache.getErr = errors.New("database is locked")
	cache.putErr = errors.New("database is locked")
	lookup := NewPriceLookup(fetcher, newTestCalendar(), cache, nil)

	q := lookup.Resolve(context.Background(), "AAPL", lastFriday)
	assert.True(t, q.Resolved)
	assert.Equal(t, "150", q.Price.String())
}
