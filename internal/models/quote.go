package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User-facing lookup messages.
const (
	MarketClosedMessage = "Stock market is closed on this date. Please choose another date."
	PriceFailedMessage  = "Failed to receive stock price. Please try a different stock."
)

// Symbol is a ticker chosen from the external stock catalog. The empty symbol
// means "no stock chosen".
type Symbol string

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

func (s Symbol) IsZero() bool { return strings.TrimSpace(string(s)) == "" }

func (s Symbol) String() string { return string(s) }

// PriceQuote is the price of a symbol on a trade date. Resolved=false is a
// degraded quote: the price is always zero and Message may explain why.
type PriceQuote struct {
	Symbol   Symbol          `json:"symbol"`
	Date     TradeDate       `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Resolved bool            `json:"resolved"`
	Message  string          `json:"message,omitempty"`
}

// DegradedQuote returns an unresolved, zero-priced quote.
func DegradedQuote(symbol Symbol, date TradeDate, message string) PriceQuote {
	return PriceQuote{
		Symbol:  symbol,
		Date:    date,
		Price:   decimal.Zero,
		Message: message,
	}
}

// ResolvedQuote returns a usable quote.
func ResolvedQuote(symbol Symbol, date TradeDate, price decimal.Decimal) PriceQuote {
	return PriceQuote{
		Symbol:   symbol,
		Date:     date,
		Price:    price,
		Resolved: true,
	}
}

// QuoteRequest identifies the (symbol, date) pair an in-flight lookup was issued for.
type QuoteRequest struct {
	Symbol Symbol    `json:"symbol"`
	Date   TradeDate `json:"date"`
}

// Matches reports whether the request was issued for the given pair.
func (r QuoteRequest) Matches(symbol Symbol, date TradeDate) bool {
	return r.Symbol == symbol && r.Date.Equal(date)
}

// PriceResponse is the decoded body of a remote price lookup. A nil Price means
// the body had no usable price field.
type PriceResponse struct {
	Price *decimal.Decimal
}

// QuoteCacheEntry is a resolved quote persisted by the quote cache.
type QuoteCacheEntry struct {
	ID        uint            `gorm:"primaryKey"`
	Symbol    string          `gorm:"size:32;not null;uniqueIndex:idx_quote_symbol_date"`
	Date      string          `gorm:"size:10;not null;uniqueIndex:idx_quote_symbol_date"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Source    string          `gorm:"size:64"`
	CreatedAt time.Time
}

func (QuoteCacheEntry) TableName() string { return "quote_cache_entries" }

// Quote converts the entry back into a resolved quote.
func (e *QuoteCacheEntry) Quote() (PriceQuote, error) {
	date, err := ParseTradeDate(e.Date)
	if err != nil {
		return PriceQuote{}, err
	}
	return ResolvedQuote(Symbol(e.Symbol), date, e.Price), nil
}
