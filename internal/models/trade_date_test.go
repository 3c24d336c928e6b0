package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeDate_Parse(t *testing.T) {
	d, err := ParseTradeDate(" 2024-06-07 ")
	require.NoError(t, err)
	assert.Equal(t, NewTradeDate(2024, time.June, 7), d)
	assert.Equal(t, time.Friday, d.Weekday())
	assert.Equal(t, "2024-06-07", d.String())

	_, err = ParseTradeDate("06/07/2024")
	assert.Error(t, err)
}

func TestTradeDate_NormalizesOverflow(t *testing.T) {
	assert.Equal(t, NewTradeDate(2024, time.February, 1), NewTradeDate(2024, time.January, 32))
	assert.Equal(t, NewTradeDate(2024, time.March, 1), NewTradeDate(2024, time.February, 28).AddDays(2))
}

func TestTradeDate_OfUsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("zone database unavailable")
	}
	late := time.Date(2024, time.June, 13, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, NewTradeDate(2024, time.June, 12), TradeDateOf(late.In(ny)))
	assert.Equal(t, NewTradeDate(2024, time.June, 13), TradeDateOf(late))
}

func TestTradeDate_JSON(t *testing.T) {
	type body struct {
		Date TradeDate `json:"date"`
	}

	out, err := json.Marshal(body{Date: NewTradeDate(2024, time.June, 7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-07"}`, string(out))

	out, err = json.Marshal(body{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(out))

	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &b))
	assert.True(t, b.Date.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-06-07"}`), &b))
	assert.Equal(t, NewTradeDate(2024, time.June, 7), b.Date)
	assert.Error(t, json.Unmarshal([]byte(`{"date":"June 7th"}`), &b))
}

func TestQuoteRequest_Matches(t *testing.T) {
	req := QuoteRequest{Symbol: "AAPL", Date: NewTradeDate(2024, time.June, 7)}
	assert.True(t, req.Matches("AAPL", MustParseTradeDate("2024-06-07")))
	assert.False(t, req.Matches("AAPL", MustParseTradeDate("2024-06-06")))
	assert.False(t, req.Matches("MSFT", MustParseTradeDate("2024-06-07")))
	assert.Equal(t, Symbol("BRK.B"), NormalizeSymbol("  brk.b "))
}

func TestPortfolioBaseline_Apply(t *testing.T) {
	base := PortfolioBaseline{Name: "Tech", Description: "Growth stocks", TotalCapital: decimal.NewFromInt(1000)}
	desc := "Dividend stocks"
	capital := decimal.NewFromInt(2500)

	merged := base.Apply(PortfolioChangeSet{Description: &desc, TotalCapital: &capital})
	assert.Equal(t, "Tech", merged.Name)
	assert.Equal(t, desc, merged.Description)
	assert.True(t, merged.TotalCapital.Equal(capital))
	assert.Equal(t, "Growth stocks", base.Description)

	assert.True(t, PortfolioChangeSet{}.IsEmpty())
	assert.Equal(t, []PortfolioField{FieldDescription, FieldTotalCapital},
		PortfolioChangeSet{Description: &desc, TotalCapital: &capital}.Fields())
}

func TestQuoteCacheEntry_Quote(t *testing.T) {
	entry := QuoteCacheEntry{Symbol: "AAPL", Date: "2024-06-07", Price: decimal.RequireFromString("150.25")}
	q, err := entry.Quote()
	require.NoError(t, err)
	assert.True(t, q.Resolved)
	assert.Equal(t, Symbol("AAPL"), q.Symbol)

	entry.Date = "bogus"
	_, err = entry.Quote()
	assert.Error(t, err)
}
