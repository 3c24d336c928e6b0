package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the ISO-8601 calendar date layout used on the wire.
const DateFormat = "2006-01-02"

// TradeDate is a calendar day with no time component. The zero value means
// "no date chosen".
type TradeDate struct {
	y int
	m time.Month
	d int
}

// NewTradeDate returns a normalized TradeDate, so NewTradeDate(2024, 1, 32) is Feb 1st.
func NewTradeDate(year int, month time.Month, day int) TradeDate {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return TradeDate{y, m, d}
}

// TradeDateOf returns the calendar day of t in t's own location.
func TradeDateOf(t time.Time) TradeDate {
	return NewTradeDate(t.Date())
}

// ParseTradeDate parses a YYYY-MM-DD string.
func ParseTradeDate(s string) (TradeDate, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return TradeDate{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return TradeDateOf(t), nil
}

// MustParseTradeDate is like ParseTradeDate but panics on error.
func MustParseTradeDate(s string) TradeDate {
	d, err := ParseTradeDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d TradeDate) IsZero() bool { return d == TradeDate{} }

// Time returns midnight UTC of the day.
func (d TradeDate) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d TradeDate) Weekday() time.Weekday { return d.Time().Weekday() }

func (d TradeDate) Before(x TradeDate) bool { return d.Time().Before(x.Time()) }

func (d TradeDate) After(x TradeDate) bool { return d.Time().After(x.Time()) }

func (d TradeDate) Equal(x TradeDate) bool { return d == x }

// AddDays returns the date n days later (earlier for negative n).
func (d TradeDate) AddDays(n int) TradeDate { return NewTradeDate(d.y, d.m, d.d+n) }

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d TradeDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateFormat)
}

func (d TradeDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *TradeDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = TradeDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = TradeDate{}
		return nil
	}
	parsed, err := ParseTradeDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
