package services

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/tropicaldog17/appa/internal/models"
)

// TradingCalendar answers whether a day can be recorded as a purchase date.
type TradingCalendar struct {
	holidays HolidayCalendar
	loc      *time.Location
	now      func() time.Time
}

// NewTradingCalendar creates a calendar whose notion of "today" is taken in loc.
// A nil holiday calendar means no holidays.
func NewTradingCalendar(holidays HolidayCalendar, loc *time.Location) *TradingCalendar {
	if loc == nil {
		loc = time.UTC
	}
	return &TradingCalendar{
		holidays: holidays,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the source of the current time.
func (c *TradingCalendar) WithClock(now func() time.Time) *TradingCalendar {
	if now != nil {
		c.now = now
	}
	return c
}

// Today returns the current date in the market time zone.
func (c *TradingCalendar) Today() models.TradeDate {
	return models.TradeDateOf(c.now().In(c.loc))
}

// IsTradableDay reports whether d is a weekday strictly before today that is
// not a holiday.
func (c *TradingCalendar) IsTradableDay(d models.TradeDate) bool {
	if d.IsZero() {
		return false
	}
	today := c.Today()
	weekday := d.Weekday()
	excluded := weekday == time.Saturday ||
		weekday == time.Sunday ||
		d.Equal(today) ||
		d.After(today) ||
		(c.holidays != nil && c.holidays.IsHoliday(d))
	return !excluded
}

// USFederalHolidays is a HolidayCalendar over the US federal holidays. A day
// counts as a holiday on both its actual and its observed date.
type USFederalHolidays struct {
	cal *cal.BusinessCalendar
}

func NewUSFederalHolidays() *USFederalHolidays {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return &USFederalHolidays{cal: c}
}

func (h *USFederalHolidays) IsHoliday(date models.TradeDate) bool {
	actual, observed, _ := h.cal.IsHoliday(date.Time())
	return actual || observed
}
