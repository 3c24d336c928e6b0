package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tropicaldog17/appa/internal/models"
	"github.com/tropicaldog17/appa/internal/services"
)

type PriceHandler struct {
	calendar *services.TradingCalendar
	lookup   services.PriceResolver
}

func NewPriceHandler(calendar *services.TradingCalendar, lookup services.PriceResolver) *PriceHandler {
	return &PriceHandler{calendar: calendar, lookup: lookup}
}

type tradingDayResponse struct {
	Date     models.TradeDate `json:"date"`
	Today    models.TradeDate `json:"today"`
	Tradable bool             `json:"tradable"`
}

// HandleTradingDay handles GET /api/trading-days/{date}
// @Summary Check a trading day
// @Description Reports whether a date can be used as a purchase date
// @Tags prices
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} tradingDayResponse
// @Failure 400 {object} errorResponse
// @Router /trading-days/{date} [get]
func (h *PriceHandler) HandleTradingDay(w http.ResponseWriter, r *http.Request) {
	date, err := models.ParseTradeDate(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, tradingDayResponse{
		Date:     date,
		Today:    h.calendar.Today(),
		Tradable: h.calendar.IsTradableDay(date),
	})
}

// HandleQuote handles GET /api/quotes?symbol=AAPL&date=2024-06-07
// @Summary Resolve a stock price
// @Description Resolves the price of a symbol on a trading day. Failures yield an unresolved quote with a message.
// @Tags prices
// @Produce json
// @Param symbol query string true "Stock symbol"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} models.PriceQuote
// @Failure 400 {object} errorResponse
// @Router /quotes [get]
func (h *PriceHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbol := models.NormalizeSymbol(q.Get("symbol"))
	if symbol.IsZero() {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	date, err := models.ParseTradeDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, h.lookup.Resolve(r.Context(), symbol, date))
}
