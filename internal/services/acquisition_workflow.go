package services

import (
	"errors"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/appa/internal/models"
)

var (
	// ErrSubmitDisabled is returned when submit is requested while the
	// workflow's submit control would be disabled.
	ErrSubmitDisabled = errors.New("submit is not enabled")
	// ErrSessionClosed is returned when a closed workflow is asked to submit.
	ErrSessionClosed = errors.New("session is closed")
	// ErrSubmitInFlight is returned when a session is cancelled mid-submit.
	ErrSubmitInFlight = errors.New("submission in progress")
)

// maxQuantity is the largest share count the submission body can carry.
var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// AcquisitionWorkflow is the add-stock dialog as a state machine. Transitions
// never perform I/O: a transition that needs a price returns the QuoteRequest
// to run, and the result is fed back through QuoteArrived.
type AcquisitionWorkflow struct {
	portfolioID string
	calendar    *TradingCalendar

	state   models.AcquisitionState
	draft   models.AcquisitionDraft
	pending *models.QuoteRequest

	lookupError   string
	quantityError string
	quantitySet   bool
	submitReady   bool

	events []models.Event
}

func NewAcquisitionWorkflow(portfolioID string, calendar *TradingCalendar) *AcquisitionWorkflow {
	return &AcquisitionWorkflow{
		portfolioID: portfolioID,
		calendar:    calendar,
		state:       models.AcquisitionEmpty,
	}
}

func (w *AcquisitionWorkflow) State() models.AcquisitionState { return w.state }

func (w *AcquisitionWorkflow) Draft() models.AcquisitionDraft { return w.draft }

// Open re-opens a closed dialog with an empty draft.
func (w *AcquisitionWorkflow) Open() {
	if w.state == models.AcquisitionClosed {
		w.state = models.AcquisitionEmpty
	}
}

// ChooseSymbol sets the stock. When a date is already set the returned
// request must be resolved.
func (w *AcquisitionWorkflow) ChooseSymbol(symbol models.Symbol) *models.QuoteRequest {
	if !w.editable() {
		return nil
	}
	w.draft.Symbol = symbol
	return w.requote()
}

// ChooseDate sets the buy date. A non-tradable date is rejected: the date and
// quote are cleared and a validation error is raised without any lookup.
func (w *AcquisitionWorkflow) ChooseDate(date models.TradeDate) *models.QuoteRequest {
	if !w.editable() {
		return nil
	}
	if !date.IsZero() && !w.calendar.IsTradableDay(date) {
		w.draft.Date = models.TradeDate{}
		w.draft.Quote = nil
		w.pending = nil
		w.lookupError = models.MarketClosedMessage
		w.emit(models.EventValidationError, models.MarketClosedMessage)
		w.settle()
		w.recompute()
		return nil
	}
	w.draft.Date = date
	return w.requote()
}

// QuoteArrived applies a lookup result. Completions for a pair other than the
// one currently awaited are stale and dropped; it reports whether the quote
// was applied.
func (w *AcquisitionWorkflow) QuoteArrived(req models.QuoteRequest, quote models.PriceQuote) bool {
	if w.state != models.AcquisitionPriceResolving || w.pending == nil || *w.pending != req {
		return false
	}
	if !req.Matches(w.draft.Symbol, w.draft.Date) {
		return false
	}
	w.pending = nil

	if quote.Resolved && quote.Price.IsPositive() {
		q := quote
		w.draft.Quote = &q
		w.lookupError = ""
		w.state = models.AcquisitionReady
	} else {
		q := models.DegradedQuote(req.Symbol, req.Date, quote.Message)
		w.draft.Quote = &q
		w.lookupError = quote.Message
		w.state = models.AcquisitionConfiguring
		if quote.Message != "" {
			w.emit(models.EventValidationError, quote.Message)
		}
	}
	w.recompute()
	return true
}

// SetQuantity sets the share count. Non-positive or fractional quantities are
// kept, so the total still follows the input, but they disable submit.
func (w *AcquisitionWorkflow) SetQuantity(quantity decimal.Decimal) {
	if !w.editable() {
		return
	}
	w.draft.Quantity = quantity
	w.quantitySet = true

	switch {
	case !quantity.IsPositive():
		w.quantityError = models.QuantityPositiveMessage
	case !quantity.IsInteger():
		w.quantityError = models.QuantityWholeMessage
	case quantity.GreaterThan(maxQuantity):
		w.quantityError = models.QuantityTooLargeMessage
	default:
		w.quantityError = ""
	}
	if w.quantityError != "" {
		w.emit(models.EventValidationError, w.quantityError)
	}
	if w.state == models.AcquisitionEmpty {
		w.state = models.AcquisitionConfiguring
	}
	w.recompute()
}

// CanSubmit is the submit-enablement predicate.
func (w *AcquisitionWorkflow) CanSubmit() bool {
	if !w.editable() {
		return false
	}
	d := w.draft
	return d.Price().IsPositive() &&
		!d.Symbol.IsZero() &&
		!d.Date.IsZero() &&
		d.Quantity.IsPositive() &&
		d.Quantity.IsInteger() &&
		d.Quantity.LessThanOrEqual(maxQuantity)
}

// Submit moves to Submitting and returns the transaction to send.
func (w *AcquisitionWorkflow) Submit() (*models.AcquisitionRequest, error) {
	if w.state == models.AcquisitionClosed {
		return nil, ErrSessionClosed
	}
	if !w.CanSubmit() {
		return nil, ErrSubmitDisabled
	}
	req := &models.AcquisitionRequest{
		PortfolioID: w.portfolioID,
		Symbol:      w.draft.Symbol,
		BuyPrice:    w.draft.Price(),
		Quantity:    w.draft.Quantity.IntPart(),
		BuyDate:     w.draft.Date,
	}
	w.state = models.AcquisitionSubmitting
	return req, nil
}

// SubmitCompleted notifies the outcome and closes the dialog. The draft is
// discarded whether the submission succeeded or not.
func (w *AcquisitionWorkflow) SubmitCompleted(outcome models.SubmitOutcome) {
	if w.state != models.AcquisitionSubmitting {
		return
	}
	if outcome.OK {
		w.emit(models.EventSuccess, models.AcquisitionSuccessMessage)
	} else {
		w.emit(models.EventFailure, outcome.Message)
	}
	w.close()
}

// Cancel discards the draft without any network call. It is refused while a
// submission is in flight.
func (w *AcquisitionWorkflow) Cancel() bool {
	if !w.editable() {
		return false
	}
	w.close()
	return true
}

// Events drains the notifications emitted since the last call.
func (w *AcquisitionWorkflow) Events() []models.Event {
	events := w.events
	w.events = nil
	return events
}

func (w *AcquisitionWorkflow) Snapshot() models.AcquisitionSnapshot {
	return models.AcquisitionSnapshot{
		PortfolioID:   w.portfolioID,
		State:         w.state,
		Symbol:        w.draft.Symbol,
		Date:          w.draft.Date,
		Quantity:      w.draft.Quantity,
		Price:         w.draft.Price(),
		PriceLoading:  w.state == models.AcquisitionPriceResolving,
		TotalCost:     w.draft.TotalCost,
		TotalDisplay:  formatUSD(w.draft.TotalCost),
		Error:         w.lookupError,
		QuantityError: w.quantityError,
		CanSubmit:     w.CanSubmit(),
	}
}

func (w *AcquisitionWorkflow) editable() bool {
	return w.state != models.AcquisitionSubmitting && w.state != models.AcquisitionClosed
}

// requote drops the held quote and, when both symbol and date are set,
// starts a lookup for the new pair. A pair that is already held or awaited
// keeps the current quote and state.
func (w *AcquisitionWorkflow) requote() *models.QuoteRequest {
	if w.holdsPair(w.draft.Symbol, w.draft.Date) {
		return nil
	}
	w.lookupError = ""
	w.draft.Quote = nil
	w.pending = nil
	if w.draft.Symbol.IsZero() || w.draft.Date.IsZero() {
		w.settle()
		w.recompute()
		return nil
	}
	req := models.QuoteRequest{Symbol: w.draft.Symbol, Date: w.draft.Date}
	w.pending = &req
	w.state = models.AcquisitionPriceResolving
	w.recompute()
	return &req
}

func (w *AcquisitionWorkflow) holdsPair(symbol models.Symbol, date models.TradeDate) bool {
	if symbol.IsZero() || date.IsZero() {
		return false
	}
	if w.pending != nil {
		return w.pending.Matches(symbol, date)
	}
	q := w.draft.Quote
	return q != nil && q.Symbol == symbol && q.Date.Equal(date)
}

// settle picks Empty or Configuring when no lookup is outstanding.
func (w *AcquisitionWorkflow) settle() {
	if w.draft.Symbol.IsZero() && w.draft.Date.IsZero() && !w.quantitySet {
		w.state = models.AcquisitionEmpty
		return
	}
	w.state = models.AcquisitionConfiguring
}

func (w *AcquisitionWorkflow) recompute() {
	w.draft.TotalCost = w.draft.Quantity.Mul(w.draft.Price())

	ready := w.CanSubmit()
	if ready && !w.submitReady {
		w.emit(models.EventSubmitReady, "")
	}
	w.submitReady = ready
}

func (w *AcquisitionWorkflow) close() {
	w.draft = models.AcquisitionDraft{}
	w.pending = nil
	w.lookupError = ""
	w.quantityError = ""
	w.quantitySet = false
	w.submitReady = false
	w.state = models.AcquisitionClosed
}

func (w *AcquisitionWorkflow) emit(kind models.EventKind, message string) {
	w.events = append(w.events, models.Event{Kind: kind, Message: message})
}

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// formatUSD renders an amount as "$1,234.50", rounded to cents. Amounts whose
// cents overflow int64 are grouped from the decimal string instead.
func formatUSD(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0)
	if cents.GreaterThanOrEqual(minCents) && cents.LessThanOrEqual(maxCents) {
		return money.New(cents.IntPart(), money.USD).Display()
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	fixed := amount.Abs().StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}
