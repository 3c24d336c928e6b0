package models

import (
	"github.com/shopspring/decimal"
)

// AcquisitionState is the state of the add-stock workflow.
type AcquisitionState string

const (
	AcquisitionEmpty          AcquisitionState = "empty"
	AcquisitionConfiguring    AcquisitionState = "configuring"
	AcquisitionPriceResolving AcquisitionState = "price_resolving"
	AcquisitionReady          AcquisitionState = "ready"
	AcquisitionSubmitting     AcquisitionState = "submitting"
	AcquisitionClosed         AcquisitionState = "closed"
)

// Acquisition messages shown to the user.
const (
	QuantityPositiveMessage   = "Quantity must be greater than 0"
	QuantityWholeMessage      = "Quantity must be a whole number"
	QuantityTooLargeMessage   = "Quantity is too large"
	AcquisitionSuccessMessage = "Stock added successfully!"
)

// AcquisitionDraft is the in-progress purchase being configured in the dialog.
type AcquisitionDraft struct {
	Symbol    Symbol          `json:"symbol"`
	Date      TradeDate       `json:"date"`
	Quantity  decimal.Decimal `json:"quantity"`
	Quote     *PriceQuote     `json:"quote,omitempty"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// Price returns the quote price, or zero when no quote is held.
func (d AcquisitionDraft) Price() decimal.Decimal {
	if d.Quote == nil {
		return decimal.Zero
	}
	return d.Quote.Price
}

// AcquisitionRequest is the add-stock transaction sent to the portfolio API.
type AcquisitionRequest struct {
	PortfolioID string          `json:"portfolio_id"`
	Symbol      Symbol          `json:"symbol"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
	Quantity    int64           `json:"quantity"`
	BuyDate     TradeDate       `json:"buy_date"`
}

// AcquisitionSnapshot is a read-only view of the workflow for the view layer.
type AcquisitionSnapshot struct {
	PortfolioID   string           `json:"portfolio_id"`
	State         AcquisitionState `json:"state"`
	Symbol        Symbol           `json:"symbol"`
	Date          TradeDate        `json:"date"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	PriceLoading  bool             `json:"price_loading"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	TotalDisplay  string           `json:"total_display"`
	Error         string           `json:"error,omitempty"`
	QuantityError string           `json:"quantity_error,omitempty"`
	CanSubmit     bool             `json:"can_submit"`
}

// AcquisitionView is a snapshot together with the events emitted by the
// transition that produced it.
type AcquisitionView struct {
	AcquisitionSnapshot
	Events []Event `json:"events,omitempty"`
}
