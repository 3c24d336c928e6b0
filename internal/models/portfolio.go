package models

import (
	"github.com/shopspring/decimal"
)

// PortfolioField names an editable portfolio attribute.
type PortfolioField string

const (
	FieldName         PortfolioField = "name"
	FieldDescription  PortfolioField = "description"
	FieldTotalCapital PortfolioField = "totalCapital"
)

// EditState is the state of the portfolio edit workflow.
type EditState string

const (
	EditLoading    EditState = "loading"
	EditEditing    EditState = "editing"
	EditSubmitting EditState = "submitting"
	EditClosed     EditState = "closed"
)

// Edit messages shown to the user.
const (
	CapitalInvalidMessage = "Capital must be a number greater than 0"
	EditSuccessMessage    = "Portfolio updated successfully!"
	BaselineFailedMessage = "Failed to load portfolio. Please try again."
	NoChangesMessage      = "No changes to submit"
)

// PortfolioBaseline is the last fetched snapshot of a portfolio's metadata.
type PortfolioBaseline struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TotalCapital decimal.Decimal `json:"totalCapital"`
}

// Apply returns a new baseline with the change-set merged in.
func (b PortfolioBaseline) Apply(c PortfolioChangeSet) PortfolioBaseline {
	merged := b
	if c.Name != nil {
		merged.Name = *c.Name
	}
	if c.Description != nil {
		merged.Description = *c.Description
	}
	if c.TotalCapital != nil {
		merged.TotalCapital = *c.TotalCapital
	}
	return merged
}

// PortfolioEdit holds the pending value and edited flag of every field.
type PortfolioEdit struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Capital            string `json:"capital"`
	NameChanged        bool   `json:"name_changed"`
	DescriptionChanged bool   `json:"description_changed"`
	CapitalChanged     bool   `json:"capital_changed"`
	CapitalError       bool   `json:"capital_error"`
}

// PortfolioChangeSet is a partial update. Nil fields are omitted on the wire.
type PortfolioChangeSet struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	TotalCapital *decimal.Decimal `json:"totalCapital,omitempty"`
}

func (c PortfolioChangeSet) IsEmpty() bool {
	return c.Name == nil && c.Description == nil && c.TotalCapital == nil
}

// Fields lists the fields present in the change-set.
func (c PortfolioChangeSet) Fields() []PortfolioField {
	var fields []PortfolioField
	if c.Name != nil {
		fields = append(fields, FieldName)
	}
	if c.Description != nil {
		fields = append(fields, FieldDescription)
	}
	if c.TotalCapital != nil {
		fields = append(fields, FieldTotalCapital)
	}
	return fields
}

// BaselineRequest asks for the baseline of a portfolio. Token ties the
// completion to the edit session that issued it.
type BaselineRequest struct {
	PortfolioID string
	Token       uint64
}

// PortfolioEditRequest is the partial update sent to the portfolio API.
type PortfolioEditRequest struct {
	PortfolioID string
	Changes     PortfolioChangeSet
}

// EditSnapshot is a read-only view of the edit workflow.
type EditSnapshot struct {
	PortfolioID string             `json:"portfolio_id"`
	State       EditState          `json:"state"`
	Baseline    *PortfolioBaseline `json:"baseline,omitempty"`
	Edit        PortfolioEdit      `json:"edit"`
	Changes     PortfolioChangeSet `json:"changes"`
	HasChanges  bool               `json:"has_changes"`
	CanSubmit   bool               `json:"can_submit"`
}

// EditView is a snapshot together with the events emitted by the transition
// that produced it.
type EditView struct {
	EditSnapshot
	Events []Event `json:"events,omitempty"`
}
