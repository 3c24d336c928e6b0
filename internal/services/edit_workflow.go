package services

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/appa/internal/models"
)

var capitalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// EditWorkflow diffs user edits of a portfolio against the fetched baseline
// and produces a partial update holding only the fields that really changed.
// The baseline is fetched once per session; each fetch carries a token so a
// completion from an earlier session is ignored.
type EditWorkflow struct {
	portfolioID string
	token       uint64
	state       models.EditState

	baseline *models.PortfolioBaseline
	edit     models.PortfolioEdit
	inFlight *models.PortfolioChangeSet

	submitReady bool
	events      []models.Event
}

func NewEditWorkflow() *EditWorkflow {
	return &EditWorkflow{state: models.EditClosed}
}

func (w *EditWorkflow) State() models.EditState { return w.state }

func (w *EditWorkflow) Baseline() *models.PortfolioBaseline { return w.baseline }

// Start opens the editor for a portfolio. A fetch is requested only when the
// editor is closed or the portfolio differs from the one already open.
func (w *EditWorkflow) Start(portfolioID string) *models.BaselineRequest {
	if w.state == models.EditSubmitting {
		return nil
	}
	if w.state != models.EditClosed && w.portfolioID == portfolioID {
		return nil
	}
	w.token++
	w.portfolioID = portfolioID
	w.baseline = nil
	w.edit = models.PortfolioEdit{}
	w.inFlight = nil
	w.submitReady = false
	w.state = models.EditLoading
	return &models.BaselineRequest{PortfolioID: portfolioID, Token: w.token}
}

// BaselineLoaded replaces the baseline when token belongs to the current
// session. Fields the user has not touched take their values from it.
func (w *EditWorkflow) BaselineLoaded(token uint64, baseline models.PortfolioBaseline) bool {
	if token != w.token || w.state != models.EditLoading {
		return false
	}
	b := baseline
	w.baseline = &b
	if !w.edit.NameChanged {
		w.edit.Name = b.Name
	}
	if !w.edit.DescriptionChanged {
		w.edit.Description = b.Description
	}
	if !w.edit.CapitalChanged {
		w.edit.Capital = b.TotalCapital.String()
	}
	w.state = models.EditEditing
	w.recompute()
	return true
}

// BaselineFailed closes the editor after the baseline could not be loaded.
func (w *EditWorkflow) BaselineFailed(token uint64) bool {
	if token != w.token || w.state != models.EditLoading {
		return false
	}
	w.emit(models.EventFailure, models.BaselineFailedMessage)
	w.close()
	return true
}

func (w *EditWorkflow) EditName(value string) {
	if !w.editable() {
		return
	}
	w.edit.Name = value
	w.edit.NameChanged = true
	w.recompute()
}

func (w *EditWorkflow) EditDescription(value string) {
	if !w.editable() {
		return
	}
	w.edit.Description = value
	w.edit.DescriptionChanged = true
	w.recompute()
}

// EditCapital records the raw capital input. Anything but a positive plain
// decimal number sets the capital error.
func (w *EditWorkflow) EditCapital(value string) {
	if !w.editable() {
		return
	}
	w.edit.Capital = value
	w.edit.CapitalChanged = true
	_, ok := parseCapital(value)
	w.edit.CapitalError = !ok
	if !ok {
		w.emit(models.EventValidationError, models.CapitalInvalidMessage)
	}
	w.recompute()
}

// HasChanges reports whether any edited field differs from the baseline.
func (w *EditWorkflow) HasChanges() bool {
	if w.baseline == nil {
		return false
	}
	e, b := w.edit, w.baseline
	if e.NameChanged && e.Name != b.Name {
		return true
	}
	if e.DescriptionChanged && e.Description != b.Description {
		return true
	}
	if e.CapitalChanged && !e.CapitalError {
		if capital, ok := parseCapital(e.Capital); ok && !capital.Equal(b.TotalCapital) {
			return true
		}
	}
	return false
}

// ChangeSet returns the partial update: edited, non-empty fields whose value
// differs from the baseline. Unchanged fields are left nil.
func (w *EditWorkflow) ChangeSet() models.PortfolioChangeSet {
	var changes models.PortfolioChangeSet
	if w.baseline == nil {
		return changes
	}
	e, b := w.edit, w.baseline
	if e.NameChanged && e.Name != "" && e.Name != b.Name {
		name := e.Name
		changes.Name = &name
	}
	if e.DescriptionChanged && e.Description != "" && e.Description != b.Description {
		description := e.Description
		changes.Description = &description
	}
	if e.CapitalChanged && !e.CapitalError {
		if capital, ok := parseCapital(e.Capital); ok && !capital.Equal(b.TotalCapital) {
			changes.TotalCapital = &capital
		}
	}
	return changes
}

func (w *EditWorkflow) CanSubmit() bool {
	return w.state == models.EditEditing &&
		w.baseline != nil &&
		w.HasChanges() &&
		!w.edit.CapitalError &&
		!w.ChangeSet().IsEmpty()
}

// Submit moves to Submitting and returns the partial update to send.
func (w *EditWorkflow) Submit() (*models.PortfolioEditRequest, error) {
	if w.state == models.EditClosed {
		return nil, ErrSessionClosed
	}
	if !w.CanSubmit() {
		return nil, ErrSubmitDisabled
	}
	changes := w.ChangeSet()
	w.inFlight = &changes
	w.state = models.EditSubmitting
	return &models.PortfolioEditRequest{PortfolioID: w.portfolioID, Changes: changes}, nil
}

// SubmitCompleted notifies the outcome and closes the editor. On success the
// baseline becomes the submitted values merged over the old baseline.
func (w *EditWorkflow) SubmitCompleted(outcome models.SubmitOutcome) {
	if w.state != models.EditSubmitting {
		return
	}
	if outcome.OK {
		merged := w.baseline.Apply(*w.inFlight)
		w.baseline = &merged
		w.emit(models.EventSuccess, models.EditSuccessMessage)
	} else {
		w.emit(models.EventFailure, outcome.Message)
	}
	w.close()
}

// Cancel closes the editor without submitting. Refused while submitting.
func (w *EditWorkflow) Cancel() bool {
	if !w.editable() {
		return false
	}
	w.close()
	return true
}

func (w *EditWorkflow) Events() []models.Event {
	events := w.events
	w.events = nil
	return events
}

func (w *EditWorkflow) Snapshot() models.EditSnapshot {
	var baseline *models.PortfolioBaseline
	if w.baseline != nil {
		b := *w.baseline
		baseline = &b
	}
	return models.EditSnapshot{
		PortfolioID: w.portfolioID,
		State:       w.state,
		Baseline:    baseline,
		Edit:        w.edit,
		Changes:     w.ChangeSet(),
		HasChanges:  w.HasChanges(),
		CanSubmit:   w.CanSubmit(),
	}
}

func (w *EditWorkflow) editable() bool {
	return w.state == models.EditLoading || w.state == models.EditEditing
}

func (w *EditWorkflow) recompute() {
	ready := w.CanSubmit()
	if ready && !w.submitReady {
		w.emit(models.EventSubmitReady, "")
	}
	w.submitReady = ready
}

func (w *EditWorkflow) close() {
	w.edit = models.PortfolioEdit{}
	w.inFlight = nil
	w.submitReady = false
	w.state = models.EditClosed
}

func (w *EditWorkflow) emit(kind models.EventKind, message string) {
	w.events = append(w.events, models.Event{Kind: kind, Message: message})
}

func parseCapital(value string) (decimal.Decimal, bool) {
	if !capitalPattern.MatchString(value) {
		return decimal.Zero, false
	}
	capital, err := decimal.NewFromString(value)
	if err != nil || !capital.IsPositive() {
		return decimal.Zero, false
	}
	return capital, true
}
