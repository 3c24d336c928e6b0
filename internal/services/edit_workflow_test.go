package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/appa/internal/models"
)

func techBaseline() models.PortfolioBaseline {
	return models.PortfolioBaseline{
		Name:         "Tech",
		Description:  "Growth stocks",
		TotalCapital: decimal.NewFromInt(1000),
	}
}

func loadedEditWorkflow(t *testing.T) *EditWorkflow {
	t.Helper()
	w := NewEditWorkflow()
	req := w.Start("p1")
	require.NotNil(t, req)
	require.True(t, w.BaselineLoaded(req.Token, techBaseline()))
	return w
}

func TestEditWorkflow_StartFetchesOncePerKey(t *testing.T) {
	w := NewEditWorkflow()

	first := w.Start("p1")
	require.NotNil(t, first)
	assert.Equal(t, "p1", first.PortfolioID)
	assert.Equal(t, models.EditLoading, w.State())

	assert.Nil(t, w.Start("p1"), "same key while loading")
	require.True(t, w.BaselineLoaded(first.Token, techBaseline()))
	w.EditName("Tech II")
	assert.Nil(t, w.Start("p1"), "same key while editing")
	assert.Equal(t, "Tech II", w.Snapshot().Edit.Name, "edits survive")

	second := w.Start("p2")
	require.NotNil(t, second)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Nil(t, w.Snapshot().Baseline)
}

func TestEditWorkflow_StaleBaselineIgnored(t *testing.T) {
	w := NewEditWorkflow()
	first := w.Start("p1")
	second := w.Start("p2")
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.False(t, w.BaselineLoaded(first.Token, techBaseline()))
	assert.Equal(t, models.EditLoading, w.State())

	other := models.PortfolioBaseline{Name: "Bonds", TotalCapital: decimal.NewFromInt(500)}
	assert.True(t, w.BaselineLoaded(second.Token, other))
	assert.Equal(t, "Bonds", w.Snapshot().Baseline.Name)

	assert.False(t, w.BaselineLoaded(second.Token, techBaseline()), "baseline is loaded once")
	assert.Equal(t, "Bonds", w.Snapshot().Baseline.Name)
}

func TestEditWorkflow_PendingValuesFromBaseline(t *testing.T) {
	w := NewEditWorkflow()
	req := w.Start("p1")
	w.EditDescription("typed before load")
	require.True(t, w.BaselineLoaded(req.Token, techBaseline()))

	edit := w.Snapshot().Edit
	assert.Equal(t, "Tech", edit.Name)
	assert.Equal(t, "1000", edit.Capital)
	assert.Equal(t, "typed before load", edit.Description, "user input is not overwritten")
	assert.True(t, w.HasChanges())
}

func TestEditWorkflow_DescriptionOnlyChangeSet(t *testing.T) {
	w := loadedEditWorkflow(t)
	assert.False(t, w.HasChanges())

	w.EditDescription("Large caps")

	changes := w.ChangeSet()
	assert.Nil(t, changes.Name)
	assert.Nil(t, changes.TotalCapital)
	require.NotNil(t, changes.Description)
	assert.Equal(t, "Large caps", *changes.Description)
	assert.Equal(t, []models.PortfolioField{models.FieldDescription}, changes.Fields())

	req, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, "p1", req.PortfolioID)
	assert.Equal(t, changes, req.Changes)
}

func TestEditWorkflow_UnchangedValuesAreNotChanges(t *testing.T) {
	w := loadedEditWorkflow(t)

	w.EditName("Tech")
	w.EditCapital("1000.00")
	assert.False(t, w.HasChanges())
	assert.True(t, w.ChangeSet().IsEmpty())
	assert.False(t, w.CanSubmit())

	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrSubmitDisabled)
}

func TestEditWorkflow_CapitalValidation(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1500", true},
		{"1500.75", true},
		{"0.5", true},
		{"-5", false},
		{"0", false},
		{"0.00", false},
		{"", false},
		{"abc", false},
		{"1e3", false},
		{"12.", false},
		{".5", false},
		{" 100", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			w := loadedEditWorkflow(t)
			w.EditCapital(tt.value)
			assert.Equal(t, !tt.valid, w.Snapshot().Edit.CapitalError)
		})
	}
}

func TestEditWorkflow_CapitalErrorBlocksSubmit(t *testing.T) {
	w := loadedEditWorkflow(t)
	w.EditName("Tech II")
	assert.True(t, w.CanSubmit())
	w.Events()

	w.EditCapital("-5")

	snap := w.Snapshot()
	assert.True(t, snap.Edit.CapitalError)
	assert.True(t, snap.HasChanges, "the name still differs")
	assert.False(t, snap.CanSubmit)
	assert.Nil(t, snap.Changes.TotalCapital)

	events := w.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventValidationError, events[0].Kind)
	assert.Equal(t, models.CapitalInvalidMessage, events[0].Message)

	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrSubmitDisabled)

	w.EditCapital("2000")
	require.True(t, w.CanSubmit())
	changes := w.ChangeSet()
	require.NotNil(t, changes.TotalCapital)
	assert.Equal(t, "2000", changes.TotalCapital.String())
}

func TestEditWorkflow_EmptyNameIsNotSent(t *testing.T) {
	w := loadedEditWorkflow(t)
	w.EditName("")

	assert.True(t, w.HasChanges())
	assert.True(t, w.ChangeSet().IsEmpty())
	assert.False(t, w.CanSubmit())
}

func TestEditWorkflow_SubmitSuccessMergesBaseline(t *testing.T) {
	w := loadedEditWorkflow(t)
	w.EditName("Tech II")
	w.EditCapital("2500")
	_, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, models.EditSubmitting, w.State())
	assert.False(t, w.CanSubmit())
	assert.False(t, w.Cancel())
	w.Events()

	w.SubmitCompleted(models.SubmitOutcome{OK: true, Status: 200})

	assert.Equal(t, models.EditClosed, w.State())
	b := w.Baseline()
	require.NotNil(t, b)
	assert.Equal(t, "Tech II", b.Name)
	assert.Equal(t, "Growth stocks", b.Description)
	assert.Equal(t, "2500", b.TotalCapital.String())

	events := w.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventSuccess, events[0].Kind)
	assert.Equal(t, models.EditSuccessMessage, events[0].Message)
}

func TestEditWorkflow_SubmitFailureKeepsBaseline(t *testing.T) {
	w := loadedEditWorkflow(t)
	w.EditName("Tech II")
	_, err := w.Submit()
	require.NoError(t, err)
	w.Events()

	w.SubmitCompleted(models.SubmitOutcome{Status: 409, Message: "Error: Name already taken"})

	assert.Equal(t, models.EditClosed, w.State())
	assert.Equal(t, "Tech", w.Baseline().Name)
	events := w.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventFailure, events[0].Kind)
	assert.Equal(t, "Error: Name already taken", events[0].Message)
}

func TestEditWorkflow_BaselineFailed(t *testing.T) {
	w := NewEditWorkflow()
	req := w.Start("p1")
	require.NotNil(t, req)

	assert.False(t, w.BaselineFailed(req.Token+1))
	assert.True(t, w.BaselineFailed(req.Token))
	assert.Equal(t, models.EditClosed, w.State())

	events := w.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.BaselineFailedMessage, events[0].Message)

	assert.NotNil(t, w.Start("p1"), "a closed editor fetches again")
}

func TestEditWorkflow_Cancel(t *testing.T) {
	w := loadedEditWorkflow(t)
	w.EditName("Tech II")

	assert.True(t, w.Cancel())
	assert.Equal(t, models.EditClosed, w.State())
	assert.False(t, w.Snapshot().Edit.NameChanged)

	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrSessionClosed)
}
