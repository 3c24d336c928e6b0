package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	st := NewSessionStore(time.Minute)

	id := st.NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	acq := NewAcquisitionSession(id, NewAcquisitionWorkflow("p1", newTestCalendar()), staticResolver(nil), &mockGateway{}, nil)
	st.PutAcquisition(acq)

	got, err := st.GetAcquisition(id)
	require.NoError(t, err)
	assert.Same(t, acq, got)

	_, err = st.GetEdit(id)
	assert.ErrorIs(t, err, ErrSessionNotFound, "kinds do not share ids")

	st.DeleteAcquisition(id)
	_, err = st.GetAcquisition(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	st := NewSessionStore(20 * time.Millisecond)
	edit := NewEditSession(st.NewID(), NewEditWorkflow(), &mockGateway{}, &mockGateway{}, nil)
	st.PutEdit(edit)
	assert.Equal(t, 1, st.Count())

	time.Sleep(50 * time.Millisecond)

	_, err := st.GetEdit(edit.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_GetDoesNotRestoreDeleted(t *testing.T) {
	st := NewSessionStore(time.Minute)

	for i := 0; i < 200; i++ {
		acq := NewAcquisitionSession(st.NewID(), NewAcquisitionWorkflow("p1", newTestCalendar()), staticResolver(nil), &mockGateway{}, nil)
		st.PutAcquisition(acq)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = st.GetAcquisition(acq.ID())
			}
		}()
		st.DeleteAcquisition(acq.ID())
		wg.Wait()

		_, err := st.GetAcquisition(acq.ID())
		require.ErrorIs(t, err, ErrSessionNotFound, "iteration %d", i)
	}
	assert.Equal(t, 0, st.Count())
}

func TestFormService_Lifecycle(t *testing.T) {
	b := techBaseline()
	gw := &mockGateway{baseline: &b}
	store := NewSessionStore(time.Minute)
	forms := NewFormService(newTestCalendar(), staticResolver(map[string]string{"AAPL": "150"}), gw, store, nil)

	acq := forms.StartAcquisition("p1")
	found, err := forms.Acquisition(acq.ID())
	require.NoError(t, err)
	assert.Same(t, acq, found)

	_, err = forms.CloseAcquisition(acq.ID())
	require.NoError(t, err)
	_, err = forms.Acquisition(acq.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	edit, view := forms.StartEdit(context.Background(), "p1")
	assert.Equal(t, "Tech", view.Baseline.Name)
	_, err = forms.Edit(edit.ID())
	require.NoError(t, err)

	_, err = forms.CloseEdit(edit.ID())
	require.NoError(t, err)
	_, err = forms.CloseEdit(edit.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
