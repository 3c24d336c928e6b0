package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tropicaldog17/appa/internal/models"
	"github.com/tropicaldog17/appa/internal/services"
)

// EditHandler exposes the portfolio edit workflow as sessions.
type EditHandler struct {
	forms *services.FormService
}

func NewEditHandler(forms *services.FormService) *EditHandler {
	return &EditHandler{forms: forms}
}

type editResponse struct {
	ID string `json:"id"`
	models.EditView
}

type fieldRequest struct {
	Value *string `json:"value"`
}

// HandleCreate handles POST /api/portfolios/{portfolioId}/edits
// @Summary Open the portfolio editor
// @Description Loads the portfolio once as the baseline for the session.
// @Tags edits
// @Produce json
// @Param portfolioId path string true "Portfolio ID"
// @Success 201 {object} editResponse
// @Router /portfolios/{portfolioId}/edits [post]
func (h *EditHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	portfolioID := mux.Vars(r)["portfolioId"]
	if portfolioID == "" {
		writeError(w, http.StatusBadRequest, "portfolio id is required")
		return
	}
	session, view := h.forms.StartEdit(r.Context(), portfolioID)
	writeJSON(w, http.StatusCreated, editResponse{ID: session.ID(), EditView: view})
}

// HandleGet handles GET /api/edits/{id}
// @Summary Get an edit session
// @Tags edits
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} editResponse
// @Failure 404 {object} errorResponse
// @Router /edits/{id} [get]
func (h *EditHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, editResponse{ID: session.ID(), EditView: session.View()})
}

// HandleSetField handles PUT /api/edits/{id}/fields/{field}
// @Summary Edit a portfolio field
// @Tags edits
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param field path string true "name, description or totalCapital"
// @Param body body fieldRequest true "New value"
// @Success 200 {object} editResponse
// @Failure 400 {object} errorResponse
// @Router /edits/{id}/fields/{field} [put]
func (h *EditHandler) HandleSetField(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req fieldRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}
	view, err := session.SetField(models.PortfolioField(mux.Vars(r)["field"]), *req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editResponse{ID: session.ID(), EditView: view})
}

// HandleSubmit handles POST /api/edits/{id}/submit
// @Summary Submit the changed fields
// @Description Sends only the fields that differ from the baseline. The editor closes on success and on failure.
// @Tags edits
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} editResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /edits/{id}/submit [post]
func (h *EditHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := session.Submit(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrSubmitDisabled) && !view.HasChanges {
			writeError(w, http.StatusBadRequest, models.NoChangesMessage)
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editResponse{ID: session.ID(), EditView: view})
}

// HandleCancel handles DELETE /api/edits/{id}
// @Summary Close the editor without saving
// @Tags edits
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} editResponse
// @Failure 409 {object} errorResponse
// @Router /edits/{id} [delete]
func (h *EditHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.forms.CloseEdit(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editResponse{ID: id, EditView: view})
}

func (h *EditHandler) session(w http.ResponseWriter, r *http.Request) (*services.EditSession, bool) {
	session, err := h.forms.Edit(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return session, true
}
