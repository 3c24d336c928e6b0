package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/appa/internal/models"
	"github.com/tropicaldog17/appa/internal/services"
)

// AcquisitionHandler exposes the add-stock workflow as sessions.
type AcquisitionHandler struct {
	forms *services.FormService
}

func NewAcquisitionHandler(forms *services.FormService) *AcquisitionHandler {
	return &AcquisitionHandler{forms: forms}
}

type acquisitionResponse struct {
	ID string `json:"id"`
	models.AcquisitionView
}

type symbolRequest struct {
	Symbol string `json:"symbol"`
}

type dateRequest struct {
	Date models.TradeDate `json:"date"`
}

type quantityRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
}

// HandleCreate handles POST /api/portfolios/{portfolioId}/acquisitions
// @Summary Open an add-stock dialog
// @Tags acquisitions
// @Produce json
// @Param portfolioId path string true "Portfolio ID"
// @Success 201 {object} acquisitionResponse
// @Router /portfolios/{portfolioId}/acquisitions [post]
func (h *AcquisitionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	portfolioID := mux.Vars(r)["portfolioId"]
	if portfolioID == "" {
		writeError(w, http.StatusBadRequest, "portfolio id is required")
		return
	}
	session := h.forms.StartAcquisition(portfolioID)
	writeJSON(w, http.StatusCreated, acquisitionResponse{ID: session.ID(), AcquisitionView: session.View()})
}

// HandleGet handles GET /api/acquisitions/{id}
// @Summary Get an add-stock session
// @Tags acquisitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} acquisitionResponse
// @Failure 404 {object} errorResponse
// @Router /acquisitions/{id} [get]
func (h *AcquisitionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: session.ID(), AcquisitionView: session.View()})
}

// HandleSetSymbol handles PUT /api/acquisitions/{id}/symbol
// @Summary Choose the stock
// @Tags acquisitions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body symbolRequest true "Symbol"
// @Success 200 {object} acquisitionResponse
// @Failure 400 {object} errorResponse
// @Router /acquisitions/{id}/symbol [put]
func (h *AcquisitionHandler) HandleSetSymbol(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req symbolRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	view := session.ChooseSymbol(r.Context(), models.NormalizeSymbol(req.Symbol))
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: session.ID(), AcquisitionView: view})
}

// HandleSetDate handles PUT /api/acquisitions/{id}/date
// @Summary Choose the purchase date
// @Description A weekend, holiday, today or future date is rejected and cleared.
// @Tags acquisitions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body dateRequest true "Date (YYYY-MM-DD)"
// @Success 200 {object} acquisitionResponse
// @Failure 400 {object} errorResponse
// @Router /acquisitions/{id}/date [put]
func (h *AcquisitionHandler) HandleSetDate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req dateRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	view := session.ChooseDate(r.Context(), req.Date)
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: session.ID(), AcquisitionView: view})
}

// HandleSetQuantity handles PUT /api/acquisitions/{id}/quantity
// @Summary Set the number of shares
// @Tags acquisitions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body quantityRequest true "Quantity"
// @Success 200 {object} acquisitionResponse
// @Failure 400 {object} errorResponse
// @Router /acquisitions/{id}/quantity [put]
func (h *AcquisitionHandler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}
	view := session.SetQuantity(*req.Quantity)
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: session.ID(), AcquisitionView: view})
}

// HandleSubmit handles POST /api/acquisitions/{id}/submit
// @Summary Record the purchase
// @Description Sends the purchase to the portfolio API. The session closes on success and on failure; the outcome is reported as an event.
// @Tags acquisitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} acquisitionResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /acquisitions/{id}/submit [post]
func (h *AcquisitionHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := session.Submit(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: session.ID(), AcquisitionView: view})
}

// HandleOpen handles POST /api/acquisitions/{id}/open
// @Summary Re-open a closed add-stock dialog
// @Tags acquisitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} acquisitionResponse
// @Router /acquisitions/{id}/open [post]
func (h *AcquisitionHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: session.ID(), AcquisitionView: session.Open()})
}

// HandleCancel handles DELETE /api/acquisitions/{id}
// @Summary Cancel an add-stock dialog
// @Tags acquisitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} acquisitionResponse
// @Failure 409 {object} errorResponse
// @Router /acquisitions/{id} [delete]
func (h *AcquisitionHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.forms.CloseAcquisition(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acquisitionResponse{ID: id, AcquisitionView: view})
}

func (h *AcquisitionHandler) session(w http.ResponseWriter, r *http.Request) (*services.AcquisitionSession, bool) {
	session, err := h.forms.Acquisition(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return session, true
}
