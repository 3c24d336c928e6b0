package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/services"
)

// HealthChecker reports the health of a backing store.
type HealthChecker interface {
	Health() error
}

// NewRouter wires every endpoint. cache may be nil when no quote cache is
// configured.
func NewRouter(forms *services.FormService, cache HealthChecker, log *zap.Logger) http.Handler {
	log = logger.OrNop(log).Named("http")

	prices := NewPriceHandler(forms.Calendar(), forms.Lookup())
	acquisitions := NewAcquisitionHandler(forms)
	edits := NewEditHandler(forms)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler(forms, cache)).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(CredentialMiddleware)

	api.HandleFunc("/trading-days/{date}", prices.HandleTradingDay).Methods(http.MethodGet)
	api.HandleFunc("/quotes", prices.HandleQuote).Methods(http.MethodGet)

	api.HandleFunc("/portfolios/{portfolioId}/acquisitions", acquisitions.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/acquisitions/{id}", acquisitions.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/acquisitions/{id}", acquisitions.HandleCancel).Methods(http.MethodDelete)
	api.HandleFunc("/acquisitions/{id}/symbol", acquisitions.HandleSetSymbol).Methods(http.MethodPut)
	api.HandleFunc("/acquisitions/{id}/date", acquisitions.HandleSetDate).Methods(http.MethodPut)
	api.HandleFunc("/acquisitions/{id}/quantity", acquisitions.HandleSetQuantity).Methods(http.MethodPut)
	api.HandleFunc("/acquisitions/{id}/submit", acquisitions.HandleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/acquisitions/{id}/open", acquisitions.HandleOpen).Methods(http.MethodPost)

	api.HandleFunc("/portfolios/{portfolioId}/edits", edits.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/edits/{id}", edits.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/edits/{id}", edits.HandleCancel).Methods(http.MethodDelete)
	api.HandleFunc("/edits/{id}/fields/{field}", edits.HandleSetField).Methods(http.MethodPut)
	api.HandleFunc("/edits/{id}/submit", edits.HandleSubmit).Methods(http.MethodPost)

	return CORSMiddleware(LoggingMiddleware(log)(router))
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Cache    string `json:"cache"`
	Sessions int    `json:"sessions"`
}

// healthHandler handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func healthHandler(forms *services.FormService, cache HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:   "healthy",
			Service:  "appa",
			Cache:    "disabled",
			Sessions: forms.Sessions(),
		}
		status := http.StatusOK
		if cache != nil {
			resp.Cache = "ok"
			if err := cache.Health(); err != nil {
				resp.Status = "degraded"
				resp.Cache = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		writeJSON(w, status, resp)
	}
}
