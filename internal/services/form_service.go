package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/models"
)

// FormService creates and finds the workflow sessions behind the HTTP API.
type FormService struct {
	calendar *TradingCalendar
	lookup   PriceResolver
	gateway  PortfolioGateway
	store    *SessionStore
	logger   *zap.Logger
}

func NewFormService(calendar *TradingCalendar, lookup PriceResolver, gateway PortfolioGateway, store *SessionStore, log *zap.Logger) *FormService {
	return &FormService{
		calendar: calendar,
		lookup:   lookup,
		gateway:  gateway,
		store:    store,
		logger:   logger.OrNop(log),
	}
}

func (s *FormService) Calendar() *TradingCalendar { return s.calendar }

func (s *FormService) Lookup() PriceResolver { return s.lookup }

// Sessions reports how many sessions are live.
func (s *FormService) Sessions() int { return s.store.Count() }

// StartAcquisition opens an empty add-stock dialog for a portfolio.
func (s *FormService) StartAcquisition(portfolioID string) *AcquisitionSession {
	session := NewAcquisitionSession(
		s.store.NewID(),
		NewAcquisitionWorkflow(portfolioID, s.calendar),
		s.lookup,
		s.gateway,
		s.logger,
	)
	s.store.PutAcquisition(session)
	return session
}

func (s *FormService) Acquisition(id string) (*AcquisitionSession, error) {
	return s.store.GetAcquisition(id)
}

// CloseAcquisition cancels the workflow and forgets the session.
func (s *FormService) CloseAcquisition(id string) (models.AcquisitionView, error) {
	session, err := s.store.GetAcquisition(id)
	if err != nil {
		return models.AcquisitionView{}, err
	}
	view, ok := session.Cancel()
	if !ok && view.State == models.AcquisitionSubmitting {
		return view, ErrSubmitInFlight
	}
	s.store.DeleteAcquisition(id)
	return view, nil
}

// StartEdit opens the portfolio editor and loads its baseline.
func (s *FormService) StartEdit(ctx context.Context, portfolioID string) (*EditSession, models.EditView) {
	session := NewEditSession(s.store.NewID(), NewEditWorkflow(), s.gateway, s.gateway, s.logger)
	s.store.PutEdit(session)
	return session, session.Start(ctx, portfolioID)
}

func (s *FormService) Edit(id string) (*EditSession, error) {
	return s.store.GetEdit(id)
}

func (s *FormService) CloseEdit(id string) (models.EditView, error) {
	session, err := s.store.GetEdit(id)
	if err != nil {
		return models.EditView{}, err
	}
	view, ok := session.Cancel()
	if !ok && view.State == models.EditSubmitting {
		return view, ErrSubmitInFlight
	}
	s.store.DeleteEdit(id)
	return view, nil
}
