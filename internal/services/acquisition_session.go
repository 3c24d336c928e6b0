package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/models"
)

// AcquisitionSession drives one AcquisitionWorkflow against its collaborators.
// The lock is held only while a transition runs, never across a network call,
// so a newer choice can overtake an in-flight lookup.
type AcquisitionSession struct {
	id        string
	mu        sync.Mutex
	workflow  *AcquisitionWorkflow
	lookup    PriceResolver
	submitter AcquisitionSubmitter
	logger    *zap.Logger
}

func NewAcquisitionSession(id string, workflow *AcquisitionWorkflow, lookup PriceResolver, submitter AcquisitionSubmitter, log *zap.Logger) *AcquisitionSession {
	return &AcquisitionSession{
		id:        id,
		workflow:  workflow,
		lookup:    lookup,
		submitter: submitter,
		logger:    logger.OrNop(log).Named("acquisition").With(zap.String("session_id", id)),
	}
}

func (s *AcquisitionSession) ID() string { return s.id }

// View returns the current snapshot and drains pending events.
func (s *AcquisitionSession) View() models.AcquisitionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *AcquisitionSession) Open() models.AcquisitionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow.Open()
	return s.view()
}

func (s *AcquisitionSession) ChooseSymbol(ctx context.Context, symbol models.Symbol) models.AcquisitionView {
	s.mu.Lock()
	req := s.workflow.ChooseSymbol(symbol)
	s.mu.Unlock()
	return s.resolve(ctx, req)
}

func (s *AcquisitionSession) ChooseDate(ctx context.Context, date models.TradeDate) models.AcquisitionView {
	s.mu.Lock()
	req := s.workflow.ChooseDate(date)
	s.mu.Unlock()
	return s.resolve(ctx, req)
}

func (s *AcquisitionSession) SetQuantity(quantity decimal.Decimal) models.AcquisitionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow.SetQuantity(quantity)
	return s.view()
}

// Submit sends the purchase and closes the workflow whatever the outcome.
func (s *AcquisitionSession) Submit(ctx context.Context) (models.AcquisitionView, error) {
	s.mu.Lock()
	req, err := s.workflow.Submit()
	s.mu.Unlock()
	if err != nil {
		return s.View(), err
	}

	outcome := s.submitter.SubmitAcquisition(ctx, *req)
	if outcome.OK {
		s.logger.Info("stock acquisition recorded",
			zap.String("portfolio_id", req.PortfolioID),
			zap.String("symbol", req.Symbol.String()),
			zap.Stringer("buy_date", req.BuyDate),
			zap.Int64("quantity", req.Quantity))
	} else {
		s.logger.Warn("stock acquisition rejected",
			zap.String("portfolio_id", req.PortfolioID),
			zap.Int("status", outcome.Status),
			zap.String("message", outcome.Message))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow.SubmitCompleted(outcome)
	return s.view(), nil
}

// Cancel closes the workflow. It reports false while a submission is in flight.
func (s *AcquisitionSession) Cancel() (models.AcquisitionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.workflow.Cancel()
	return s.view(), ok
}

func (s *AcquisitionSession) resolve(ctx context.Context, req *models.QuoteRequest) models.AcquisitionView {
	if req != nil {
		quote := s.lookup.Resolve(ctx, req.Symbol, req.Date)

		s.mu.Lock()
		applied := s.workflow.QuoteArrived(*req, quote)
		s.mu.Unlock()
		if !applied {
			s.logger.Debug("dropped stale quote",
				zap.String("symbol", req.Symbol.String()),
				zap.Stringer("date", req.Date))
		}
	}
	return s.View()
}

func (s *AcquisitionSession) view() models.AcquisitionView {
	return models.AcquisitionView{
		AcquisitionSnapshot: s.workflow.Snapshot(),
		Events:              s.workflow.Events(),
	}
}
