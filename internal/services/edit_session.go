package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/tropicaldog17/appa/internal/errors"
	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/models"
)

// EditSession drives one EditWorkflow against the portfolio API.
type EditSession struct {
	id       string
	mu       sync.Mutex
	workflow *EditWorkflow
	fetcher  PortfolioFetcher
	editor   PortfolioEditor
	logger   *zap.Logger
}

func NewEditSession(id string, workflow *EditWorkflow, fetcher PortfolioFetcher, editor PortfolioEditor, log *zap.Logger) *EditSession {
	return &EditSession{
		id:       id,
		workflow: workflow,
		fetcher:  fetcher,
		editor:   editor,
		logger:   logger.OrNop(log).Named("portfolio_edit").With(zap.String("session_id", id)),
	}
}

func (s *EditSession) ID() string { return s.id }

func (s *EditSession) View() models.EditView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Start opens the editor and loads the baseline if the workflow asks for it.
func (s *EditSession) Start(ctx context.Context, portfolioID string) models.EditView {
	s.mu.Lock()
	req := s.workflow.Start(portfolioID)
	s.mu.Unlock()
	if req == nil {
		return s.View()
	}

	baseline, err := s.fetcher.FetchPortfolio(ctx, req.PortfolioID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || baseline == nil {
		s.logger.Warn("failed to load portfolio baseline", zap.String("portfolio_id", req.PortfolioID), zap.Error(err))
		s.workflow.BaselineFailed(req.Token)
		return s.view()
	}
	if !s.workflow.BaselineLoaded(req.Token, *baseline) {
		s.logger.Debug("dropped stale baseline", zap.String("portfolio_id", req.PortfolioID), zap.Uint64("token", req.Token))
	}
	return s.view()
}

// SetField records a user edit of one field.
func (s *EditSession) SetField(field models.PortfolioField, value string) (models.EditView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case models.FieldName:
		s.workflow.EditName(value)
	case models.FieldDescription:
		s.workflow.EditDescription(value)
	case models.FieldTotalCapital:
		s.workflow.EditCapital(value)
	default:
		return s.view(), &apperrors.ErrValidation{Field: "field", Message: "unknown portfolio field " + string(field)}
	}
	return s.view(), nil
}

// Submit sends the change-set and closes the editor whatever the outcome.
func (s *EditSession) Submit(ctx context.Context) (models.EditView, error) {
	s.mu.Lock()
	req, err := s.workflow.Submit()
	s.mu.Unlock()
	if err != nil {
		return s.View(), err
	}

	outcome := s.editor.SubmitPortfolioEdit(ctx, *req)
	if outcome.OK {
		fields := make([]string, 0, 3)
		for _, f := range req.Changes.Fields() {
			fields = append(fields, string(f))
		}
		s.logger.Info("portfolio updated", zap.String("portfolio_id", req.PortfolioID), zap.Strings("fields", fields))
	} else {
		s.logger.Warn("portfolio update rejected",
			zap.String("portfolio_id", req.PortfolioID),
			zap.Int("status", outcome.Status),
			zap.String("message", outcome.Message))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow.SubmitCompleted(outcome)
	return s.view(), nil
}

func (s *EditSession) Cancel() (models.EditView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.workflow.Cancel()
	return s.view(), ok
}

func (s *EditSession) view() models.EditView {
	return models.EditView{
		EditSnapshot: s.workflow.Snapshot(),
		Events:       s.workflow.Events(),
	}
}
