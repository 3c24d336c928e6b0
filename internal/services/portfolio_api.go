package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	apperrors "github.com/tropicaldog17/appa/internal/errors"
	"github.com/tropicaldog17/appa/internal/logger"
	"github.com/tropicaldog17/appa/internal/models"
)

const maxFailureBody = 1 << 20

// PortfolioAPIConfig configures the HTTP client for the portfolio backend.
type PortfolioAPIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64 // requests per second, <= 0 disables limiting
	RateBurst    int
	ResponsePath string // JSONPath of the price in a lookup response
}

// PortfolioAPI talks to the remote portfolio backend. Every call carries the
// credential found in its context.
type PortfolioAPI struct {
	baseURL      string
	responsePath string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *zap.Logger
}

type acquisitionPayload struct {
	PortfolioID string      `json:"portfolioId"`
	Symbol      string      `json:"symbol"`
	BuyPrice    json.Number `json:"buyPrice"`
	Quantity    int64       `json:"quantity"`
	BuyDate     string      `json:"buyDate"`
}

type portfolioEditPayload struct {
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	TotalCapital *json.Number `json:"totalCapital,omitempty"`
}

// NewPortfolioAPI creates the HTTP collaborator.
func NewPortfolioAPI(cfg PortfolioAPIConfig, log *zap.Logger) (*PortfolioAPI, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("portfolio api base url is required")
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	path := cfg.ResponsePath
	if path == "" {
		path = "$.price"
	}

	return &PortfolioAPI{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		responsePath: path,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.OrNop(log).Named("portfolio_api"),
	}, nil
}

// FetchPrice implements PriceFetcher: GET /stocks/priceAtDate?symbol=S&date=D.
func (a *PortfolioAPI) FetchPrice(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceResponse, error) {
	q := url.Values{}
	q.Set("symbol", symbol.String())
	q.Set("date", date.String())

	resp, err := a.do(ctx, http.MethodGet, "/stocks/priceAtDate?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxFailureBody))
		return nil, &apperrors.APIFailure{Status: resp.StatusCode, Detail: apperrors.ParseFailureDetail(body)}
	}

	price, err := a.extractPrice(resp.Body)
	if err != nil {
		a.logger.Debug("price missing from response", zap.String("symbol", symbol.String()), zap.Error(err))
		return &models.PriceResponse{}, nil
	}
	return &models.PriceResponse{Price: &price}, nil
}

// SubmitAcquisition implements AcquisitionSubmitter: POST /portfolioStocks/{id}.
func (a *PortfolioAPI) SubmitAcquisition(ctx context.Context, req models.AcquisitionRequest) models.SubmitOutcome {
	payload := acquisitionPayload{
		PortfolioID: req.PortfolioID,
		Symbol:      req.Symbol.String(),
		BuyPrice:    json.Number(req.BuyPrice.String()),
		Quantity:    req.Quantity,
		BuyDate:     req.BuyDate.String(),
	}
	resp, err := a.do(ctx, http.MethodPost, "/portfolioStocks/"+url.PathEscape(req.PortfolioID), payload)
	if err != nil {
		a.logger.Warn("acquisition submit failed", zap.String("portfolio_id", req.PortfolioID), zap.Error(err))
		return models.SubmitOutcome{Message: apperrors.GenericFailureMessage}
	}
	return a.outcome(resp, "acquisition")
}

// FetchPortfolio implements PortfolioFetcher: GET /portfolios/{id}.
func (a *PortfolioAPI) FetchPortfolio(ctx context.Context, portfolioID string) (*models.PortfolioBaseline, error) {
	resp, err := a.do(ctx, http.MethodGet, "/portfolios/"+url.PathEscape(portfolioID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxFailureBody))
		return nil, &apperrors.APIFailure{Status: resp.StatusCode, Detail: apperrors.ParseFailureDetail(body)}
	}

	var baseline models.PortfolioBaseline
	if err := json.NewDecoder(resp.Body).Decode(&baseline); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio %s: %w", portfolioID, err)
	}
	return &baseline, nil
}

// SubmitPortfolioEdit implements PortfolioEditor: PUT /portfolios/{id} with
// only the changed fields in the body.
func (a *PortfolioAPI) SubmitPortfolioEdit(ctx context.Context, req models.PortfolioEditRequest) models.SubmitOutcome {
	payload := portfolioEditPayload{
		Name:        req.Changes.Name,
		Description: req.Changes.Description,
	}
	if req.Changes.TotalCapital != nil {
		capital := json.Number(req.Changes.TotalCapital.String())
		payload.TotalCapital = &capital
	}
	resp, err := a.do(ctx, http.MethodPut, "/portfolios/"+url.PathEscape(req.PortfolioID), payload)
	if err != nil {
		a.logger.Warn("portfolio edit submit failed", zap.String("portfolio_id", req.PortfolioID), zap.Error(err))
		return models.SubmitOutcome{Message: apperrors.GenericFailureMessage}
	}
	return a.outcome(resp, "portfolio edit")
}

func (a *PortfolioAPI) do(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", newRequestID())
	if token, ok := CredentialFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// outcome reduces a submission response to a SubmitOutcome: transport status
// first, then a best-effort parse of the failure body.
func (a *PortfolioAPI) outcome(resp *http.Response, op string) models.SubmitOutcome {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.SubmitOutcome{OK: true, Status: resp.StatusCode}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxFailureBody))
	detail := apperrors.ParseFailureDetail(body)
	a.logger.Warn(op+" rejected",
		zap.Int("status", resp.StatusCode),
		zap.Bool("structured", detail.Parsed),
		zap.String("code", detail.Code),
		zap.String("message", detail.Message))
	return models.SubmitOutcome{
		Status:  resp.StatusCode,
		Message: detail.Notification(),
	}
}

func (a *PortfolioAPI) extractPrice(r io.Reader) (decimal.Decimal, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var body interface{}
	if err := dec.Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	v, err := jsonpath.Get(a.responsePath, body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to extract price: %w", err)
	}
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		return decimal.NewFromString(t)
	default:
		return decimal.Zero, fmt.Errorf("price value is not a number: %T", v)
	}
}
