package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tropicaldog17/appa/internal/db"
	"github.com/tropicaldog17/appa/internal/models"
)

type QuoteCacheServiceImpl struct {
	db     *db.DB
	source string
}

// NewQuoteCacheService migrates the cache table and returns a gorm-backed QuoteCache.
func NewQuoteCacheService(database *db.DB, source string) (*QuoteCacheServiceImpl, error) {
	if err := database.AutoMigrate(&models.QuoteCacheEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate quote cache: %w", err)
	}
	return &QuoteCacheServiceImpl{db: database, source: source}, nil
}

func (s *QuoteCacheServiceImpl) GetCachedQuote(ctx context.Context, symbol models.Symbol, date models.TradeDate) (*models.PriceQuote, error) {
	var entry models.QuoteCacheEntry
	err := s.db.WithContext(ctx).
		Where("symbol = ? AND date = ?", string(symbol), date.String()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached quote: %w", err)
	}
	quote, err := entry.Quote()
	if err != nil {
		return nil, fmt.Errorf("corrupt cached quote %d: %w", entry.ID, err)
	}
	return &quote, nil
}

// CacheQuote stores a resolved quote, replacing any earlier price for the pair.
func (s *QuoteCacheServiceImpl) CacheQuote(ctx context.Context, quote models.PriceQuote) error {
	if !quote.Resolved {
		return fmt.Errorf("refusing to cache unresolved quote for %s on %s", quote.Symbol, quote.Date)
	}
	entry := &models.QuoteCacheEntry{
		Symbol:    string(quote.Symbol),
		Date:      quote.Date.String(),
		Price:     quote.Price,
		Source:    s.source,
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "source", "created_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}
	return nil
}
