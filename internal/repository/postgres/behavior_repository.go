package postgres

import (
	"context"
	"fmt"
	"time"

	"cpsGrowth/domain"

	"gorm.io/gorm"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{
		DB: db,
	}
}

// EventsForItem returns raw behavior rows for one item since the cutoff.
// Windowing to the exact lookback boundary happens in the aggregator.
func (r *BehaviorRepository) EventsForItem(ctx context.Context, itemID string, since time.Time) ([]domain.BehaviorEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.BehaviorEvent
	err := r.DB.WithContext(ctx).
		Where("item_id = ? AND ts >= ?", itemID, since).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load behavior events: %w", err)
	}

	return events, nil
}

// CreateBatch inserts imported behavior rows in one statement per chunk.
func (r *BehaviorRepository) CreateBatch(ctx context.Context, events []domain.BehaviorEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(events) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(&events, 1000).Error; err != nil {
		return fmt.Errorf("failed to create behavior events: %w", err)
	}

	return nil
}
