package postgres

import (
	"context"
	"fmt"

	"cpsGrowth/domain"

	"gorm.io/gorm"
)

type ItemRepository struct {
	DB *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{
		DB: db,
	}
}

// Search returns candidate rows, optionally narrowed by a title keyword.
func (r *ItemRepository) Search(ctx context.Context, query string, limit int) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	tx := r.DB.WithContext(ctx).Model(&domain.Item{})
	if query != "" {
		tx = tx.Where("title ILIKE ?", "%"+query+"%")
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var items []domain.Item
	if err := tx.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return items, nil
}

// CreateBatch inserts imported catalog rows in one statement per chunk.
func (r *ItemRepository) CreateBatch(ctx context.Context, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(&items, 1000).Error; err != nil {
		return fmt.Errorf("failed to create items: %w", err)
	}

	return nil
}
