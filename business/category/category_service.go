package category

import (
	"context"
	"cpsGrowth/pkg/logger"
	"fmt"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]string, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// GetAllCategories lists the distinct catalog categories for the dashboard
// filter dropdown.
func (s *categoryService) GetAllCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return nil, err
	}

	return categories, nil
}
