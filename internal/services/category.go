package services

import (
	"context"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type categoryService struct {
	tx domain.TxManager
}

// NewCategoryService creates a CategoryService backed by the given
// transaction manager.
func NewCategoryService(tx domain.TxManager) domain.CategoryService {
	return &categoryService{tx: tx}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Categories().Create(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	var category *domain.Category
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		category, err = uow.Categories().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (s *categoryService) GetAll(ctx context.Context, offset, limit int) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		categories, err = uow.Categories().FindAll(ctx, offset, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, patch *domain.CategoryPatch) (*domain.Category, error) {
	var category *domain.Category
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		category, err = uow.Categories().Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Categories().Delete(ctx, id)
	})
}

// GetEventsByCategory pages through the upcoming events in a category.
// A missing category yields ErrNotFound rather than an empty page.
func (s *categoryService) GetEventsByCategory(ctx context.Context, categoryID int64, offset, limit int) (*domain.Page[*domain.EventSummary], error) {
	var page *domain.Page[*domain.EventSummary]
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		category, err := uow.Categories().Get(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return domain.ErrNotFound
		}
		items, err := uow.Events().FindByCategory(ctx, categoryID, offset, limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		total, err := uow.Events().CountByCategory(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to count events: %w", err)
		}
		page = &domain.Page[*domain.EventSummary]{Total: total, Offset: offset, Limit: limit, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
