package services

import (
	"context"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type tagService struct {
	tx domain.TxManager
}

// NewTagService creates a TagService backed by the given transaction
// manager.
func NewTagService(tx domain.TxManager) domain.TagService {
	return &tagService{tx: tx}
}

func (s *tagService) Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	if strings.TrimSpace(t.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Tags().Create(ctx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return t, nil
}

func (s *tagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag *domain.Tag
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		tag, err = uow.Tags().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	return tag, nil
}

func (s *tagService) GetAll(ctx context.Context, offset, limit int) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		tags, err = uow.Tags().FindAll(ctx, offset, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *tagService) Update(ctx context.Context, id int64, patch *domain.TagPatch) (*domain.Tag, error) {
	var tag *domain.Tag
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		tag, err = uow.Tags().Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Tags().Delete(ctx, id)
	})
}
