package services

import (
	"context"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type sourceUserService struct {
	tx domain.TxManager
}

// NewSourceUserService creates a SourceUserService backed by the given
// transaction manager.
func NewSourceUserService(tx domain.TxManager) domain.SourceUserService {
	return &sourceUserService{tx: tx}
}

func (s *sourceUserService) Create(ctx context.Context, su *domain.SourceUser) (*domain.SourceUser, error) {
	if strings.TrimSpace(su.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.SourceUsers().Create(ctx, su)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create source user: %w", err)
	}
	return su, nil
}

func (s *sourceUserService) Get(ctx context.Context, id int64) (*domain.SourceUser, error) {
	var su *domain.SourceUser
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		su, err = uow.SourceUsers().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get source user: %w", err)
	}
	if su == nil {
		return nil, domain.ErrNotFound
	}
	return su, nil
}

func (s *sourceUserService) GetAll(ctx context.Context, offset, limit int) ([]*domain.SourceUser, error) {
	var sus []*domain.SourceUser
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		sus, err = uow.SourceUsers().FindAll(ctx, offset, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list source users: %w", err)
	}
	return sus, nil
}

func (s *sourceUserService) Update(ctx context.Context, id int64, patch *domain.SourceUserPatch) (*domain.SourceUser, error) {
	var su *domain.SourceUser
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		su, err = uow.SourceUsers().Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return su, nil
}

// Delete refuses to remove the default source user new registrations
// depend on.
func (s *sourceUserService) Delete(ctx context.Context, id int64) error {
	if id == domain.DefaultSourceUserID {
		return fmt.Errorf("%w: default source user cannot be deleted", domain.ErrInvalidInput)
	}
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.SourceUsers().Delete(ctx, id)
	})
}
