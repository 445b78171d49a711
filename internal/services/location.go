package services

import (
	"context"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type locationService struct {
	tx domain.TxManager
}

// NewLocationService creates a LocationService backed by the given
// transaction manager.
func NewLocationService(tx domain.TxManager) domain.LocationService {
	return &locationService{tx: tx}
}

func (s *locationService) Create(ctx context.Context, l *domain.Location) (*domain.Location, error) {
	if strings.TrimSpace(l.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Locations().Create(ctx, l)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return l, nil
}

func (s *locationService) Get(ctx context.Context, id int64) (*domain.Location, error) {
	var location *domain.Location
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		location, err = uow.Locations().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return location, nil
}

func (s *locationService) GetAll(ctx context.Context, offset, limit int) ([]*domain.Location, error) {
	var locations []*domain.Location
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		locations, err = uow.Locations().FindAll(ctx, offset, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (s *locationService) Update(ctx context.Context, id int64, patch *domain.LocationPatch) (*domain.Location, error) {
	var location *domain.Location
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		location, err = uow.Locations().Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationService) Delete(ctx context.Context, id int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Locations().Delete(ctx, id)
	})
}

// GetEventsByLocation pages through the upcoming events at a venue.
// A missing venue yields ErrNotFound rather than an empty page.
func (s *locationService) GetEventsByLocation(ctx context.Context, locationID int64, offset, limit int) (*domain.Page[*domain.EventSummary], error) {
	var page *domain.Page[*domain.EventSummary]
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		location, err := uow.Locations().Get(ctx, locationID)
		if err != nil {
			return fmt.Errorf("failed to get location: %w", err)
		}
		if location == nil {
			return domain.ErrNotFound
		}
		items, err := uow.Events().FindByLocation(ctx, locationID, offset, limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		total, err := uow.Events().CountByLocation(ctx, locationID)
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
