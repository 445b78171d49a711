package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventboard/internal/domain"
)

type eventService struct {
	tx      domain.TxManager
	storage domain.FileStorage
	logger  *slog.Logger
}

// NewEventService creates an EventService backed by the given
// transaction manager and image storage.
func NewEventService(tx domain.TxManager, storage domain.FileStorage, logger *slog.Logger) domain.EventService {
	return &eventService{tx: tx, storage: storage, logger: logger}
}

func (s *eventService) Create(ctx context.Context, ne *domain.NewEvent) (*domain.Event, error) {
	if strings.TrimSpace(ne.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	var event *domain.Event
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		event, err = uow.Events().Create(ctx, ne)
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	var event *domain.Event
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		event, err = uow.Events().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

// GetAll lists upcoming events as a page envelope. Items and total are
// read in the same scope so they describe one consistent snapshot.
func (s *eventService) GetAll(ctx context.Context, offset, limit int) (*domain.Page[*domain.EventSummary], error) {
	var page *domain.Page[*domain.EventSummary]
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		items, err := uow.Events().FindAll(ctx, offset, limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		total, err := uow.Events().CountAll(ctx)
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

// GetFiltered lists upcoming events matching the date filter. An empty
// filter is equivalent to GetAll.
func (s *eventService) GetFiltered(ctx context.Context, f domain.EventDateFilter, offset, limit int) (*domain.Page[*domain.EventSummary], error) {
	if f.Empty() {
		return s.GetAll(ctx, offset, limit)
	}
	var page *domain.Page[*domain.EventSummary]
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		items, err := uow.Events().FindByDateFilter(ctx, f, offset, limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		total, err := uow.Events().CountByDateFilter(ctx, f)
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

func (s *eventService) Update(ctx context.Context, id int64, patch *domain.EventPatch) (*domain.Event, error) {
	var event *domain.Event
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		event, err = uow.Events().Update(ctx, id, patch)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Events().Delete(ctx, id)
	})
}

// UpdateEventImage points the event at the new image. The previous file
// is removed best effort after the row is committed; a leftover file is
// logged and tolerated.
func (s *eventService) UpdateEventImage(ctx context.Context, id int64, imagePath string) (*domain.Event, error) {
	var event *domain.Event
	var oldPath *string
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		current, err := uow.Events().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		if current == nil {
			return domain.ErrNotFound
		}
		oldPath = current.EventImage
		event, err = uow.Events().UpdateImage(ctx, id, imagePath)
		if err != nil {
			return fmt.Errorf("failed to update event image: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if oldPath != nil && *oldPath != imagePath {
		if err := s.storage.Remove(*oldPath); err != nil {
			s.logger.Warn("failed to remove old event image", "path", *oldPath, "error", err)
		}
	}
	return event, nil
}

func (s *eventService) SearchAutocomplete(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	var results []domain.SearchResult
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		results, err = uow.Events().SearchTitlesAndLocations(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to search: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
