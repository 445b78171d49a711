package services

import (
	"context"
	"fmt"

	"eventboard/internal/domain"
)

type favoriteService struct {
	tx domain.TxManager
}

// NewFavoriteService creates a FavoriteService backed by the given
// transaction manager.
func NewFavoriteService(tx domain.TxManager) domain.FavoriteService {
	return &favoriteService{tx: tx}
}

// AddFavorite is idempotent: re-adding or referencing a missing user or
// event succeeds without effect.
func (s *favoriteService) AddFavorite(ctx context.Context, userID, eventID int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Users().AddFavorite(ctx, userID, eventID)
	})
}

// RemoveFavorite is idempotent: removing an absent favorite succeeds
// without effect.
func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, eventID int64) error {
	return s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		return uow.Users().RemoveFavorite(ctx, userID, eventID)
	})
}

func (s *favoriteService) GetUserFavorites(ctx context.Context, userID int64) ([]*domain.EventSummary, error) {
	var user *domain.UserWithFavorites
	err := s.tx.Do(ctx, func(uow domain.UnitOfWork) error {
		var err error
		user, err = uow.Users().GetWithFavorites(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user.Favorites, nil
}
