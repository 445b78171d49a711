package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventboard/internal/domain"
)

// unitOfWork exposes one repository per entity type, all bound to the
// same transaction. Repositories are built lazily on first access.
type unitOfWork struct {
	tx dbtx

	sourceUsers domain.SourceUserRepository
	users       domain.UserRepository
	events      domain.EventRepository
	locations   domain.LocationRepository
	categories  domain.CategoryRepository
	tags        domain.TagRepository
}

func (u *unitOfWork) SourceUsers() domain.SourceUserRepository {
	if u.sourceUsers == nil {
		u.sourceUsers = NewSourceUserRepository(u.tx)
	}
	return u.sourceUsers
}

func (u *unitOfWork) Users() domain.UserRepository {
	if u.users == nil {
		u.users = NewUserRepository(u.tx)
	}
	return u.users
}

func (u *unitOfWork) Events() domain.EventRepository {
	if u.events == nil {
		u.events = NewEventRepository(u.tx)
	}
	return u.events
}

func (u *unitOfWork) Locations() domain.LocationRepository {
	if u.locations == nil {
		u.locations = NewLocationRepository(u.tx)
	}
	return u.locations
}

func (u *unitOfWork) Categories() domain.CategoryRepository {
	if u.categories == nil {
		u.categories = NewCategoryRepository(u.tx)
	}
	return u.categories
}

func (u *unitOfWork) Tags() domain.TagRepository {
	if u.tags == nil {
		u.tags = NewTagRepository(u.tx)
	}
	return u.tags
}

type txManager struct {
	db *sql.DB
}

// NewTxManager returns a domain.TxManager running each scope in one
// database transaction.
func NewTxManager(db *sql.DB) domain.TxManager {
	return &txManager{db: db}
}

// Do begins a transaction, hands a transaction-bound unit of work to fn,
// and commits iff fn returns nil. A returned error or a panic rolls the
// transaction back; the connection is released on every exit path.
func (m *txManager) Do(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&unitOfWork{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	done = true
	return nil
}
