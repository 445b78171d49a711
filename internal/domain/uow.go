package domain

import "context"

// UnitOfWork binds one repository instance per entity type to a single
// transactional session. All repository calls made through it
// participate in the same transaction.
type UnitOfWork interface {
	SourceUsers() SourceUserRepository
	Users() UserRepository
	Events() EventRepository
	Locations() LocationRepository
	Categories() CategoryRepository
	Tags() TagRepository
}

// TxManager runs fn inside one transactional scope. The scope commits
// when fn returns nil and rolls back when it returns an error or
// panics; the underlying connection is released on every exit path.
// Scopes must not be nested: each logical service operation opens
// exactly one.
type TxManager interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
}
