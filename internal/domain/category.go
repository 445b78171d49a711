package domain

import "context"

// Category classifies an event; every event has exactly one. Deleting a
// category deletes its events.
// swagger:model Category
type Category struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	PluralName *string `json:"plural_name"`
}

// CategoryPatch holds the fields of a partial category update.
type CategoryPatch struct {
	Name       *string `json:"name"`
	PluralName *string `json:"plural_name"`
}

// CategoryRepository defines the interface for category storage.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Get(ctx context.Context, id int64) (*Category, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Category, error)
	Update(ctx context.Context, id int64, patch *CategoryPatch) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryService provides CRUD over categories plus their event pages.
type CategoryService interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	Get(ctx context.Context, id int64) (*Category, error)
	GetAll(ctx context.Context, offset, limit int) ([]*Category, error)
	Update(ctx context.Context, id int64, patch *CategoryPatch) (*Category, error)
	Delete(ctx context.Context, id int64) error
	GetEventsByCategory(ctx context.Context, categoryID int64, offset, limit int) (*Page[*EventSummary], error)
}
