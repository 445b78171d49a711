package domain

import "context"

// Tag labels an event; events and tags are many-to-many.
// swagger:model Tag
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TagPatch holds the fields of a partial tag update.
type TagPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// TagRepository defines the interface for tag storage.
type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	Get(ctx context.Context, id int64) (*Tag, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Tag, error)
	Update(ctx context.Context, id int64, patch *TagPatch) (*Tag, error)
	Delete(ctx context.Context, id int64) error
}

// TagService provides CRUD over tags.
type TagService interface {
	Create(ctx context.Context, t *Tag) (*Tag, error)
	Get(ctx context.Context, id int64) (*Tag, error)
	GetAll(ctx context.Context, offset, limit int) ([]*Tag, error)
	Update(ctx context.Context, id int64, patch *TagPatch) (*Tag, error)
	Delete(ctx context.Context, id int64) error
}
