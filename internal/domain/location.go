package domain

import "context"

// Location represents a venue. Deleting a location deletes its events.
// swagger:model Location
type Location struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
}

// LocationSummary is the short projection embedded in event listings.
// swagger:model LocationSummary
type LocationSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LocationPatch holds the fields of a partial location update.
type LocationPatch struct {
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description *string  `json:"description"`
}

// LocationRepository defines the interface for location storage.
type LocationRepository interface {
	Create(ctx context.Context, l *Location) error
	Get(ctx context.Context, id int64) (*Location, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Location, error)
	Update(ctx context.Context, id int64, patch *LocationPatch) (*Location, error)
	Delete(ctx context.Context, id int64) error
}

// LocationService provides CRUD over locations plus their event pages.
type LocationService interface {
	Create(ctx context.Context, l *Location) (*Location, error)
	Get(ctx context.Context, id int64) (*Location, error)
	GetAll(ctx context.Context, offset, limit int) ([]*Location, error)
	Update(ctx context.Context, id int64, patch *LocationPatch) (*Location, error)
	Delete(ctx context.Context, id int64) error
	GetEventsByLocation(ctx context.Context, locationID int64, offset, limit int) (*Page[*EventSummary], error)
}
