package domain

import (
	"context"
	"time"
)

// Event represents a listed event. ClosestDate is derived at read time
// as min(EventDate.Date) for the event; it is never stored.
// swagger:model Event
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	URL         string     `json:"url"`
	EventImage  *string    `json:"event_image"`
	LocationID  int64      `json:"location_id"`
	CategoryID  int64      `json:"category_id"`
	ClosestDate *time.Time `json:"closest_date"`

	Location *Location   `json:"location,omitempty"`
	Category *Category   `json:"category,omitempty"`
	Tags     []Tag       `json:"tags"`
	Dates    []EventDate `json:"dates"`
}

// EventDate is one scheduled occurrence of an event.
// swagger:model EventDate
type EventDate struct {
	ID      int64     `json:"id"`
	EventID int64     `json:"event_id"`
	Date    time.Time `json:"date"`
}

// NewEvent carries the fields needed to create an event together with
// its tag links and scheduled dates.
type NewEvent struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       string      `json:"price"`
	URL         string      `json:"url"`
	LocationID  int64       `json:"location_id"`
	CategoryID  int64       `json:"category_id"`
	TagIDs      []int64     `json:"tags"`
	Dates       []time.Time `json:"dates"`
}

// EventPatch holds the fields of a partial event update. Nil fields are
// left untouched. Tag and date associations are not patched here.
type EventPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	URL         *string `json:"url"`
	LocationID  *int64  `json:"location_id"`
	CategoryID  *int64  `json:"category_id"`
}

// EventSummary is the short projection used by list endpoints.
// swagger:model EventSummary
type EventSummary struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Location    LocationSummary `json:"location"`
	ClosestDate *time.Time      `json:"closest_date"`
	EventImage  *string         `json:"event_image"`
}

// SearchResult is one autocomplete hit, tagged "event" or "location".
// swagger:model SearchResult
type SearchResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// EventDateFilter selects exactly one of three filter modes, by
// precedence: Date+Hour restricts to a one-hour UTC window; Date alone
// restricts to the full UTC day; DateFrom+DateTo restricts to the
// inclusive range. With none set only the upcoming floor applies.
type EventDateFilter struct {
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
	Hour     *int
}

// Empty reports whether no filter parameter is set at all.
func (f EventDateFilter) Empty() bool {
	return f.Date == nil && f.DateFrom == nil && f.DateTo == nil && f.Hour == nil
}

// EventRepository defines the interface for event storage. All Find*
// and Count* queries apply the upcoming floor (derived closest date not
// in the past) and order ascending by closest date.
type EventRepository interface {
	Create(ctx context.Context, ne *NewEvent) (*Event, error)
	// Get returns the event with location, category, tags, and dates
	// populated, or (nil, nil) when absent.
	Get(ctx context.Context, id int64) (*Event, error)
	FindAll(ctx context.Context, offset, limit int) ([]*EventSummary, error)
	CountAll(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, patch *EventPatch) (*Event, error)
	Delete(ctx context.Context, id int64) error

	FindByLocation(ctx context.Context, locationID int64, offset, limit int) ([]*EventSummary, error)
	CountByLocation(ctx context.Context, locationID int64) (int, error)
	FindByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]*EventSummary, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	FindByDateFilter(ctx context.Context, f EventDateFilter, offset, limit int) ([]*EventSummary, error)
	CountByDateFilter(ctx context.Context, f EventDateFilter) (int, error)

	SearchTitlesAndLocations(ctx context.Context, query string) ([]SearchResult, error)
	UpdateImage(ctx context.Context, id int64, path string) (*Event, error)
}

// EventService defines the business logic for event listings.
type EventService interface {
	Create(ctx context.Context, ne *NewEvent) (*Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	GetAll(ctx context.Context, offset, limit int) (*Page[*EventSummary], error)
	GetFiltered(ctx context.Context, f EventDateFilter, offset, limit int) (*Page[*EventSummary], error)
	Update(ctx context.Context, id int64, patch *EventPatch) (*Event, error)
	Delete(ctx context.Context, id int64) error
	UpdateEventImage(ctx context.Context, id int64, imagePath string) (*Event, error)
	SearchAutocomplete(ctx context.Context, query string) ([]SearchResult, error)
}
