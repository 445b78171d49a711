package domain

// DefaultLimit is the system-wide default page size for list queries.
const DefaultLimit = 10

// MaxLimit caps the page size a caller may request.
const MaxLimit = 1000

// Page is the paginated envelope returned by list-style service calls.
// Total is the count of rows matching the filter with no offset/limit
// applied, computed by a separate count query under the same predicate.
// swagger:model Page
type Page[T any] struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Items  []T `json:"items"`
}
