package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventboard/internal/domain"
)

// closestDateExpr is the derived closest-date column: the minimum
// scheduled date of the event, computed fresh on every query and never
// stored.
const closestDateExpr = `(SELECT MIN(d.date) FROM event_dates d WHERE d.event_id = e.id)`

type eventRepository struct {
	DB dbtx
}

// NewEventRepository returns a domain.EventRepository implemented with
// Postgres.
func NewEventRepository(db dbtx) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, ne *domain.NewEvent) (*domain.Event, error) {
	query := `
		INSERT INTO events (title, description, price, url, location_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, query, ne.Title, ne.Description, ne.Price, ne.URL, ne.LocationID, ne.CategoryID).Scan(&id)
	if err != nil {
		return nil, err
	}
	if len(ne.TagIDs) > 0 {
		if err := r.addTags(ctx, id, ne.TagIDs); err != nil {
			return nil, err
		}
	}
	if len(ne.Dates) > 0 {
		if err := r.addEventDates(ctx, id, ne.Dates); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

func (r *eventRepository) addTags(ctx context.Context, eventID int64, tagIDs []int64) error {
	values := make([]string, 0, len(tagIDs))
	args := make([]any, 0, len(tagIDs)+1)
	args = append(args, eventID)
	for i, tagID := range tagIDs {
		values = append(values, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, tagID)
	}
	query := `INSERT INTO event_tags (event_id, tag_id) VALUES ` + strings.Join(values, ", ")
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *eventRepository) addEventDates(ctx context.Context, eventID int64, dates []time.Time) error {
	values := make([]string, 0, len(dates))
	args := make([]any, 0, len(dates)+1)
	args = append(args, eventID)
	for i, dt := range dates {
		values = append(values, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, dt)
	}
	query := `INSERT INTO event_dates (event_id, date) VALUES ` + strings.Join(values, ", ")
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

// Get fetches the event with its location, category, tags, and dates.
// Each related set is loaded by an explicit query; nothing is lazy.
func (r *eventRepository) Get(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.description, e.price, e.url, e.event_image,
			e.location_id, e.category_id, ` + closestDateExpr + ` AS closest_date,
			l.id, l.name, l.address, l.latitude, l.longitude, l.description,
			c.id, c.name, c.plural_name
		FROM events e
		JOIN locations l ON l.id = e.location_id
		JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1
	`
	e := &domain.Event{Location: &domain.Location{}, Category: &domain.Category{}}
	var imageNull sql.NullString
	var closestNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Price, &e.URL, &imageNull,
		&e.LocationID, &e.CategoryID, &closestNull,
		&e.Location.ID, &e.Location.Name, &e.Location.Address,
		&e.Location.Latitude, &e.Location.Longitude, &e.Location.Description,
		&e.Category.ID, &e.Category.Name, &e.Category.PluralName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if imageNull.Valid {
		e.EventImage = &imageNull.String
	}
	if closestNull.Valid {
		e.ClosestDate = &closestNull.Time
	}

	if e.Tags, err = r.listTags(ctx, id); err != nil {
		return nil, err
	}
	if e.Dates, err = r.listDates(ctx, id); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) listTags(ctx context.Context, eventID int64) ([]domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id, t.name, t.description
		FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = $1
		ORDER BY t.id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *eventRepository) listDates(ctx context.Context, eventID int64) ([]domain.EventDate, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, event_id, date
		FROM event_dates
		WHERE event_id = $1
		ORDER BY date
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]domain.EventDate, 0)
	for rows.Next() {
		var d domain.EventDate
		if err := rows.Scan(&d.ID, &d.EventID, &d.Date); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *eventRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.EventSummary, error) {
	return r.findFiltered(ctx, nil, nil, offset, limit)
}

func (r *eventRepository) CountAll(ctx context.Context) (int, error) {
	return r.countFiltered(ctx, nil, nil)
}

func (r *eventRepository) FindByLocation(ctx context.Context, locationID int64, offset, limit int) ([]*domain.EventSummary, error) {
	return r.findFiltered(ctx, []string{"e.location_id = $%d"}, []any{locationID}, offset, limit)
}

func (r *eventRepository) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	return r.countFiltered(ctx, []string{"e.location_id = $%d"}, []any{locationID})
}

func (r *eventRepository) FindByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]*domain.EventSummary, error) {
	return r.findFiltered(ctx, []string{"e.category_id = $%d"}, []any{categoryID}, offset, limit)
}

func (r *eventRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	return r.countFiltered(ctx, []string{"e.category_id = $%d"}, []any{categoryID})
}

func (r *eventRepository) FindByDateFilter(ctx context.Context, f domain.EventDateFilter, offset, limit int) ([]*domain.EventSummary, error) {
	clauses, args := dateFilterClauses(f)
	return r.findFiltered(ctx, clauses, args, offset, limit)
}

func (r *eventRepository) CountByDateFilter(ctx context.Context, f domain.EventDateFilter) (int, error) {
	clauses, args := dateFilterClauses(f)
	return r.countFiltered(ctx, clauses, args)
}

// dateFilterClauses translates the filter into predicates against the
// derived closest date. Exactly one of three modes applies, by
// precedence: date+hour (one-hour UTC window), date (full UTC day),
// date_from+date_to (inclusive range). Clause placeholders are %d
// verbs filled in by findFiltered/countFiltered.
func dateFilterClauses(f domain.EventDateFilter) ([]string, []any) {
	if f.Date != nil {
		d := f.Date.UTC()
		if f.Hour != nil {
			start := time.Date(d.Year(), d.Month(), d.Day(), *f.Hour, 0, 0, 0, time.UTC)
			end := start.Add(time.Hour)
			return []string{
					closestDateExpr + " >= $%d",
					closestDateExpr + " < $%d",
				}, []any{start, end}
		}
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)
		return []string{
				closestDateExpr + " >= $%d",
				closestDateExpr + " < $%d",
			}, []any{start, end}
	}
	if f.DateFrom != nil && f.DateTo != nil {
		from := f.DateFrom.UTC()
		to := f.DateTo.UTC()
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999000, time.UTC)
		return []string{
				closestDateExpr + " >= $%d",
				closestDateExpr + " <= $%d",
			}, []any{start, end}
	}
	return nil, nil
}

// findFiltered runs the shared summary query: upcoming floor, optional
// extra predicates, ascending derived closest date, location summary
// joined in. Extra clauses carry a %d verb for their placeholder number.
func (r *eventRepository) findFiltered(ctx context.Context, extra []string, extraArgs []any, offset, limit int) ([]*domain.EventSummary, error) {
	where := []string{closestDateExpr + " >= $1"}
	args := []any{time.Now().UTC()}
	for i, clause := range extra {
		where = append(where, fmt.Sprintf(clause, len(args)+1))
		args = append(args, extraArgs[i])
	}
	args = append(args, offset, limit)
	query := fmt.Sprintf(`
		SELECT e.id, e.title, e.event_image, `+closestDateExpr+` AS closest_date,
			l.id, l.name
		FROM events e
		JOIN locations l ON l.id = e.location_id
		WHERE %s
		ORDER BY closest_date ASC
		OFFSET $%d LIMIT $%d
	`, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventSummary, 0)
	for rows.Next() {
		s := &domain.EventSummary{}
		var imageNull sql.NullString
		var closestNull sql.NullTime
		if err := rows.Scan(&s.ID, &s.Title, &imageNull, &closestNull, &s.Location.ID, &s.Location.Name); err != nil {
			return nil, err
		}
		if imageNull.Valid {
			s.EventImage = &imageNull.String
		}
		if closestNull.Valid {
			s.ClosestDate = &closestNull.Time
		}
		events = append(events, s)
	}
	return events, rows.Err()
}

// countFiltered counts rows under the same predicate findFiltered pages
// through, with no offset/limit applied.
func (r *eventRepository) countFiltered(ctx context.Context, extra []string, extraArgs []any) (int, error) {
	where := []string{closestDateExpr + " >= $1"}
	args := []any{time.Now().UTC()}
	for i, clause := range extra {
		where = append(where, fmt.Sprintf(clause, len(args)+1))
		args = append(args, extraArgs[i])
	}
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM events e
		WHERE %s
	`, strings.Join(where, " AND "))

	var count int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, id int64, patch *domain.EventPatch) (*domain.Event, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	if patch.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if patch.Price != nil {
		setClauses = append(setClauses, fmt.Sprintf("price = $%d", n))
		args = append(args, *patch.Price)
		n++
	}
	if patch.URL != nil {
		setClauses = append(setClauses, fmt.Sprintf("url = $%d", n))
		args = append(args, *patch.URL)
		n++
	}
	if patch.LocationID != nil {
		setClauses = append(setClauses, fmt.Sprintf("location_id = $%d", n))
		args = append(args, *patch.LocationID)
		n++
	}
	if patch.CategoryID != nil {
		setClauses = append(setClauses, fmt.Sprintf("category_id = $%d", n))
		args = append(args, *patch.CategoryID)
		n++
	}
	if n == 1 {
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the event; its dates and tag links cascade, favorite
// join rows are removed, users who favorited it are untouched.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateImage replaces the image path (empty path clears it) and
// returns the refreshed row.
func (r *eventRepository) UpdateImage(ctx context.Context, id int64, path string) (*domain.Event, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE events SET event_image = NULLIF($1, '') WHERE id = $2`, path, id)
	if err != nil {
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

// SearchTitlesAndLocations matches the query as a case-insensitive
// prefix against event titles and location names. Events come first,
// then locations; there is no further ranking.
func (r *eventRepository) SearchTitlesAndLocations(ctx context.Context, query string) ([]domain.SearchResult, error) {
	like := query + "%"

	results := make([]domain.SearchResult, 0)
	rows, err := r.DB.QueryContext(ctx, `SELECT id, title FROM events WHERE title ILIKE $1`, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		sr := domain.SearchResult{Type: "event"}
		if err := rows.Scan(&sr.ID, &sr.Name); err != nil {
			return nil, err
		}
		results = append(results, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	locRows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM locations WHERE name ILIKE $1`, like)
	if err != nil {
		return nil, err
	}
	defer locRows.Close()
	for locRows.Next() {
		sr := domain.SearchResult{Type: "location"}
		if err := locRows.Scan(&sr.ID, &sr.Name); err != nil {
			return nil, err
		}
		results = append(results, sr)
	}
	return results, locRows.Err()
}
