package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type locationRepository struct {
	DB dbtx
}

// NewLocationRepository returns a domain.LocationRepository implemented
// with Postgres.
func NewLocationRepository(db dbtx) domain.LocationRepository {
	return &locationRepository{DB: db}
}

func (r *locationRepository) Create(ctx context.Context, l *domain.Location) error {
	query := `
		INSERT INTO locations (name, address, latitude, longitude, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, l.Name, l.Address, l.Latitude, l.Longitude, l.Description).Scan(&l.ID)
}

func (r *locationRepository) Get(ctx context.Context, id int64) (*domain.Location, error) {
	query := `
		SELECT id, name, address, latitude, longitude, description
		FROM locations
		WHERE id = $1
	`
	l := &domain.Location{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

func (r *locationRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Location, error) {
	query := `
		SELECT id, name, address, latitude, longitude, description
		FROM locations
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		l := &domain.Location{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.Description); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *locationRepository) Update(ctx context.Context, id int64, patch *domain.LocationPatch) (*domain.Location, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
	if patch.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", n))
		args = append(args, *patch.Address)
		n++
	}
	if patch.Latitude != nil {
		setClauses = append(setClauses, fmt.Sprintf("latitude = $%d", n))
		args = append(args, *patch.Latitude)
		n++
	}
	if patch.Longitude != nil {
		setClauses = append(setClauses, fmt.Sprintf("longitude = $%d", n))
		args = append(args, *patch.Longitude)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if n == 1 {
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE locations SET %s
		WHERE id = $%d
		RETURNING id, name, address, latitude, longitude, description
	`, strings.Join(setClauses, ", "), n)
	l := &domain.Location{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// Delete removes the location; dependent events (and their dates and
// tag links) go with it via ON DELETE CASCADE.
func (r *locationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
