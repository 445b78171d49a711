package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type sourceUserRepository struct {
	DB dbtx
}

// NewSourceUserRepository returns a domain.SourceUserRepository
// implemented with Postgres.
func NewSourceUserRepository(db dbtx) domain.SourceUserRepository {
	return &sourceUserRepository{DB: db}
}

func (r *sourceUserRepository) Create(ctx context.Context, su *domain.SourceUser) error {
	query := `
		INSERT INTO source_users (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, su.Name, su.Description).Scan(&su.ID)
}

func (r *sourceUserRepository) Get(ctx context.Context, id int64) (*domain.SourceUser, error) {
	query := `
		SELECT id, name, description
		FROM source_users
		WHERE id = $1
	`
	su := &domain.SourceUser{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&su.ID, &su.Name, &su.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return su, nil
}

func (r *sourceUserRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.SourceUser, error) {
	query := `
		SELECT id, name, description
		FROM source_users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sus := make([]*domain.SourceUser, 0)
	for rows.Next() {
		su := &domain.SourceUser{}
		if err := rows.Scan(&su.ID, &su.Name, &su.Description); err != nil {
			return nil, err
		}
		sus = append(sus, su)
	}
	return sus, rows.Err()
}

func (r *sourceUserRepository) Update(ctx context.Context, id int64, patch *domain.SourceUserPatch) (*domain.SourceUser, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE source_users SET %s
		WHERE id = $%d
		RETURNING id, name, description
	`, strings.Join(setClauses, ", "), n)
	su := &domain.SourceUser{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&su.ID, &su.Name, &su.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return su, nil
}

func (r *sourceUserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM source_users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
