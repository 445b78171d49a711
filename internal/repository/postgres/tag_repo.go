package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type tagRepository struct {
	DB dbtx
}

// NewTagRepository returns a domain.TagRepository implemented with
// Postgres.
func NewTagRepository(db dbtx) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) Create(ctx context.Context, t *domain.Tag) error {
	query := `
		INSERT INTO tags (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, t.Name, t.Description).Scan(&t.ID)
}

func (r *tagRepository) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	query := `
		SELECT id, name, description
		FROM tags
		WHERE id = $1
	`
	t := &domain.Tag{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *tagRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Tag, error) {
	query := `
		SELECT id, name, description
		FROM tags
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		t := &domain.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagRepository) Update(ctx context.Context, id int64, patch *domain.TagPatch) (*domain.Tag, error) {
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
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE tags SET %s
		WHERE id = $%d
		RETURNING id, name, description
	`, strings.Join(setClauses, ", "), n)
	t := &domain.Tag{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
