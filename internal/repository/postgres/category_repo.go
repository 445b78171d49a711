package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

type categoryRepository struct {
	DB dbtx
}

// NewCategoryRepository returns a domain.CategoryRepository implemented
// with Postgres.
func NewCategoryRepository(db dbtx) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (name, plural_name)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.Name, c.PluralName).Scan(&c.ID)
}

func (r *categoryRepository) Get(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, plural_name
		FROM categories
		WHERE id = $1
	`
	c := &domain.Category{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.PluralName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Category, error) {
	query := `
		SELECT id, name, plural_name
		FROM categories
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.PluralName); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, id int64, patch *domain.CategoryPatch) (*domain.Category, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
	if patch.PluralName != nil {
		setClauses = append(setClauses, fmt.Sprintf("plural_name = $%d", n))
		args = append(args, *patch.PluralName)
		n++
	}
	if n == 1 {
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE categories SET %s
		WHERE id = $%d
		RETURNING id, name, plural_name
	`, strings.Join(setClauses, ", "), n)
	c := &domain.Category{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.PluralName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the category; dependent events cascade.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
