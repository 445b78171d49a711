package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"eventboard/internal/domain"
)

// dbtx is the subset of database/sql used by repositories. Both *sql.DB
// and *sql.Tx satisfy it, so the same repository code runs standalone or
// bound to a unit-of-work transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to Postgres and bounds the connection pool. The pool is
// safe for concurrent use by independent unit-of-work scopes.
func Open(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Seed ensures the rows the application depends on at runtime exist:
// the default SourceUser and an initial admin account. Creating the
// default SourceUser before any User insert is a deployment invariant.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminPasswordHash string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO source_users (id, name, description)
		VALUES ($1, 'default', 'Self registration')
		ON CONFLICT (id) DO NOTHING
	`, domain.DefaultSourceUserID)
	if err != nil {
		return fmt.Errorf("seed default source user: %w", err)
	}

	if adminEmail == "" || adminPasswordHash == "" {
		return nil
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (username, email, hashed_password, gender, is_admin, source_id)
		VALUES ('admin', $1, $2, 'not_specified', TRUE, $3)
		ON CONFLICT (username) DO NOTHING
	`, adminEmail, adminPasswordHash, domain.DefaultSourceUserID)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
