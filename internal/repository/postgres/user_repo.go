package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

const userColumns = `id, username, email, hashed_password, first_name, last_name,
	dob, gender, description, profile_image, is_admin, source_id, created_at`

type userRepository struct {
	DB dbtx
}

// NewUserRepository returns a domain.UserRepository implemented with
// Postgres.
func NewUserRepository(db dbtx) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, hashed_password, gender, is_admin, source_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	sourceID := user.SourceID
	if sourceID == nil {
		def := domain.DefaultSourceUserID
		sourceID = &def
	}
	err := r.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.HashedPassword, user.Gender, user.IsAdmin, sourceID,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return domain.ErrDuplicateEmail
			}
			return domain.ErrDuplicateUsername
		}
		return err
	}
	user.SourceID = sourceID
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *userRepository) getBy(ctx context.Context, predicate string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + predicate
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName,
		&u.DOB, &u.Gender, &u.Description, &u.ProfileImage, &u.IsAdmin, &u.SourceID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName,
			&u.DOB, &u.Gender, &u.Description, &u.ProfileImage, &u.IsAdmin, &u.SourceID, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	if patch.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", n))
		args = append(args, *patch.Username)
		n++
	}
	if patch.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", n))
		args = append(args, *patch.Email)
		n++
	}
	if patch.FirstName != nil {
		setClauses = append(setClauses, fmt.Sprintf("first_name = $%d", n))
		args = append(args, *patch.FirstName)
		n++
	}
	if patch.LastName != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_name = $%d", n))
		args = append(args, *patch.LastName)
		n++
	}
	if patch.DOB != nil {
		setClauses = append(setClauses, fmt.Sprintf("dob = $%d", n))
		args = append(args, *patch.DOB)
		n++
	}
	if patch.Gender != nil {
		setClauses = append(setClauses, fmt.Sprintf("gender = $%d", n))
		args = append(args, *patch.Gender)
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
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, domain.ErrDuplicateEmail
			}
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, path string) (*domain.User, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET profile_image = NULLIF($1, '') WHERE id = $2`, path, id)
	if err != nil {
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET hashed_password = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddFavorite links the user to the event. Re-adding an existing
// favorite, or referencing a user or event that does not exist, is a
// silent no-op.
func (r *userRepository) AddFavorite(ctx context.Context, userID, eventID int64) error {
	query := `
		INSERT INTO favorite_events (user_id, event_id)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $1)
		  AND EXISTS (SELECT 1 FROM events WHERE id = $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, eventID)
	return err
}

// RemoveFavorite unlinks the user from the event. Removing a favorite
// that is not present is a silent no-op.
func (r *userRepository) RemoveFavorite(ctx context.Context, userID, eventID int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM favorite_events WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	return err
}

func (r *userRepository) GetWithFavorites(ctx context.Context, userID int64) (*domain.UserWithFavorites, error) {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	query := `
		SELECT e.id, e.title, e.event_image, ` + closestDateExpr + ` AS closest_date,
			l.id, l.name
		FROM favorite_events fe
		JOIN events e ON e.id = fe.event_id
		JOIN locations l ON l.id = e.location_id
		WHERE fe.user_id = $1
		ORDER BY closest_date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]*domain.EventSummary, 0)
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
		favorites = append(favorites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &domain.UserWithFavorites{User: *user, Favorites: favorites}, nil
}
