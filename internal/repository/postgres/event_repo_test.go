package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(i int) *int              { return &i }

func TestDateFilterClauses(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    domain.EventDateFilter
		wantNone  bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "date plus hour restricts to one hour window",
			filter:    domain.EventDateFilter{Date: &day, Hour: ptrInt(14)},
			wantStart: time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name:      "date alone restricts to the full day",
			filter:    domain.EventDateFilter{Date: &day},
			wantStart: day,
			wantEnd:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "range end is inclusive to the last microsecond",
			filter: domain.EventDateFilter{
				DateFrom: &day,
				DateTo:   ptrTime(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
			},
			wantStart: day,
			wantEnd:   time.Date(2025, 6, 10, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name: "date takes precedence over range",
			filter: domain.EventDateFilter{
				Date:     &day,
				DateFrom: ptrTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
				DateTo:   ptrTime(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
			},
			wantStart: day,
			wantEnd:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "empty filter yields no clauses",
			filter:   domain.EventDateFilter{},
			wantNone: true,
		},
		{
			name:     "date_from alone is ignored",
			filter:   domain.EventDateFilter{DateFrom: &day},
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses, args := dateFilterClauses(tt.filter)
			if tt.wantNone {
				require.Empty(t, clauses)
				require.Empty(t, args)
				return
			}
			require.Len(t, clauses, 2)
			require.Equal(t, []any{tt.wantStart, tt.wantEnd}, args)
		})
	}
}

func TestEventRepository_FindByDateFilter(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	closest := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e.id, e.title, e.event_image`).
		WithArgs(
			sqlmock.AnyArg(), // upcoming floor, time.Now
			time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
			0, 10,
		).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "event_image", "closest_date", "id", "name"},
		).AddRow(int64(7), "Jazz Night", nil, closest, int64(3), "Blue Hall"))

	repo := NewEventRepository(db)
	got, err := repo.FindByDateFilter(ctx, domain.EventDateFilter{Date: &day, Hour: ptrInt(14)}, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(7), got[0].ID)
	require.Equal(t, "Jazz Night", got[0].Title)
	require.Nil(t, got[0].EventImage)
	require.Equal(t, closest, *got[0].ClosestDate)
	require.Equal(t, domain.LocationSummary{ID: 3, Name: "Blue Hall"}, got[0].Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CountByDateFilter(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Same window predicate as FindByDateFilter, no offset/limit.
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(
			sqlmock.AnyArg(),
			day,
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	repo := NewEventRepository(db)
	got, err := repo.CountByDateFilter(ctx, domain.EventDateFilter{Date: &day})
	require.NoError(t, err)
	require.Equal(t, 42, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_FindAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantLen int
		wantErr bool
	}{
		{
			name: "returns summaries ordered by closest date",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.title, e.event_image`).
					WithArgs(sqlmock.AnyArg(), 0, 10).
					WillReturnRows(sqlmock.NewRows(
						[]string{"id", "title", "event_image", "closest_date", "id", "name"},
					).
						AddRow(int64(1), "First", "img.png", time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC), int64(1), "Hall A").
						AddRow(int64(2), "Second", nil, time.Date(2025, 7, 2, 19, 0, 0, 0, time.UTC), int64(2), "Hall B"))
			},
			wantLen: 2,
		},
		{
			name: "no upcoming events yields empty non-nil slice",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.title, e.event_image`).
					WithArgs(sqlmock.AnyArg(), 0, 10).
					WillReturnRows(sqlmock.NewRows(
						[]string{"id", "title", "event_image", "closest_date", "id", "name"},
					))
			},
			wantLen: 0,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.title, e.event_image`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.FindAll(ctx, 0, 10)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("absent event returns nil without error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT e.id, e.title, e.description`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.Get(ctx, 99)
		require.NoError(t, err)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loads relations", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		closest := time.Date(2025, 9, 5, 20, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT e.id, e.title, e.description`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "title", "description", "price", "url", "event_image",
				"location_id", "category_id", "closest_date",
				"id", "name", "address", "latitude", "longitude", "description",
				"id", "name", "plural_name",
			}).AddRow(
				int64(7), "Jazz Night", "desc", "20 EUR", "https://ex.am/7", nil,
				int64(3), int64(2), closest,
				int64(3), "Blue Hall", "Main St 1", 52.5, 13.4, "venue",
				int64(2), "Concert", "Concerts",
			))
		mock.ExpectQuery(`SELECT t.id, t.name, t.description`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
				AddRow(int64(1), "jazz", "Jazz music"))
		mock.ExpectQuery(`SELECT id, event_id, date`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "date"}).
				AddRow(int64(11), int64(7), closest))

		repo := NewEventRepository(db)
		got, err := repo.Get(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "Jazz Night", got.Title)
		require.Equal(t, closest, *got.ClosestDate)
		require.Equal(t, "Blue Hall", got.Location.Name)
		require.Equal(t, "Concert", got.Category.Name)
		require.Len(t, got.Tags, 1)
		require.Len(t, got.Dates, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d1 := time.Date(2025, 9, 5, 20, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 9, 6, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("Jazz Night", "desc", "20 EUR", "https://ex.am/7", int64(3), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`INSERT INTO event_tags`).
		WithArgs(int64(7), int64(1), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO event_dates`).
		WithArgs(int64(7), d1, d2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// Re-fetch after create.
	mock.ExpectQuery(`SELECT e.id, e.title, e.description`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "price", "url", "event_image",
			"location_id", "category_id", "closest_date",
			"id", "name", "address", "latitude", "longitude", "description",
			"id", "name", "plural_name",
		}).AddRow(
			int64(7), "Jazz Night", "desc", "20 EUR", "https://ex.am/7", nil,
			int64(3), int64(2), d1,
			int64(3), "Blue Hall", "Main St 1", 52.5, 13.4, "venue",
			int64(2), "Concert", "Concerts",
		))
	mock.ExpectQuery(`SELECT t.id, t.name, t.description`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))
	mock.ExpectQuery(`SELECT id, event_id, date`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "date"}))

	repo := NewEventRepository(db)
	got, err := repo.Create(ctx, &domain.NewEvent{
		Title:       "Jazz Night",
		Description: "desc",
		Price:       "20 EUR",
		URL:         "https://ex.am/7",
		LocationID:  3,
		CategoryID:  2,
		TagIDs:      []int64{1, 4},
		Dates:       []time.Time{d1, d2},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
	require.Equal(t, d1, *got.ClosestDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, 7)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_SearchTitlesAndLocations(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title FROM events WHERE title ILIKE \$1`).
		WithArgs("ja%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(int64(7), "Jazz Night"))
	mock.ExpectQuery(`SELECT id, name FROM locations WHERE name ILIKE \$1`).
		WithArgs("ja%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(3), "Jahrhunderthalle"))

	repo := NewEventRepository(db)
	got, err := repo.SearchTitlesAndLocations(ctx, "ja")
	require.NoError(t, err)
	require.Equal(t, []domain.SearchResult{
		{ID: 7, Name: "Jazz Night", Type: "event"},
		{ID: 3, Name: "Jahrhunderthalle", Type: "location"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
