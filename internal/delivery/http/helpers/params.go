package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"eventboard/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseOffsetLimit reads offset and limit from the query string.
// Invalid or missing values fall back to offset 0 and the default
// limit; limit is clamped to the maximum.
func ParseOffsetLimit(r *http.Request) (offset, limit int) {
	offset = 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	limit = domain.DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
			if limit > domain.MaxLimit {
				limit = domain.MaxLimit
			}
		}
	}
	return offset, limit
}

// ParseID reads a positive int64 path value.
func ParseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ParseDateFilter reads the date, hour, date_from, and date_to query
// parameters. Dates use YYYY-MM-DD and are interpreted as UTC; hour is
// 0-23 and only meaningful together with date.
func ParseDateFilter(r *http.Request) (domain.EventDateFilter, error) {
	var f domain.EventDateFilter
	q := r.URL.Query()

	if s := q.Get("date"); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return f, fmt.Errorf("invalid date: %s", s)
		}
		f.Date = &d
	}
	if s := q.Get("hour"); s != "" {
		h, err := strconv.Atoi(s)
		if err != nil || h < 0 || h > 23 {
			return f, fmt.Errorf("invalid hour: %s", s)
		}
		f.Hour = &h
	}
	if s := q.Get("date_from"); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return f, fmt.Errorf("invalid date_from: %s", s)
		}
		f.DateFrom = &d
	}
	if s := q.Get("date_to"); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return f, fmt.Errorf("invalid date_to: %s", s)
		}
		f.DateTo = &d
	}
	if f.Hour != nil && f.Date == nil {
		return f, fmt.Errorf("hour requires date")
	}
	if (f.DateFrom == nil) != (f.DateTo == nil) {
		return f, fmt.Errorf("date_from and date_to must be given together")
	}
	return f, nil
}
