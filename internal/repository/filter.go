package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Scope is a composable query predicate. Repositories build their search
// queries from typed Scope constructors instead of an untyped filter map;
// nil scopes are skipped so optional filters compose cleanly with AND.
type Scope func(*gorm.DB) *gorm.DB

// ApplyScopes chains all non-nil scopes onto q.
func ApplyScopes(q *gorm.DB, scopes ...Scope) *gorm.DB {
	for _, s := range scopes {
		if s != nil {
			q = s(q)
		}
	}
	return q
}

// Contains matches field against value case-insensitively. Empty value
// yields no predicate.
func Contains(field, value string) Scope {
	if value == "" {
		return nil
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(field+" ILIKE ?", "%"+value+"%")
	}
}

// Equals matches field exactly. Empty value yields no predicate.
func Equals(field, value string) Scope {
	if value == "" {
		return nil
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(field+" = ?", value)
	}
}

// MonthRange keeps rows whose field falls inside the calendar month given as
// "YYYY-M" (e.g. "2024-1"). A malformed month yields no predicate.
func MonthRange(field, month string) Scope {
	start, end, ok := MonthBounds(month)
	if !ok {
		return nil
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(field+" >= ? AND "+field+" < ?", start, end)
	}
}

// MonthBounds parses "YYYY-M" into the half-open interval [start, end) of
// that calendar month in UTC.
func MonthBounds(month string) (time.Time, time.Time, bool) {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, time.Time{}, false
	}
	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), true
}

// DaysBeforeDeadline keeps rows whose field lies on or before now+days —
// used by the stock search to surface lots close to expiry.
func DaysBeforeDeadline(field string, days *int, now time.Time) Scope {
	if days == nil {
		return nil
	}
	deadline := now.AddDate(0, 0, *days)
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(field+" IS NOT NULL AND "+field+" <= ?", deadline)
	}
}

// DateRange keeps rows with start <= field <= end (dates as "2006-01-02").
// Both bounds are required; otherwise no predicate is produced.
func DateRange(field, start, end string) Scope {
	if start == "" || end == "" {
		return nil
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil
	}
	// end bound is inclusive for the whole day
	to = to.AddDate(0, 0, 1)
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(fmt.Sprintf("%s >= ? AND %s < ?", field, field), from, to)
	}
}

// Paginate applies the standard offset/limit pagination.
func Paginate(page, size int) Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Offset((page - 1) * size).Limit(size)
	}
}
