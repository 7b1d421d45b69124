// Package store persists classified job records.
//
// The job URL is the only identity key: a record is inserted at most once
// per URL and never updated afterwards. Two backends share this contract,
// PostgreSQL (pgx) and SQLite.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ldexchange/jobboard/internal/model"
)

// ErrUnavailable is returned when no database is configured. Callers must
// surface it rather than treat it as an empty result.
var ErrUnavailable = errors.New("store unavailable: set DATABASE_URL or SQLITE_PATH")

// Column limits carried over from the original jobs schema.
const (
	maxTextLen = 500
	maxURLLen  = 2000
)

// Querier is the set of operations available both on a Store and inside a
// transaction.
type Querier interface {
	// Exists reports whether a record with exactly this URL is stored.
	Exists(ctx context.Context, url string) (bool, error)
	// InsertIfAbsent stores rec unless its URL is already present. It
	// returns true and sets rec.ID when a row was created; a duplicate URL
	// returns false with a nil error.
	InsertIfAbsent(ctx context.Context, rec *model.JobRecord) (bool, error)
	// Query returns matching records, newest first.
	Query(ctx context.Context, q Query) ([]model.JobRecord, error)
	// Locations returns the distinct non-empty locations, sorted.
	Locations(ctx context.Context) ([]string, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
	// DeleteAll removes every record and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// Store is a Querier bound to a live database.
type Store interface {
	Querier
	// InTx runs fn inside one transaction. It commits when fn returns nil
	// and rolls back otherwise.
	InTx(ctx context.Context, fn func(q Querier) error) error
	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

// Query is the SQL-translatable part of a record filter. Zero values mean
// "no constraint". Location matching is not expressible here; see the view
// package.
type Query struct {
	Levels     []model.Level
	Categories []model.Category
	// Search is a case-insensitive substring over title or company.
	Search string
	// Since keeps records created at or after this instant.
	Since time.Time
	Limit int
}

// Normalize trims and truncates rec's text fields to the column limits.
func Normalize(rec *model.JobRecord) {
	rec.Title = truncate(strings.TrimSpace(rec.Title), maxTextLen)
	rec.Company = truncate(strings.TrimSpace(rec.Company), maxTextLen)
	rec.Location = truncate(strings.TrimSpace(rec.Location), maxTextLen)
	rec.URL = NormalizeURL(rec.URL)
}

// NormalizeURL returns the form of url that is stored and looked up: trimmed
// and truncated to the column limit.
func NormalizeURL(url string) string {
	return truncate(strings.TrimSpace(url), maxURLLen)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func validate(rec *model.JobRecord) error {
	if rec.URL == "" {
		return fmt.Errorf("job record: url is required")
	}
	if rec.Title == "" {
		return fmt.Errorf("job record %s: title is required", rec.URL)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return nil
}

// dialect captures what differs between the SQL backends.
type dialect struct {
	// placeholder renders the n-th (1-based) bind parameter. It must allow
	// the same parameter to be referenced twice.
	placeholder func(n int) string
	timeArg     func(t time.Time) any
}

// where builds the WHERE clause for q.
func (d dialect) where(q Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return d.placeholder(len(args))
	}

	if len(q.Levels) > 0 {
		marks := make([]string, len(q.Levels))
		for i, l := range q.Levels {
			marks[i] = next(string(l))
		}
		conds = append(conds, "level IN ("+strings.Join(marks, ", ")+")")
	}
	if len(q.Categories) > 0 {
		marks := make([]string, len(q.Categories))
		for i, c := range q.Categories {
			marks[i] = next(string(c))
		}
		conds = append(conds, "category IN ("+strings.Join(marks, ", ")+")")
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		p := next(pattern)
		conds = append(conds, fmt.Sprintf(
			`(LOWER(title) LIKE %s ESCAPE '\' OR LOWER(COALESCE(company, '')) LIKE %s ESCAPE '\')`, p, p))
	}
	if !q.Since.IsZero() {
		conds = append(conds, "created_at >= "+next(d.timeArg(q.Since)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
