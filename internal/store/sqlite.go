package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ldexchange/jobboard/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	company     TEXT,
	location    TEXT,
	date_posted TEXT,
	job_url     TEXT NOT NULL UNIQUE,
	description TEXT,
	level       TEXT,
	category    TEXT,
	salary      TEXT,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS jobs_created_at_idx ON jobs (created_at DESC);`

// Fixed-width UTC layout so created_at sorts and compares as text.
const (
	sqliteTimeLayout = "2006-01-02 15:04:05.000000000"
	sqliteDateLayout = "2006-01-02"
)

var sqliteDialect = dialect{
	placeholder: func(n int) string { return fmt.Sprintf("?%d", n) },
	timeArg:     func(t time.Time) any { return t.UTC().Format(sqliteTimeLayout) },
}

// sqlExecutor is satisfied by both *sql.DB and *sql.Tx.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLite is the embedded Store used for local runs and tests.
type SQLite struct {
	sqliteQuerier
	conn *sql.DB
}

// NewSQLite wraps an open database handle.
func NewSQLite(conn *sql.DB) *SQLite {
	return &SQLite{sqliteQuerier: sqliteQuerier{ex: conn}, conn: conn}
}

// EnsureSchema creates the jobs table if it does not exist.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InTx runs fn inside a single SQLite transaction.
func (s *SQLite) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(sqliteQuerier{ex: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error { return s.conn.PingContext(ctx) }

func (s *SQLite) Close() { s.conn.Close() }

type sqliteQuerier struct {
	ex sqlExecutor
}

func (q sqliteQuerier) Exists(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := q.ex.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE job_url = ?1)`, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

func (q sqliteQuerier) InsertIfAbsent(ctx context.Context, rec *model.JobRecord) (bool, error) {
	Normalize(rec)
	if err := validate(rec); err != nil {
		return false, err
	}

	var datePosted any
	if rec.DatePosted != nil {
		datePosted = rec.DatePosted.Format(sqliteDateLayout)
	}
	var salary any
	if rec.Salary != nil {
		salary = *rec.Salary
	}

	res, err := q.ex.ExecContext(ctx,
		`INSERT INTO jobs (title, company, location, date_posted, job_url, description,
		                   level, category, salary, created_at)
		 VALUES (?1, NULLIF(?2, ''), NULLIF(?3, ''), ?4, ?5, NULLIF(?6, ''), ?7, ?8, ?9, ?10)
		 ON CONFLICT (job_url) DO NOTHING`,
		rec.Title, rec.Company, rec.Location, datePosted, rec.URL, rec.Description,
		string(rec.Level), string(rec.Category), salary, rec.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("insert job id: %w", err)
	}
	rec.ID = id
	return true, nil
}

func (q sqliteQuerier) Query(ctx context.Context, f Query) ([]model.JobRecord, error) {
	clause, args := sqliteDialect.where(f)
	query := `SELECT id, title, COALESCE(company, ''), COALESCE(location, ''), date_posted,
	                 job_url, COALESCE(description, ''), COALESCE(level, ''), COALESCE(category, ''),
	                 salary, created_at
	          FROM jobs` + clause + ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT ?%d", len(args))
	}

	rows, err := q.ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("jobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.JobRecord, 0)
	for rows.Next() {
		var (
			j                  model.JobRecord
			level, category    string
			datePosted, salary sql.NullString
			createdAt          string
		)
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &datePosted,
			&j.URL, &j.Description, &level, &category,
			&salary, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("jobs scan: %w", err)
		}
		j.Level = model.Level(level)
		j.Category = model.Category(category)
		if datePosted.Valid {
			if d, err := time.Parse(sqliteDateLayout, datePosted.String); err == nil {
				j.DatePosted = &d
			}
		}
		if salary.Valid {
			s := salary.String
			j.Salary = &s
		}
		ts, err := time.Parse(sqliteTimeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("jobs scan created_at %q: %w", createdAt, err)
		}
		j.CreatedAt = ts
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (q sqliteQuerier) Locations(ctx context.Context) ([]string, error) {
	rows, err := q.ex.QueryContext(ctx,
		`SELECT DISTINCT location FROM jobs
		 WHERE location IS NOT NULL AND location <> ''
		 ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("locations query: %w", err)
	}
	defer rows.Close()

	locs := make([]string, 0)
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("locations scan: %w", err)
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

func (q sqliteQuerier) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.ex.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (q sqliteQuerier) DeleteAll(ctx context.Context) (int64, error) {
	res, err := q.ex.ExecContext(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	return res.RowsAffected()
}
