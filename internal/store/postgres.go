package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ldexchange/jobboard/internal/model"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(500)  NOT NULL,
	company     VARCHAR(500),
	location    VARCHAR(500),
	date_posted DATE,
	job_url     VARCHAR(2000) NOT NULL UNIQUE,
	description TEXT,
	level       VARCHAR(50),
	category    VARCHAR(100),
	salary      VARCHAR(100),
	created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS jobs_created_at_idx ON jobs (created_at DESC);`

const jobColumns = `id, title, COALESCE(company, ''), COALESCE(location, ''), date_posted,
	job_url, COALESCE(description, ''), COALESCE(level, ''), COALESCE(category, ''),
	salary, created_at`

var postgresDialect = dialect{
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	timeArg:     func(t time.Time) any { return t.UTC() },
}

// pgExecutor is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres is the PostgreSQL-backed Store.
type Postgres struct {
	pgQuerier
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pgQuerier: pgQuerier{ex: pool}, pool: pool}
}

// EnsureSchema creates the jobs table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InTx runs fn inside a single PostgreSQL transaction.
func (p *Postgres) InTx(ctx context.Context, fn func(q Querier) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{ex: tx})
	})
}

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Close() { p.pool.Close() }

type pgQuerier struct {
	ex pgExecutor
}

func (q pgQuerier) Exists(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := q.ex.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE job_url = $1)`, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

func (q pgQuerier) InsertIfAbsent(ctx context.Context, rec *model.JobRecord) (bool, error) {
	Normalize(rec)
	if err := validate(rec); err != nil {
		return false, err
	}

	var id int64
	err := q.ex.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, date_posted, job_url, description,
		                   level, category, salary, created_at)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
		 ON CONFLICT (job_url) DO NOTHING
		 RETURNING id`,
		rec.Title, rec.Company, rec.Location, rec.DatePosted, rec.URL, rec.Description,
		string(rec.Level), string(rec.Category), rec.Salary, rec.CreatedAt.UTC(),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}
	rec.ID = id
	return true, nil
}

func (q pgQuerier) Query(ctx context.Context, f Query) ([]model.JobRecord, error) {
	clause, args := postgresDialect.where(f)
	sql := `SELECT ` + jobColumns + ` FROM jobs` + clause + ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := q.ex.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("jobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.JobRecord, 0)
	for rows.Next() {
		var (
			j               model.JobRecord
			level, category string
		)
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &j.DatePosted,
			&j.URL, &j.Description, &level, &category,
			&j.Salary, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("jobs scan: %w", err)
		}
		j.Level = model.Level(level)
		j.Category = model.Category(category)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (q pgQuerier) Locations(ctx context.Context) ([]string, error) {
	rows, err := q.ex.Query(ctx,
		`SELECT DISTINCT location FROM jobs
		 WHERE location IS NOT NULL AND location <> ''
		 ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("locations query: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (q pgQuerier) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.ex.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (q pgQuerier) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := q.ex.Exec(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
