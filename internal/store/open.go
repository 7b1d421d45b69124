package store

import (
	"context"
	"log/slog"

	"ldexchange/jobboard/internal/db"
)

// Open connects to PostgreSQL when databaseURL is set, otherwise to the
// SQLite file at sqlitePath. With neither configured it returns
// ErrUnavailable. The schema is created on first use.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	var s Store
	switch {
	case databaseURL != "":
		pool, err := db.NewPostgresPool(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		s = NewPostgres(pool)
		slog.Info("store opened", "backend", "postgres")
	case sqlitePath != "":
		conn, err := db.OpenSQLite(ctx, sqlitePath)
		if err != nil {
			return nil, err
		}
		s = NewSQLite(conn)
		slog.Info("store opened", "backend", "sqlite", "path", sqlitePath)
	default:
		return nil, ErrUnavailable
	}

	if err := s.EnsureSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
