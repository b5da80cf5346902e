package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "finals.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, persistErr("open", 0, err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, persistErr("open", 0, err, "sqlite: exec "+pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS finals (
	year       INTEGER PRIMARY KEY,
	champion   TEXT NOT NULL,
	runner_up  TEXT NOT NULL,
	score      TEXT NOT NULL,
	sets       INTEGER NOT NULL,
	tiebreak   INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Migrate creates the finals table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return persistErr("migrate", 0, err, "sqlite: migrate")
	}
	return nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, f final.Final) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO finals (year, champion, runner_up, score, sets, tiebreak, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		 ON CONFLICT(year) DO UPDATE SET
		   champion = excluded.champion,
		   runner_up = excluded.runner_up,
		   score = excluded.score,
		   sets = excluded.sets,
		   tiebreak = excluded.tiebreak,
		   updated_at = excluded.updated_at`,
		f.Year, f.Champion, f.RunnerUp, f.Score, f.Sets, f.Tiebreak,
	)
	if err != nil {
		return persistErr("upsert", f.Year, err, "sqlite: upsert final")
	}
	return nil
}

func (s *SQLiteStore) GetByYear(ctx context.Context, year int) (final.Final, error) {
	var f final.Final
	err := s.db.QueryRowContext(ctx,
		`SELECT year, champion, runner_up, score, sets, tiebreak FROM finals WHERE year = ?`, year,
	).Scan(&f.Year, &f.Champion, &f.RunnerUp, &f.Score, &f.Sets, &f.Tiebreak)
	if errors.Is(err, sql.ErrNoRows) {
		return final.Final{}, ErrNotFound
	}
	if err != nil {
		return final.Final{}, persistErr("get", year, err, "sqlite: get final")
	}
	return f.Normalize(), nil
}

func (s *SQLiteStore) Close() error {
	return eris.Wrap(s.db.Close(), "sqlite: close")
}
