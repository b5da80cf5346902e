package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// pool is the subset of *pgxpool.Pool used by PostgresStore
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, persistErr("open", 0, err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	p, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, persistErr("open", 0, err, "postgres: create pool")
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, persistErr("open", 0, err, "postgres: ping")
	}

	return &PostgresStore{pool: p}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS finals (
	year       INTEGER PRIMARY KEY,
	champion   TEXT NOT NULL,
	runner_up  TEXT NOT NULL,
	score      TEXT NOT NULL,
	sets       INTEGER NOT NULL,
	tiebreak   BOOLEAN NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the finals table.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return persistErr("migrate", 0, err, "postgres: migrate")
	}
	return nil
}

const postgresUpsert = `INSERT INTO finals (year, champion, runner_up, score, sets, tiebreak, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (year) DO UPDATE SET
	champion = EXCLUDED.champion,
	runner_up = EXCLUDED.runner_up,
	score = EXCLUDED.score,
	sets = EXCLUDED.sets,
	tiebreak = EXCLUDED.tiebreak,
	updated_at = EXCLUDED.updated_at`

func (s *PostgresStore) Upsert(ctx context.Context, f final.Final) error {
	_, err := s.pool.Exec(ctx, postgresUpsert, f.Year, f.Champion, f.RunnerUp, f.Score, f.Sets, f.Tiebreak)
	if err != nil {
		return persistErr("upsert", f.Year, err, "postgres: upsert final")
	}
	return nil
}

func (s *PostgresStore) GetByYear(ctx context.Context, year int) (final.Final, error) {
	var f final.Final
	err := s.pool.QueryRow(ctx,
		`SELECT year, champion, runner_up, score, sets, tiebreak FROM finals WHERE year = $1`, year,
	).Scan(&f.Year, &f.Champion, &f.RunnerUp, &f.Score, &f.Sets, &f.Tiebreak)
	if errors.Is(err, pgx.ErrNoRows) {
		return final.Final{}, ErrNotFound
	}
	if err != nil {
		return final.Final{}, persistErr("get", year, err, "postgres: get final")
	}
	return f.Normalize(), nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
