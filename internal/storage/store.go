package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// Supported engine names
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Defaults for the document store, matching the collection the dataset has always lived in
const (
	DefaultDatabase   = "wimbledonDB"
	DefaultCollection = "finalsData"
)

// ErrNotFound is returned by GetByYear when no record exists for the year
var ErrNotFound = errors.New("final not found")

// Store is a keyed persistent collection of Finals
type Store interface {
	// Upsert inserts f, or replaces every field of the record with the same year
	Upsert(ctx context.Context, f final.Final) error

	// GetByYear returns the record for year or ErrNotFound
	GetByYear(ctx context.Context, year int) (final.Final, error)

	// Close releases the underlying connection or file handles
	Close() error
}

// Migrator is implemented by engines that need schema or index setup
type Migrator interface {
	Migrate(ctx context.Context) error
}

// PersistenceError reports a connectivity or storage failure
type PersistenceError struct {
	Op   string
	Year int
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Year != 0 {
		return fmt.Sprintf("storage: %s year %d: %v", e.Op, e.Year, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, year int, err error, msg string) error {
	return &PersistenceError{Op: op, Year: year, Err: eris.Wrap(err, msg)}
}

// Config selects and configures an engine
type Config struct {
	Driver      string
	Path        string // data directory for file, database file for sqlite
	DatabaseURL string // postgres connection string or mongo URI
	Database    string
	Collection  string
}

// Open creates the configured engine and runs its migration
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case DriverMemory:
		store = NewMemory()
	case DriverFile:
		store, err = NewFile(cfg.Path)
	case DriverSQLite:
		store, err = NewSQLite(cfg.Path)
	case DriverPostgres:
		store, err = NewPostgres(ctx, cfg.DatabaseURL)
	case DriverMongo:
		store, err = NewMongo(ctx, cfg.DatabaseURL, cfg.Database, cfg.Collection)
	default:
		return nil, eris.Errorf("storage: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if m, ok := store.(Migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			store.Close() //nolint:errcheck
			return nil, err
		}
	}

	return store, nil
}
