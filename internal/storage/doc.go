// Package storage persists Finals keyed by year.
//
// Every engine implements Store with the same semantics: Upsert inserts a record
// when its year is absent and otherwise replaces every field, and GetByYear is a
// point lookup returning ErrNotFound for unknown years. Engines:
//
//   - memory: process-local map, used by tests and one-shot dry runs
//   - file: a JSON snapshot file (finals.json) under a data directory,
//     default ~/.local/share/wimbledon-finals/
//   - sqlite: modernc.org/sqlite, table finals
//   - postgres: pgx connection pool, table finals
//   - mongo: the wimbledonDB.finalsData collection with a unique year index
//
// Engine failures are reported as *PersistenceError.
package storage
