package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

const snapshotFile = "finals.json"

// DefaultDataDir is where the file engine keeps its snapshot
const DefaultDataDir = "~/.local/share/wimbledon-finals"

// snapshot is the on-disk layout of the file engine
type snapshot struct {
	Finals    map[int]final.Final `json:"finals"`
	UpdatedAt string              `json:"updated_at"`
}

// FileStore handles persistence of finals in a JSON snapshot file
type FileStore struct {
	mu      sync.Mutex
	dataDir string
}

// NewFile creates a FileStore rooted at dataDir, creating the directory if needed
func NewFile(dataDir string) (*FileStore, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, persistErr("open", 0, err, "file: get home directory")
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, persistErr("open", 0, err, "file: create data directory")
	}

	return &FileStore{
		dataDir: dataDir,
	}, nil
}

// Path returns the snapshot file location
func (s *FileStore) Path() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// load reads the snapshot; a missing file is an empty snapshot
func (s *FileStore) load() (*snapshot, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &snapshot{Finals: make(map[int]final.Final)}, nil
		}
		return nil, eris.Wrap(err, "file: read snapshot")
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, eris.Wrap(err, "file: parse snapshot")
	}
	if snap.Finals == nil {
		snap.Finals = make(map[int]final.Final)
	}
	return &snap, nil
}

// save writes the snapshot through a temp file so readers never see a partial file
func (s *FileStore) save(snap *snapshot) error {
	snap.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return eris.Wrap(err, "file: encode snapshot")
	}

	tmp, err := os.CreateTemp(s.dataDir, snapshotFile+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "file: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "file: write snapshot")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "file: close temp file")
	}

	return eris.Wrap(os.Rename(tmp.Name(), s.Path()), "file: replace snapshot")
}

func (s *FileStore) Upsert(_ context.Context, f final.Final) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return &PersistenceError{Op: "upsert", Year: f.Year, Err: err}
	}

	snap.Finals[f.Year] = f

	if err := s.save(snap); err != nil {
		return &PersistenceError{Op: "upsert", Year: f.Year, Err: err}
	}
	return nil
}

func (s *FileStore) GetByYear(_ context.Context, year int) (final.Final, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return final.Final{}, &PersistenceError{Op: "get", Year: year, Err: err}
	}

	f, ok := snap.Finals[year]
	if !ok {
		return final.Final{}, ErrNotFound
	}
	return f.Normalize(), nil
}

func (s *FileStore) Close() error {
	return nil
}
