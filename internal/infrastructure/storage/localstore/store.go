// Package localstore persists collections as JSON files in a local data
// directory, one file per key: users, reports, current_user. It stands in
// for a backend: state survives restarts of the same client but is not
// shared across machines.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	keyUsers       = "users"
	keyReports     = "reports"
	keyCurrentUser = "current_user"
)

// Store is the storage medium shared by the repositories. A single mutex
// serializes read-modify-write cycles within the process; concurrent writers
// from other processes remain last-write-wins.
type Store struct {
	dir string
	mu  sync.Mutex
	log zerolog.Logger
}

// Open ensures the data directory exists and returns a ready Store.
func Open(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create data dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read decodes the value stored under key into v. A missing file leaves v at
// its zero value.
func (s *Store) read(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(key, v)
}

func (s *Store) readLocked(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("localstore: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A torn or tampered file must not fail every subsequent read.
		// Quarantine it and let the collection restart empty.
		s.quarantine(key, err)
	}
	return nil
}

// write serializes v and swaps the file in via temp-file + rename, so a crash
// mid-write leaves either the old content or the new, never a torn file.
func (s *Store) write(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(key, v)
}

func (s *Store) writeLocked(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: encode %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("localstore: swap %s: %w", key, err)
	}
	return nil
}

// update runs a read-modify-write cycle under the store lock. v must be a
// pointer; mutate edits the decoded value in place and may return a domain
// error to abort without writing.
func (s *Store) update(key string, v any, mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readLocked(key, v); err != nil {
		return err
	}
	if err := mutate(); err != nil {
		return err
	}
	return s.writeLocked(key, v)
}

func (s *Store) remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("localstore: remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) quarantine(key string, cause error) {
	dst := fmt.Sprintf("%s.corrupt.%d", s.path(key), time.Now().Unix())
	if err := os.Rename(s.path(key), dst); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("could not quarantine corrupt store file")
		return
	}
	s.log.Error().Err(cause).Str("key", key).Str("moved_to", dst).
		Msg("corrupt store file quarantined, collection reset")
}
