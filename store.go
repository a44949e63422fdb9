package finbook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/sirupsen/logrus"
)

// Command is a named, pure mutation of the snapshot. Commands are applied to
// a clone of the store's cache, so a command returning an error leaves no
// trace. A command that touches several collections (a card payment paired
// with a bank withdrawal) still persists in one document write.
type Command func(*Snapshot) error

// Store owns the single backing file holding the entire application state.
//
// It keeps an in-memory cache of the last loaded or saved snapshot and
// serializes all mutation behind a mutex: the document has exactly one
// logical writer at a time, even when the host has real threads.
type Store struct {
	path string

	mu    sync.Mutex
	cache *Snapshot

	log         *logrus.Logger
	recoverHook func(error)
}

// Open ensures the backing file exists (creating the parent directory and a
// default empty snapshot when absent) and loads it. Failure to create the
// directory or file is fatal: there is no safe state to operate on, so the
// error propagates to the caller.
//
// A file that exists but cannot be parsed is NOT fatal: it is recovered to a
// fresh default, see Load.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create store directory for %q: %w", path, err)
	}

	s := &Store{path: path, log: logger}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		def := DefaultSnapshot()
		if err := s.write(def); err != nil {
			return nil, fmt.Errorf("could not initialize store file %q: %w", path, err)
		}
		s.cache = def
		s.log.WithField("path", path).Info("created new document store")
		return s, nil
	} else if err != nil {
		return nil, fmt.Errorf("could not stat store file %q: %w", path, err)
	}

	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetRecoveryHook registers a callback invoked whenever a corrupt document is
// replaced by a default one. It makes the silent-recovery product decision
// observable without changing the availability guarantee.
func (s *Store) SetRecoveryHook(hook func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recoverHook = hook
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Read returns the current in-memory snapshot. It is synchronous and does no
// I/O. Callers must treat the result as read-only; all mutation goes through
// Save.
func (s *Store) Read() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache
}

// Load re-reads the backing file and refreshes the cache.
//
// Parse failure or a failed shape check never propagates: the corrupt file is
// logged, overwritten with a fresh default snapshot, and the default is
// returned. Losing an unreadable file is the accepted cost of never
// hard-crashing on bad data. Only environment problems (the file cannot be
// read or rewritten at all) surface as errors.
func (s *Store) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read store file %q: %w", s.path, err)
	}

	snap, parseErr := decodeSnapshot(data)
	if parseErr != nil {
		s.log.WithFields(logrus.Fields{
			"path":  s.path,
			"error": parseErr.Error(),
		}).Warn("store file is corrupt, recovering to a default snapshot")
		if s.recoverHook != nil {
			s.recoverHook(parseErr)
		}
		snap = DefaultSnapshot()
		if err := s.write(snap); err != nil {
			return nil, fmt.Errorf("could not rewrite corrupt store file %q: %w", s.path, err)
		}
	}

	s.cache = snap
	return snap, nil
}

// Save applies the commands to a clone of the current snapshot, stamps
// _updatedAt, persists the whole document in a single atomic replace, and
// swaps the cache. A command error aborts the save: nothing is persisted and
// the cache is untouched.
func (s *Store) Save(commands ...Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cache.Clone()
	for _, apply := range commands {
		if err := apply(next); err != nil {
			return err
		}
	}
	next.Version = SchemaVersion
	next.UpdatedAt = Now()

	if err := s.write(next); err != nil {
		return fmt.Errorf("could not persist snapshot to %q: %w", s.path, err)
	}
	s.cache = next
	return nil
}

// Backup copies the current backing file to a timestamped sibling file and
// returns its path. Backup failure is non-fatal to normal operation; callers
// may log and continue.
func (s *Store) Backup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("could not read store file for backup: %w", err)
	}
	backupPath := fmt.Sprintf("%s.%s.bak", s.path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("could not write backup file %q: %w", backupPath, err)
	}
	s.log.WithField("backup", backupPath).Info("wrote store backup")
	return backupPath, nil
}

// write persists the snapshot with a whole-file atomic replace: the document
// is written to a temporary sibling and renamed over the backing file, so a
// crash mid-write never leaves a torn document behind.
func (s *Store) write(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// decodeSnapshot parses and shape-checks a raw document. The shape check
// probes for a numeric $._version before trusting the rest of the document:
// valid JSON that is not a snapshot (an empty object, an array, a different
// app's file) counts as corrupt.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("not valid JSON: %w", err)
	}

	jval, err := jsonpath.Get("$._version", doc)
	if err != nil {
		return nil, fmt.Errorf("missing _version: %w", err)
	}
	// jsonpath may return a list of one answer or a single answer; keep the
	// first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	version, ok := jval.(float64)
	if !ok {
		return nil, fmt.Errorf("_version is %v, want a number", jval)
	}
	if version <= 0 {
		return nil, fmt.Errorf("_version is %v, want a positive number", version)
	}

	snap := DefaultSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("not a valid snapshot document: %w", err)
	}
	return snap, nil
}
