// Package store persists the engine state as one versioned JSON document.
// Every save is a full overwrite: the document is written to a temp file and
// renamed over the previous one while an advisory lockfile is held.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/tracker"
)

// SchemaVersion is the schema written by this build.
const SchemaVersion = "1.1.0"

// DefaultFileName is the state file name inside the ecotrack home directory.
const DefaultFileName = "state.json"

// Document is the persisted state tree. The JSON keys of the three sections
// match the keys the browser application used for its storage slots.
type Document struct {
	SchemaVersion string               `json:"schemaVersion"`
	SavedAt       time.Time            `json:"savedAt,omitzero"`
	Tracker       tracker.State        `json:"ecoTrackerData"`
	Gamification  tracker.Gamification `json:"ecoTrackerGamification"`
	GreenIT       greenit.State        `json:"greenITData"`
}

// DefaultDocument returns the state of a fresh installation.
func DefaultDocument() Document {
	return Document{
		SchemaVersion: SchemaVersion,
		Tracker:       tracker.DefaultState(),
		Gamification:  tracker.DefaultGamification(),
		GreenIT:       greenit.DefaultState(),
	}
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Tracker = d.Tracker.Clone()
	out.Gamification = d.Gamification.Clone()
	out.GreenIT = d.GreenIT.Clone()
	return out
}

// Store reads and writes the state document at a fixed path.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// New returns a Store backed by filePath. An empty path resolves to
// ~/.ecotrack/state.json.
func New(filePath string) (*Store, error) {
	if filePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, ".ecotrack", DefaultFileName)
	}
	return &Store{filePath: filePath}, nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.filePath
}

// Exists reports whether a document has been saved.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// Load reads the document. A missing file yields DefaultDocument and
// found=false. Invalid JSON yields ErrStateCorrupted: callers must not
// silently start fresh over a damaged file.
func (s *Store) Load() (Document, bool, error) {
	unlock, err := s.acquireFileLock()
	if err != nil {
		return Document{}, false, fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDocument(), false, nil
		}
		return Document{}, false, fmt.Errorf("reading state file: %w", err)
	}

	doc := DefaultDocument()
	doc.SchemaVersion = ""
	if err = json.Unmarshal(data, &doc); err != nil {
		return Document{}, true, fmt.Errorf("%w: %w", ErrStateCorrupted, err)
	}
	if doc.Tracker.Activities == nil {
		doc.Tracker.Activities = []tracker.Activity{}
	}
	return doc, true, nil
}

// Save overwrites the document atomically.
func (s *Store) Save(doc Document) error {
	unlock, err := s.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.SchemaVersion == "" {
		doc.SchemaVersion = SchemaVersion
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.filePath), 0o750); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err = os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing state temp file: %w", err)
	}
	if err = os.Rename(tmpPath, s.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming state temp file: %w", err)
	}
	return nil
}

// Remove deletes the document. A missing file is not an error.
func (s *Store) Remove() error {
	unlock, err := s.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state file: %w", err)
	}
	return nil
}

func (s *Store) lockFilePath() string {
	return s.filePath + ".lock"
}

// acquireFileLock takes a cross-process advisory lockfile and returns its release func.
func (s *Store) acquireFileLock() (func(), error) {
	lockPath := s.lockFilePath()

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	const maxRetries = 10
	const retryDelay = 100 * time.Millisecond
	const staleLockAge = 30 * time.Second

	for range maxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone.
func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if isLockHeldByLiveProcess(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, err := os.ReadFile(lockPath)
	if err != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, err = fmt.Sscanf(string(pidData), "%d", &pid); err != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes for existence.
	return proc.Signal(syscall.Signal(0)) == nil
}
