// Package progress persists completed study sessions to a JSON progress log.
//
// The log is append-only: records are never edited or removed. Each save
// rewrites the whole file atomically with the previous records plus the new
// one, so the document stays plain, hand-editable JSON.
package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/studysquad/studysquad/internal/datadir"
	"github.com/studysquad/studysquad/internal/logger"
)

// Store reads and appends to the progress log at a fixed path.
// It is safe for concurrent use within one process; writers in other
// processes are not coordinated.
type Store struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store for the log at path. The file is created lazily on
// the first Append.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath resolves the progress file path in priority order:
// 1. STUDYSQUAD_PROGRESS environment variable
// 2. $XDG_DATA_HOME/studysquad/progress.json
// 3. ~/.local/share/studysquad/progress.json
func DefaultPath() (string, error) {
	return datadir.Resolve("STUDYSQUAD_PROGRESS", "progress.json")
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current log. A missing or blank file is an empty log.
// A file that is not a valid log yields ErrCorruptStore.
func (s *Store) Load() (*Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append records a session with the given topic and score, stamped with the
// current local time, and returns the new record.
func (s *Store) Append(topic string, score int) (Record, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Record{}, ErrEmptyTopic
	}
	if score < 0 {
		return Record{}, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.load()
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Topic:     topic,
		Score:     score,
		Timestamp: s.now().Local().Format(TimestampLayout),
	}
	log.Sessions = append(log.Sessions, rec)

	if err := s.write(log); err != nil {
		logger.Error("Progress save failed", "path", s.path, "err", err)
		return Record{}, err
	}

	logger.Info("Progress saved", "topic", rec.Topic, "score", rec.Score, "sessions", len(log.Sessions))
	return rec, nil
}

func (s *Store) load() (*Log, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Log{Sessions: []Record{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress file: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return &Log{Sessions: []Record{}}, nil
	}

	if err := validateLog(raw); err != nil {
		logger.Error("Progress file is corrupt", "path", s.path, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
	}

	var log Log
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
	}
	if log.Sessions == nil {
		log.Sessions = []Record{}
	}
	return &log, nil
}

// write replaces the log file via a temp file and rename so readers never
// see a partial document.
func (s *Store) write(log *Log) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrStoreWrite, err)
	}
	data = append(data, '\n')

	if err := datadir.EnsureDir(s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return nil
}
