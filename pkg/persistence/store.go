// Package persistence saves and loads social graphs as CSV, JSON and
// snappy-compressed JSON snapshots, and manages timestamped backups.
package persistence

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/metrics"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Format selects an on-disk representation.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatSnapshot Format = "snapshot"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown persistence format")

// ErrNoBackups is returned when restoring from an empty backup directory.
var ErrNoBackups = errors.New("no backups found")

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatSnapshot:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Store reads and writes graphs inside a data directory.
type Store struct {
	dir       string
	backupDir string
	logger    logging.Logger
	metrics   *metrics.Registry
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save events.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics sets the registry that records persistence metrics.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Store) { s.metrics = r }
}

// WithClock overrides the time source used for metadata and backup names.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store rooted at dir. Backups go to backupDir.
func NewStore(dir, backupDir string, opts ...Option) *Store {
	s := &Store{
		dir:       dir,
		backupDir: backupDir,
		logger:    logging.NewNopLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("persistence"))
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Save writes g in the given format and returns the primary file path.
func (s *Store) Save(g *storage.Graph, format Format) (string, error) {
	timer := logging.StartTimer(s.logger, "graph saved",
		logging.Format(string(format)), logging.Students(g.StudentCount()), logging.Friendships(g.FriendshipCount()))

	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	var (
		path    string
		written int64
		err     error
	)
	switch format {
	case FormatJSON:
		path = filepath.Join(s.dir, GraphJSON)
		written, err = writeAtomic(path, func(w io.Writer) error {
			return EncodeJSON(w, NewDocument(g, s.now()))
		})
	case FormatSnapshot:
		path = filepath.Join(s.dir, SnapshotFile)
		written, err = writeAtomic(path, func(w io.Writer) error {
			return EncodeSnapshot(w, NewDocument(g, s.now()))
		})
	case FormatCSV:
		path = filepath.Join(s.dir, StudentsCSV)
		var n int64
		written, err = writeAtomic(path, func(w io.Writer) error { return WriteStudentsCSV(w, g) })
		if err == nil {
			n, err = writeAtomic(filepath.Join(s.dir, FriendshipsCSV), func(w io.Writer) error {
				return WriteFriendshipsCSV(w, g)
			})
			written += n
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	s.record("save", format, err, written, 0)
	if err != nil {
		timer.EndError(err)
		return "", err
	}
	timer.End(logging.Path(path), logging.Int64("bytes", written))
	return path, nil
}

// Load reads the graph stored in the given format.
func (s *Store) Load(format Format) (*LoadResult, error) {
	timer := logging.StartTimer(s.logger, "graph loaded", logging.Format(string(format)))

	var (
		res *LoadResult
		err error
	)
	switch format {
	case FormatJSON:
		res, err = s.LoadJSON(filepath.Join(s.dir, GraphJSON))
	case FormatSnapshot:
		res, err = s.loadFile(filepath.Join(s.dir, SnapshotFile), func(r io.Reader) (*LoadResult, error) {
			res, _, err := DecodeSnapshot(r)
			return res, err
		})
	case FormatCSV:
		res, err = s.loadCSV()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	warnings := 0
	if res != nil {
		warnings = len(res.Warnings)
	}
	s.record("load", format, err, 0, warnings)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	for _, w := range res.Warnings {
		s.logger.Warn("record skipped", logging.String("record", w.String()))
	}
	timer.End(logging.Students(res.Graph.StudentCount()), logging.Friendships(res.Graph.FriendshipCount()),
		logging.Count(warnings))
	return res, nil
}

// LoadJSON reads a JSON document from an arbitrary path.
func (s *Store) LoadJSON(path string) (*LoadResult, error) {
	return s.loadFile(path, func(r io.Reader) (*LoadResult, error) {
		res, _, err := DecodeJSON(r)
		return res, err
	})
}

func (s *Store) loadCSV() (*LoadResult, error) {
	students, err := os.Open(filepath.Join(s.dir, StudentsCSV))
	if err != nil {
		return nil, err
	}
	defer students.Close()

	friendships, err := os.Open(filepath.Join(s.dir, FriendshipsCSV))
	if err != nil {
		return nil, err
	}
	defer friendships.Close()

	return ReadCSV(students, friendships)
}

func (s *Store) loadFile(path string, decode func(io.Reader) (*LoadResult, error)) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// Backup writes a JSON copy named backup_YYYYMMDD_HHMMSS.json into the
// backup directory and returns its path.
func (s *Store) Backup(g *storage.Graph) (string, error) {
	if err := os.MkdirAll(s.backupDir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	now := s.now()
	path := filepath.Join(s.backupDir, backupPrefix+now.Format(backupTimeLayout)+".json")
	written, err := writeAtomic(path, func(w io.Writer) error {
		return EncodeJSON(w, NewDocument(g, now))
	})
	s.record("backup", FormatJSON, err, written, 0)
	if err != nil {
		s.logger.Error("backup failed", logging.Path(path), logging.Error(err))
		return "", err
	}

	s.logger.Info("backup written", logging.Path(path), logging.Students(g.StudentCount()))
	return path, nil
}

// ListBackups returns backup file paths, oldest first.
func (s *Store) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	backups := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		backups = append(backups, filepath.Join(s.backupDir, name))
	}
	// the timestamp layout sorts lexically
	slices.Sort(backups)
	return backups, nil
}

// RestoreLatest loads the newest backup.
func (s *Store) RestoreLatest() (*LoadResult, error) {
	backups, err := s.ListBackups()
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}
	latest := backups[len(backups)-1]
	s.logger.Info("restoring backup", logging.Path(latest))
	return s.LoadJSON(latest)
}

func (s *Store) record(op string, format Format, err error, written int64, warnings int) {
	if s.metrics != nil {
		s.metrics.RecordPersistence(op, string(format), err, written, warnings)
	}
}

// writeAtomic writes through a temporary file and renames it into place.
func writeAtomic(path string, write func(io.Writer) error) (int64, error) {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	cw := &countingWriter{w: f}
	if err := write(cw); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
