package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportExt is appended to report names that lack it
const ReportExt = ".txt"

var (
	// ErrWriteArtifact wraps every failure to create or finalize a report file
	ErrWriteArtifact = errors.New("failed to write report artifact")
	// ErrNotFound is returned by Read for unknown reports
	ErrNotFound = errors.New("report not found")
	// ErrInvalidName rejects names that are empty or reach outside the store
	ErrInvalidName = errors.New("invalid report name")
)

// Store keeps report artifacts as flat files in one directory
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory reports are written to
func (s *Store) Dir() string {
	return s.dir
}

// ReportName normalizes name to carry ReportExt
func ReportName(name string) string {
	if strings.HasSuffix(name, ReportExt) {
		return name
	}
	return name + ReportExt
}

// Path returns where the report called name lives
func (s *Store) Path(name string) (string, error) {
	name = ReportName(name)
	if name == ReportExt || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Write stores text under name and returns the final path. The file only
// appears once fully written; on failure nothing is left behind.
func (s *Store) Write(name, text string) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(text); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	committed = true

	return path, nil
}

// Read returns the report called name
func (s *Store) Read(name string) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}
	return string(data), nil
}
