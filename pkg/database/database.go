package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/types"
)

// Store reads and writes the package database document at a fixed path.
type Store struct {
	fs   types.FS
	path string
}

// New creates a Store backed by the given filesystem and database path.
func New(fs types.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the database document. A missing file yields an empty
// document. An unreadable or corrupt file also yields an empty document,
// with a warning describing what was wrong, so a damaged database never
// blocks package operations.
func (s *Store) Load() (*Document, []types.Warning) {
	logger := logging.GetLogger("database")

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", s.path).Msg("No database file, starting empty")
			return NewDocument(), nil
		}
		logger.Warn().Err(err).Str("path", s.path).Msg("Database unreadable, starting empty")
		return NewDocument(), []types.Warning{{
			Code:    string(errors.ErrDatabaseCorrupt),
			Message: "package database could not be read: " + err.Error(),
			Path:    s.path,
		}}
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		logger.Warn().Err(err).Str("path", s.path).Msg("Database corrupt, starting empty")
		return NewDocument(), []types.Warning{{
			Code:    string(errors.ErrDatabaseCorrupt),
			Message: "package database is corrupt: " + err.Error(),
			Path:    s.path,
		}}
	}

	logger.Debug().Str("path", s.path).Int("packages", doc.Len()).Msg("Database loaded")
	return doc, nil
}

// Save writes the whole document back to disk, creating the parent
// directory if needed. The write replaces the previous contents in one
// step; there are no partial updates.
func (s *Store) Save(doc *Document) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode package database: %w", err)
	}
	data = append(data, '\n')

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write package database: %w", err)
	}

	logging.GetLogger("database").Debug().
		Str("path", s.path).
		Int("packages", doc.Len()).
		Msg("Database saved")
	return nil
}
