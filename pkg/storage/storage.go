// Package storage persists item collections behind a single interface
// so the rest of the program does not care whether the data lives in a
// flat file or a SQLite database.
package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/listview/pkg/loader"
	"github.com/vanderheijden86/listview/pkg/model"
)

// Store is the persistence contract for item collections.
type Store interface {
	Load(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, items []model.Item) error
	Path() string
	Close() error
}

// Open picks a backend from the path's extension: .db, .sqlite and
// .sqlite3 open a SQLite store, everything else a flat file store.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	default:
		return NewFileStore(path), nil
	}
}

// FileStore keeps the collection in a .jsonl or .json file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = loader.DefaultDataPath("")
	}
	return &FileStore{path: path}
}

// Path returns the collection file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection. A missing file is an empty collection.
func (s *FileStore) Load(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return loader.LoadItems(s.path)
}

// Save writes the collection atomically.
func (s *FileStore) Save(ctx context.Context, items []model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return loader.SaveItems(s.path, items)
}

// Close is a no-op; file stores hold no open resources.
func (s *FileStore) Close() error {
	return nil
}
