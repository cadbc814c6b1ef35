package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/listview/pkg/model"
)

const currentSchemaVersion = 1

// SQLiteStore keeps the collection in a SQLite database. It suits
// collections too large to rewrite as a flat file on every save.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (and if needed creates) a SQLite-backed store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			value INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL DEFAULT '',
			selected INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the collection in id order.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, value, date, selected
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		var category string
		var selected int

		if err := rows.Scan(&item.ID, &item.Name, &category, &item.Value, &item.Date, &selected); err != nil {
			return nil, err
		}
		item.Category = model.Category(category)
		item.Selected = selected == 1

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := model.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the stored collection.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStore) Save(ctx context.Context, items []model.Item) error {
	if err := model.ValidateItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, name, category, value, date, selected)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		selected := 0
		if item.Selected {
			selected = 1
		}
		if _, err := stmt.ExecContext(ctx, item.ID, item.Name, string(item.Category), item.Value, item.Date, selected); err != nil {
			return err
		}
	}

	return tx.Commit()
}
