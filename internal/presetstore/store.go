package presetstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"av1studio/internal/settings"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing catalogs must then be recreated.
const schemaVersion = 1

var (
	// ErrNotFound indicates no preset exists under the requested name.
	ErrNotFound = errors.New("preset not found")
	// ErrSchemaMismatch indicates the catalog was written by an
	// incompatible version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)

// Entry describes a catalog row without its settings payload.
type Entry struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store manages preset persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the preset catalog at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset catalog path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the catalog file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: catalog has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Save upserts a preset under name. The settings are validated before they
// are written.
func (s *Store) Save(ctx context.Context, name string, value settings.Settings) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: preset name is required", settings.ErrValidation)
	}
	if err := value.Validate(); err != nil {
		return err
	}
	data, err := settings.Marshal(value)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO presets (name, settings_toml, created_at, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET settings_toml = excluded.settings_toml, updated_at = excluded.updated_at`,
		name, string(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("save preset %q: %w", name, err)
	}
	return nil
}

// Get returns the settings stored under name.
func (s *Store) Get(ctx context.Context, name string) (settings.Settings, error) {
	name = strings.TrimSpace(name)
	var blob string
	err := s.db.QueryRowContext(ctx,
		"SELECT settings_toml FROM presets WHERE name = ?", name,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Settings{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load preset %q: %w", name, err)
	}
	return settings.Unmarshal([]byte(blob))
}

// List returns all catalog entries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, created_at, updated_at FROM presets ORDER BY updated_at DESC, name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var created, updated string
		if err := rows.Scan(&entry.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan preset row: %w", err)
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}
	return entries, nil
}

// Delete removes a preset by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	res, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
