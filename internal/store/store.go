// Package store handles SQLite persistence of recently opened splits files.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/lssstats/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// openedAtLayout is fixed-width so text ordering matches time ordering.
const openedAtLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultRecentLimit is how many files the prompt offers as shortcuts.
const DefaultRecentLimit = 9

// Store wraps SQLite access for recent-file metadata.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS recent_files (
			path TEXT PRIMARY KEY,
			game_name TEXT NOT NULL,
			category_name TEXT NOT NULL,
			opened_at TEXT NOT NULL,
			open_count INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE INDEX IF NOT EXISTS idx_recent_files_opened_at ON recent_files(opened_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordFile stores or refreshes a recently opened file.
func (s *Store) RecordFile(ctx context.Context, file model.RecentFile) error {
	if file.Path == "" {
		return fmt.Errorf("recent file path is empty")
	}
	openedAt := file.OpenedAt
	if openedAt.IsZero() {
		openedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recent_files (path, game_name, category_name, opened_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			game_name = excluded.game_name,
			category_name = excluded.category_name,
			opened_at = excluded.opened_at,
			open_count = recent_files.open_count + 1`,
		file.Path,
		file.GameName,
		file.CategoryName,
		openedAt.UTC().Format(openedAtLayout),
	)
	return err
}

// ListRecent returns up to limit files, most recently opened first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]model.RecentFile, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, game_name, category_name, opened_at, open_count
		FROM recent_files
		ORDER BY opened_at DESC, path ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var files []model.RecentFile
	for rows.Next() {
		var f model.RecentFile
		var openedAt string
		if err := rows.Scan(&f.Path, &f.GameName, &f.CategoryName, &openedAt, &f.OpenCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(openedAtLayout, openedAt)
		if err != nil {
			return nil, err
		}
		f.OpenedAt = parsed
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// Forget removes a file from the recent list. Unknown paths are ignored.
func (s *Store) Forget(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recent_files WHERE path = ?`, path)
	return err
}
