package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pilotbase-logbook/internal/domain/repository"
)

// SQLiteKeyValueStore stores values in a single SQLite table.
//
// Table:
//
//	kv_store(namespace, key, value, updated_at)  PRIMARY KEY (namespace, key)
type SQLiteKeyValueStore struct {
	db        *sql.DB
	namespace string
}

// NewSQLiteKeyValueStore creates the kv_store table if needed
func NewSQLiteKeyValueStore(db *sql.DB, namespace string) (*SQLiteKeyValueStore, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv_store (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteKeyValueStore{db: db, namespace: namespace}, nil
}

func (s *SQLiteKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE namespace = ? AND key = ?",
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		s.namespace, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKeyValueStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM kv_store WHERE namespace = ? AND key = ?",
		s.namespace, key,
	)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKeyValueStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE namespace = ?", s.namespace); err != nil {
		return fmt.Errorf("clear namespace %q: %w", s.namespace, err)
	}
	return nil
}

func (s *SQLiteKeyValueStore) Close() error {
	return s.db.Close()
}
