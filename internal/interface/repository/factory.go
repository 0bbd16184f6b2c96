package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"pilotbase-logbook/internal/domain/repository"
	"pilotbase-logbook/internal/infrastructure/config"
	"pilotbase-logbook/internal/infrastructure/persistence"

	"github.com/spf13/afero"
)

// NewKeyValueStore creates the backing store selected by cfg.StoreBackend.
//
// Supported backends:
//
//	"file"     - one file per key under DataDir/namespace (default)
//	"sqlite"   - SQLite database at DataDir/pilotbase.db
//	"badger"   - badger database in DataDir/badger
//	"mongo"    - MongoDB collection kv_store
//	"postgres" - PostgreSQL table kv_store via GORM
//	"memory"   - in-memory (ephemeral, for testing)
func NewKeyValueStore(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.StoreBackend {
	case "file", "":
		return NewFileKeyValueStore(afero.NewOsFs(), cfg.DataDir, cfg.StoreNamespace)
	case "memory":
		return NewMemoryKeyValueStore(), nil
	case "sqlite":
		db, err := persistence.OpenSQLite(filepath.Join(cfg.DataDir, "pilotbase.db"))
		if err != nil {
			return nil, err
		}
		s, err := NewSQLiteKeyValueStore(db, cfg.StoreNamespace)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	case "badger":
		db, err := persistence.OpenBadger(filepath.Join(cfg.DataDir, "badger"))
		if err != nil {
			return nil, err
		}
		return NewBadgerKeyValueStore(db, cfg.StoreNamespace), nil
	case "mongo":
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			return nil, err
		}
		s, err := NewMongoKeyValueStore(ctx, db, cfg.StoreNamespace)
		if err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
		return s, nil
	case "postgres":
		db, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			return nil, err
		}
		s, err := NewGormKeyValueStore(db, cfg.StoreNamespace)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, sqlite, badger, mongo, postgres, memory)", cfg.StoreBackend)
	}
}
