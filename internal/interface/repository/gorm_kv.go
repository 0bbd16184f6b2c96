package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilotbase-logbook/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKeyValueStore implements KeyValueStore on a SQL table through GORM
type GormKeyValueStore struct {
	db        *gorm.DB
	namespace string
}

// KVEntries GORM model for database mapping
type KVEntries struct {
	Namespace string `gorm:"column:namespace;primaryKey"`
	Key       string `gorm:"column:key;primaryKey"`
	Value     []byte `gorm:"column:value;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (KVEntries) TableName() string {
	return "kv_store"
}

// NewGormKeyValueStore migrates the kv_store table and returns the store
func NewGormKeyValueStore(db *gorm.DB, namespace string) (*GormKeyValueStore, error) {
	if err := db.AutoMigrate(&KVEntries{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_store: %w", err)
	}
	return &GormKeyValueStore{
		db:        db,
		namespace: namespace,
	}, nil
}

// Get finds the value stored under key
func (r *GormKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntries
	result := r.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", r.namespace, key).
		First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, repository.ErrKeyNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, result.Error)
	}
	return entry.Value, nil
}

// Set upserts the value stored under key
func (r *GormKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	entry := KVEntries{
		Namespace: r.namespace,
		Key:       key,
		Value:     value,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)

	if result.Error != nil {
		return fmt.Errorf("failed to set %q: %w", key, result.Error)
	}
	return nil
}

// Delete removes the value stored under key
func (r *GormKeyValueStore) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", r.namespace, key).
		Delete(&KVEntries{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete %q: %w", key, result.Error)
	}
	return nil
}

// Clear removes every row in the namespace
func (r *GormKeyValueStore) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Where("namespace = ?", r.namespace).
		Delete(&KVEntries{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear namespace %q: %w", r.namespace, result.Error)
	}
	return nil
}

// Close closes the underlying connection pool
func (r *GormKeyValueStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
