package repository

import (
	"context"
	"errors"
	"fmt"

	"pilotbase-logbook/internal/domain/repository"

	"github.com/dgraph-io/badger/v3"
)

// BadgerKeyValueStore stores values under "namespace/key" in badger
type BadgerKeyValueStore struct {
	prefix []byte
	db     *badger.DB
}

// NewBadgerKeyValueStore wraps an open badger database
func NewBadgerKeyValueStore(db *badger.DB, namespace string) *BadgerKeyValueStore {
	return &BadgerKeyValueStore{
		prefix: []byte(namespace + "/"),
		db:     db,
	}
}

func (b *BadgerKeyValueStore) buildKey(key string) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

func (b *BadgerKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.buildKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (b *BadgerKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.buildKey(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (b *BadgerKeyValueStore) Delete(ctx context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.buildKey(key))
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (b *BadgerKeyValueStore) Clear(ctx context.Context) error {
	if err := b.db.DropPrefix(b.prefix); err != nil {
		return fmt.Errorf("clear prefix %q: %w", b.prefix, err)
	}
	return nil
}

// Close compacts an on-disk database and closes it
func (b *BadgerKeyValueStore) Close() error {
	if !b.db.Opts().InMemory {
		if err := b.db.Flatten(4); err != nil {
			b.db.Close()
			return fmt.Errorf("flatten on close: %w", err)
		}
	}
	return b.db.Close()
}
