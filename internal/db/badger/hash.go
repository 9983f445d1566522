package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/dgraph-io/badger/v4"

	"github.com/kailas-cloud/snapdex/internal/db"
)

// HSet merges fields into the hash at key.
func (s *Store) HSet(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	err := s.update(func(txn *badger.Txn) error {
		return mergeHash(txn, key, fields)
	})
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// HSetMulti merges all hashes in one transaction.
func (s *Store) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}
	err := s.update(func(txn *badger.Txn) error {
		for _, item := range items {
			if err := mergeHash(txn, item.Key, item.Fields); err != nil {
				return fmt.Errorf("key %s: %w", item.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// HGetAll returns all fields of a hash, or an empty map.
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	var out map[string]string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = readHash(txn, key)
		return err
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return out, nil
}

// HGetAllMulti reads several hashes from one snapshot.
func (s *Store) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	out := make([]map[string]string, len(keys))
	err := s.db.View(func(txn *badger.Txn) error {
		for i, key := range keys {
			m, err := readHash(txn, key)
			if err != nil {
				return fmt.Errorf("key %s: %w", key, err)
			}
			out[i] = m
		}
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return out, nil
}

func readHash(txn *badger.Txn, key string) (map[string]string, error) {
	out := map[string]string{}
	entry, err := txn.Get(hashKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	err = entry.Value(func(val []byte) error {
		return json.Unmarshal(val, &out)
	})
	return out, err
}

func mergeHash(txn *badger.Txn, key string, fields map[string]string) error {
	current, err := readHash(txn, key)
	if err != nil {
		return err
	}
	maps.Copy(current, fields)
	data, err := json.Marshal(current)
	if err != nil {
		return err
	}
	return txn.Set(hashKey(key), data)
}
