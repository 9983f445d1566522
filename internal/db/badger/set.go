package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/kailas-cloud/snapdex/internal/db"
)

// SAdd adds members to a set.
func (s *Store) SAdd(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	err := s.update(func(txn *badger.Txn) error {
		for _, m := range members {
			if err := txn.Set(memberKey(key, m), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SRem removes members from a set.
func (s *Store) SRem(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	err := s.update(func(txn *badger.Txn) error {
		for _, m := range members {
			if err := txn.Delete(memberKey(key, m)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	return nil
}

// SMembers returns all members of a set in key order.
func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	var members []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		members, err = scanMembers(txn, key)
		return err
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

func scanMembers(txn *badger.Txn, key string) ([]string, error) {
	prefix := setPrefixFor(key)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var members []string
	for it.Rewind(); it.Valid(); it.Next() {
		members = append(members, string(it.Item().Key()[len(prefix):]))
	}
	return members, nil
}
