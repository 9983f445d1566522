// Package badger implements db.Store on an embedded BadgerDB for
// single-node deployments, the admin CLI and tests.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

var errClosed = errors.New("badger: store is closed")

// Config holds the location of the database.
type Config struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   *zap.Logger
}

// Store implements db.Store over BadgerDB. Hashes, plain values and set
// members live under separate key prefixes.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// zapLogger adapts zap onto badger.Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

var _ badger.Logger = (*zapLogger)(nil)

func (l *zapLogger) Errorf(msg string, args ...any)   { l.s.Errorf(msg, args...) }
func (l *zapLogger) Warningf(msg string, args ...any) { l.s.Warnf(msg, args...) }
func (l *zapLogger) Infof(msg string, args ...any)    { l.s.Infof(msg, args...) }
func (l *zapLogger) Debugf(msg string, args ...any)   { l.s.Debugf(msg, args...) }

// Open opens a BadgerDB database, creating the directory if needed.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("path is required")
		}
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = &zapLogger{s: logger.Named("badger").Sugar()}
	opts.Compression = options.None

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: bdb, logger: logger}, nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return os.MkdirAll(path, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// Ping reports whether the database is still open.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errClosed
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn("badger close failed", zap.Error(err))
	}
}

// WaitForReady returns immediately: an opened embedded store is ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Key prefixes per data type.
const (
	hashPrefix  = "h/"
	valuePrefix = "v/"
	setPrefix   = "s/"
)

func hashKey(key string) []byte  { return []byte(hashPrefix + key) }
func valueKey(key string) []byte { return []byte(valuePrefix + key) }

// setPrefixFor returns the prefix shared by all members of a set.
func setPrefixFor(key string) []byte { return []byte(setPrefix + key + "\x00") }

func memberKey(key, member string) []byte {
	return append(setPrefixFor(key), member...)
}

// maxConflictRetries bounds how often a write transaction is replayed after
// another writer committed a key it read.
const maxConflictRetries = 256

// update runs fn in a read-write transaction and replays it on
// badger.ErrConflict, so concurrent writers to one key resolve as last
// writer wins instead of failing.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := range maxConflictRetries {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		if attempt > 8 {
			time.Sleep(time.Duration(attempt) * 10 * time.Microsecond)
		}
	}
	return fmt.Errorf("gave up after %d conflicts: %w", maxConflictRetries, err)
}

// Del deletes keys of any type. Missing keys are ignored.
func (s *Store) Del(_ context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(hashKey(key)); err != nil {
				return err
			}
			if err := txn.Delete(valueKey(key)); err != nil {
				return err
			}
			members, err := scanMembers(txn, key)
			if err != nil {
				return err
			}
			for _, m := range members {
				if err := txn.Delete(memberKey(key, m)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists checks whether a key of any type exists.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		for _, k := range [][]byte{hashKey(key), valueKey(key)} {
			_, err := txn.Get(k)
			if err == nil {
				found = true
				return nil
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		members, err := scanMembers(txn, key)
		found = len(members) > 0
		return err
	})
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return found, nil
}
