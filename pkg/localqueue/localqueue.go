// Package localqueue is the device-local store the assistant falls back to when
// the relay cannot persist an audit record. Each key holds a JSON array that
// grows by one element per Append.
package localqueue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"

	"github.com/dgraph-io/badger/v4"
)

const module = "LocalQueue"

type Config struct {
	// Path is the directory for the database files, ignored when InMemory is set.
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     logger.ILogger
}

func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

type Queue struct {
	db *badger.DB
}

// badgerLogger routes badger's internal messages through the zap facade.
type badgerLogger struct {
	log logger.ILogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(module, fmt.Sprintf(format, args...), nil)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(module, fmt.Sprintf(format, args...), nil)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(module, fmt.Sprintf(format, args...), nil)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(module, fmt.Sprintf(format, args...), nil)
}

func Open(cfg Config) (*Queue, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent queue")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create queue directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger queue: %w", err)
	}
	return &Queue{db: db}, nil
}

// Append adds record to the array stored under key. The read and the write
// share one transaction, so concurrent appends never drop an element.
func (q *Queue) Append(key string, record interface{}) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	for {
		err = q.db.Update(func(txn *badger.Txn) error {
			items, err := readArray(txn, key)
			if err != nil {
				return err
			}
			items = append(items, raw)
			encoded, err := json.Marshal(items)
			if err != nil {
				return err
			}
			return txn.Set([]byte(key), encoded)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}

// List returns the records under key in append order; a missing key yields an empty slice.
func (q *Queue) List(key string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	err := q.db.View(func(txn *badger.Txn) error {
		var err error
		items, err = readArray(txn, key)
		return err
	})
	return items, err
}

func (q *Queue) Close() error {
	return q.db.Close()
}

func readArray(txn *badger.Txn, key string) ([]json.RawMessage, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &items)
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}
