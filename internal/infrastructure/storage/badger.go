package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"svw.info/seatplan/internal/domain"
)

// BadgerConfig configures the embedded key-value store.
type BadgerConfig struct {
	// Path is the database directory; ignored when InMemory is set.
	Path string

	InMemory bool

	SyncWrites bool

	// Logger receives badger's internal messages. Nil silences them.
	Logger *slog.Logger

	NumVersionsToKeep int
}

func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		SyncWrites:        true,
		NumVersionsToKeep: 1,
	}
}

func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{
		InMemory:          true,
		NumVersionsToKeep: 1,
	}
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Badger stores runs as JSON values under "run/<id>".
type Badger struct {
	db *badger.DB
}

const runPrefix = "run/"

func runKey(id string) []byte { return []byte(runPrefix + id) }

// OpenBadger opens (or creates) a run store.
func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(max(cfg.NumVersionsToKeep, 1))
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Close() error { return b.db.Close() }

func (b *Badger) Save(ctx context.Context, r *domain.Run) error {
	if r == nil {
		return ErrInvalidRun
	}
	if err := checkID(r.ID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", r.ID, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(r.ID), data)
	})
}

func (b *Badger) Load(ctx context.Context, id string) (*domain.Run, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out domain.Run
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	return &out, nil
}

func (b *Badger) List(ctx context.Context) ([]domain.RunMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.RunMeta
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(runPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r domain.Run
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, r.Meta())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortMeta(out)
	return out, nil
}
