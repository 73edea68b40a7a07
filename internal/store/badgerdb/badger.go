// ABOUTME: Embedded todo store on badger using JSON documents.
// ABOUTME: Keys are type-prefixed (todo:<id>); a persisted sequence orders listings.

package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"
)

const (
	// TodoPrefix is the key prefix for todos.
	TodoPrefix = "todo:"

	// SeqKey holds the insertion sequence. It must not share TodoPrefix.
	SeqKey = "seq:todo"

	// seqBandwidth is how many sequence numbers are leased per disk write.
	seqBandwidth = 100

	// conflictRetries bounds how often a write transaction is replayed after ErrConflict.
	conflictRetries = 3
)

func init() {
	store.Register(config.BackendBadger, func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return Open(cfg.ResolvedPath())
	})
}

// document represents a todo stored in badger.
type document struct {
	ID         string    `json:"id"`
	TextBody   string    `json:"textBody"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Seq        uint64    `json:"seq"`
}

func (d *document) toModel() *models.Todo {
	return &models.Todo{
		ID:         d.ID,
		TextBody:   d.TextBody,
		IsComplete: d.IsComplete,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func fromModel(t *models.Todo) *document {
	return &document{
		ID:         t.ID,
		TextBody:   t.TextBody,
		IsComplete: t.IsComplete,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func todoKey(id string) []byte {
	return []byte(TodoPrefix + id)
}

// Store implements store.Store on a badger database.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Option configures badger before it opens.
type Option func(*badger.Options)

// WithInMemory keeps all data in memory. The path is ignored.
func WithInMemory() Option {
	return func(o *badger.Options) {
		*o = o.WithDir("").WithValueDir("").WithInMemory(true)
	}
}

// Open opens (creating if needed) a badger database at dir.
func Open(dir string, opts ...Option) (*Store, error) {
	bopts := badger.DefaultOptions(dir).WithLogger(nil)
	for _, opt := range opts {
		opt(&bopts)
	}

	if !bopts.InMemory {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	seq, err := db.GetSequence([]byte(SeqKey), seqBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sequence: %w", err)
	}
	return &Store{db: db, seq: seq}, nil
}

func (s *Store) Insert(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := todo.Clone()
	stored.Stamp()

	doc := fromModel(stored)
	n, err := s.seq.Next()
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}
	doc.Seq = n

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal todo: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(todoKey(stored.ID), encoded)
	}); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return stored, nil
}

// FindAll lists todos by insertion sequence. Key order follows ids, which are
// only ordered within one process.
func (s *Store) FindAll(ctx context.Context) ([]*models.Todo, error) {
	docs := make([]document, 0)
	prefix := []byte(TodoPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var doc document
				if err := json.Unmarshal(val, &doc); err != nil {
					return fmt.Errorf("unmarshal todo %s: %w", it.Item().Key(), err)
				}
				docs = append(docs, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Seq < docs[j].Seq })
	todos := make([]*models.Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, docs[i].toModel())
	}
	return todos, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc *document
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		doc, err = get(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// UpdateByID applies patch inside a single read-write transaction.
func (s *Store) UpdateByID(ctx context.Context, id string, patch store.Patch) (*models.Todo, error) {
	var updated *models.Todo
	err := s.write(ctx, func(txn *badger.Txn) error {
		doc, err := get(txn, id)
		if err != nil {
			return err
		}
		todo := doc.toModel()
		patch.Apply(todo)

		next := fromModel(todo)
		next.Seq = doc.Seq
		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal todo: %w", err)
		}
		if err := txn.Set(todoKey(id), encoded); err != nil {
			return err
		}
		updated = todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	var deleted *models.Todo
	err := s.write(ctx, func(txn *badger.Txn) error {
		doc, err := get(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(todoKey(id)); err != nil {
			return err
		}
		deleted = doc.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Close returns unused sequence numbers, then flushes and closes the database.
func (s *Store) Close() error {
	if err := s.seq.Release(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("release sequence: %w", err)
	}
	return s.db.Close()
}

// write runs fn in an update transaction, replaying it on write conflicts.
func (s *Store) write(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("write todo: %w", err)
}

func get(txn *badger.Txn, id string) (*document, error) {
	item, err := txn.Get(todoKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc document
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal todo: %w", err)
	}
	return &doc, nil
}
