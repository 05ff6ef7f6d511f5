package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// Collection is a typed list persisted as one JSON array under a single key.
// Every write rewrites the whole array. Writers in one process are serialized;
// separate processes sharing a backend race with last-write-wins.
type Collection[T any] struct {
	store  Store
	key    string
	seed   func() []T
	create bool

	mu sync.Mutex
}

type CollectionOption[T any] func(*Collection[T])

// WithSeed returns seed() while the key is absent. The seed is only written
// together with the first mutation.
func WithSeed[T any](seed func() []T) CollectionOption[T] {
	return func(c *Collection[T]) { c.seed = seed }
}

// WithCreateOnRead writes an empty array the first time an absent key is read.
func WithCreateOnRead[T any]() CollectionOption[T] {
	return func(c *Collection[T]) { c.create = true }
}

func NewCollection[T any](store Store, key string, opts ...CollectionOption[T]) *Collection[T] {
	c := &Collection[T]{store: store, key: key}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the current items
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Mutate runs fn over the current items and persists its result. When fn
// returns an error nothing is written and the error is passed through.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(items)
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		if c.seed != nil {
			return c.seed(), nil
		}
		if c.create {
			if err := c.save(ctx, nil); err != nil {
				return nil, err
			}
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Put(ctx, c.key, data)
}
