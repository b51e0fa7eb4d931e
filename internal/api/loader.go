package api

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/odonto-flow/internal/common"
)

// FetchFunc retrieves a full collection from the server.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Loader keeps the last successfully fetched snapshot of a collection.
// Starting a new Load cancels the one in flight, and a superseded load never
// replaces the snapshot.
type Loader[T any] struct {
	loadedAt time.Time
	fetch    FetchFunc[T]
	cancel   context.CancelFunc
	snapshot []T
	seq      uint64
	mu       sync.Mutex
}

// NewLoader wraps fetch.
func NewLoader[T any](fetch FetchFunc[T]) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// Load fetches a fresh snapshot. On failure the previous snapshot is kept and
// the error returned; a load replaced by a newer one returns common.ErrSuperseded.
func (l *Loader[T]) Load(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	items, err := l.fetch(fetchCtx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		cancel()
		return nil, common.ErrSuperseded
	}
	cancel()
	l.cancel = nil

	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	l.snapshot = items
	l.loadedAt = time.Now()
	return items, nil
}

// Snapshot returns the last good collection and when it was fetched. The
// time is zero if nothing has loaded yet.
func (l *Loader[T]) Snapshot() ([]T, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.snapshot))
	copy(out, l.snapshot)
	return out, l.loadedAt
}
