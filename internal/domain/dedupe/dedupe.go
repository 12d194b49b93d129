// Package dedupe tracks learner ids already analysed within a batch.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// Deduper records learner ids so a batch analyses each learner at most once.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded and records it
	// if not. Empty ids are never recorded and always report false.
	SeenAndRecord(ctx context.Context, id string) bool

	// Forget removes id so a later profile with the same id is analysed.
	Forget(ctx context.Context, id string)

	Size() int
}

// seenSet is a mutex-guarded set. When maxSize > 0 the oldest id is evicted
// once the set is full.
type seenSet struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewSeenSet creates an in-memory deduper. It is unbounded unless
// WithMaxSize is given.
func NewSeenSet(opts ...Option) Deduper {
	d := &seenSet{}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *seenSet) SeenAndRecord(_ context.Context, id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Front()
		d.order.Remove(oldest)
		delete(d.seen, oldest.Value.(string))
	}
	d.seen[id] = d.order.PushBack(id)
	return false
}

func (d *seenSet) Forget(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.seen[id]; ok {
		d.order.Remove(e)
		delete(d.seen, id)
	}
}

func (d *seenSet) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.order.Len()
}
