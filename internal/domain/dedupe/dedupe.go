// Package dedupe tracks which fixture runs have already been simulated,
// so a replayed matchday batch skips pairs it has rated instead of
// rating them twice.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Key identifies one simulation unit: one participant in one match.
type Key struct {
	MatchID       uuid.UUID
	ParticipantID uuid.UUID
}

// Deduper records completed fixture runs to ensure at-most-once rating.
type Deduper interface {
	// SeenAndRecord atomically checks whether the key was seen and
	// records it if not. Returns true if the key was already seen.
	SeenAndRecord(ctx context.Context, key Key) bool

	// Unrecord removes a key, allowing the run to be retried. Use it
	// only when a run was recorded but failed downstream, for example
	// on queue backpressure.
	Unrecord(ctx context.Context, key Key)

	Size() int64
}

// inMemoryDeduper is a map-backed Deduper. In bounded mode (maxSize > 0)
// a FIFO queue evicts the oldest recorded run once the limit is hit;
// unbounded mode keeps everything.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[Key]struct{}
	queue   []Key // insertion order; entries removed by Unrecord go stale here
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper. The default bound of
// 50000 runs covers several full matchdays.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[Key]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, key Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}

	if d.maxSize > 0 {
		for len(d.seen) >= d.maxSize && d.evictOldest() {
		}
		d.queue = append(d.queue, key)
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(ctx context.Context, key Key) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; !exists {
		return
	}
	// The queue entry is left behind as a stale marker; eviction skips
	// keys no longer present in the map.
	delete(d.seen, key)
	d.size.Add(-1)
}

// evictOldest pops queue entries until one still live in the map is
// removed. Must be called with d.mu held. Reports whether an eviction
// happened.
func (d *inMemoryDeduper) evictOldest() bool {
	for len(d.queue) > 0 {
		oldest := d.queue[0]
		d.queue = d.queue[1:]
		if _, live := d.seen[oldest]; live {
			delete(d.seen, oldest)
			d.size.Add(-1)
			return true
		}
	}
	return false
}

// Size returns the number of runs currently recorded.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
