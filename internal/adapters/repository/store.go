// Package repository stores completed rating results in memory and
// derives each participant's rolling form from them.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

// Store provides read/write access to rating history.
type Store interface {
	// Record appends a completed rating result to the participant's
	// history. History is append-only; nothing is overwritten.
	Record(ctx context.Context, result model.RatingResult) error

	// Latest returns the most recent result for a participant.
	// Returns ErrNotFound for a participant with no history.
	Latest(ctx context.Context, participantID uuid.UUID) (model.RatingResult, error)

	// History returns up to limit results, most recent first.
	History(ctx context.Context, participantID uuid.UUID, limit int) ([]model.RatingResult, error)

	// Form returns the mean rating over the participant's form window.
	// Returns ErrNotFound for a participant with no history.
	Form(ctx context.Context, participantID uuid.UUID) (float64, error)

	// Count returns the number of participants tracked.
	Count(ctx context.Context) int
}

// shard holds a slice of the participant space behind its own lock, so
// concurrent matchday workers do not serialize on one mutex.
type shard struct {
	mu        sync.RWMutex
	histories map[uuid.UUID][]model.RatingResult
}

// MemoryStore is the in-memory Store used in production. Participants
// hash onto shards by UUID; each shard is independently locked.
type MemoryStore struct {
	shards     []*shard
	shardCount int
	formWindow int
}

// NewMemoryStore creates a store with the default sharding and a
// five-match form window.
func NewMemoryStore(opts ...Option) *MemoryStore {
	m := &MemoryStore{
		formWindow: defaultFormWindow,
		shardCount: defaultShardCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.shards = make([]*shard, m.shardCount)
	for i := range m.shards {
		m.shards[i] = &shard{
			histories: make(map[uuid.UUID][]model.RatingResult),
		}
	}
	return m
}

func (m *MemoryStore) shardFor(id uuid.UUID) *shard {
	// FNV-1a over the UUID bytes.
	h := uint64(14695981039346656037)
	for _, b := range id {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return m.shards[h%uint64(len(m.shards))]
}

// Record appends the result to the participant's history.
func (m *MemoryStore) Record(ctx context.Context, result model.RatingResult) error {
	if result.ParticipantID == uuid.Nil {
		return fmt.Errorf("%w: nil participant id", ErrInvalidResult)
	}
	if result.MatchID == uuid.Nil {
		return fmt.Errorf("%w: nil match id", ErrInvalidResult)
	}
	s := m.shardFor(result.ParticipantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[result.ParticipantID] = append(s.histories[result.ParticipantID], result)
	return nil
}

// Latest returns the most recent result for the participant.
func (m *MemoryStore) Latest(ctx context.Context, participantID uuid.UUID) (model.RatingResult, error) {
	s := m.shardFor(participantID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.histories[participantID]
	if len(h) == 0 {
		return model.RatingResult{}, ErrNotFound
	}
	return h[len(h)-1], nil
}

// History returns up to limit results, most recent first. A participant
// with no history yields an empty slice, not an error.
func (m *MemoryStore) History(ctx context.Context, participantID uuid.UUID, limit int) ([]model.RatingResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	s := m.shardFor(participantID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.histories[participantID]
	if len(h) < limit {
		limit = len(h)
	}
	out := make([]model.RatingResult, 0, limit)
	for i := len(h) - 1; i >= len(h)-limit; i-- {
		out = append(out, h[i])
	}
	return out, nil
}

// Form is the mean rating over the participant's most recent window of
// matches.
func (m *MemoryStore) Form(ctx context.Context, participantID uuid.UUID) (float64, error) {
	s := m.shardFor(participantID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.histories[participantID]
	if len(h) == 0 {
		return 0, ErrNotFound
	}
	window := m.formWindow
	if len(h) < window {
		window = len(h)
	}
	var sum float64
	for _, r := range h[len(h)-window:] {
		sum += r.Rating
	}
	return sum / float64(window), nil
}

// Count returns the number of participants with at least one result.
func (m *MemoryStore) Count(ctx context.Context) int {
	total := 0
	for _, s := range m.shards {
		s.mu.RLock()
		total += len(s.histories)
		s.mu.RUnlock()
	}
	return total
}
