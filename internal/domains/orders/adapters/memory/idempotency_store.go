package memory

import (
	"context"
	"sync"
	"time"

	"github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

// DefaultKeyTTL matches the redis and postgres stores.
const DefaultKeyTTL = 24 * time.Hour

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps placement idempotency keys in process memory with
// the same TTL semantics as the redis and postgres stores. Keys do not
// survive restarts, so it only suits development and tests.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewIdempotencyStore constructs an empty store with the default key TTL.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: map[string]ports.IdempotencyRecord{},
		ttl:     DefaultKeyTTL,
		now:     time.Now,
	}
}

// WithTTL overrides how long keys stay replayable.
func (s *IdempotencyStore) WithTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get returns the stored record for the provided key. Expired keys are
// dropped and reported as absent.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.liveRecord(key)
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Save persists the record, replays a live matching record, and rejects a
// live record with a different payload. An expired record is overwritten.
func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.liveRecord(record.Key); ok {
		if existing.RequestHash != record.RequestHash || existing.OrderID != record.OrderID {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}

	now := s.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	s.records[record.Key] = record
	saved := record
	return &saved, nil
}

// liveRecord returns the record for key, deleting it when past the TTL.
// Callers must hold mu.
func (s *IdempotencyStore) liveRecord(key string) (ports.IdempotencyRecord, bool) {
	record, ok := s.records[key]
	if !ok {
		return ports.IdempotencyRecord{}, false
	}
	if s.now().Sub(record.CreatedAt) > s.ttl {
		delete(s.records, key)
		return ports.IdempotencyRecord{}, false
	}
	return record, true
}
