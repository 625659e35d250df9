package history

import (
	"context"
	"sync"
)

// MemoryStore keeps session history in process memory. All methods are
// safe for concurrent use; List returns copies so callers never observe
// later appends.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	records map[string][]Record
}

// NewMemoryStore returns an empty in-memory store with the given
// per-session cap.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		records: make(map[string][]Record),
	}
}

func (s *MemoryStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first, oldest dropped past the cap.
	records := append([]Record{rec}, s.records[rec.SessionID]...)
	if len(records) > s.limit {
		records = records[:s.limit]
	}
	s.records[rec.SessionID] = records
	return nil
}

func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records[sessionID]
	snapshot := make([]Record, len(records))
	copy(snapshot, records)
	return snapshot, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
