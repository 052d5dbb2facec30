package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"marketplace/internal/entities"
	"marketplace/internal/service/dispatch"
)

var _ dispatch.StatusStore = (*DispatchStatusStore)(nil)

// DispatchStatusStore замена Redis для локального запуска и тестов, без TTL.
type DispatchStatusStore struct {
	mu      sync.RWMutex
	records map[string][]entities.DispatchRecord
}

func NewDispatchStatusStore() *DispatchStatusStore {
	return &DispatchStatusStore{records: map[string][]entities.DispatchRecord{}}
}

func (s *DispatchStatusStore) Save(_ context.Context, offerID string, version int64, record entities.DispatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := statusKey(offerID, version)
	for i, existing := range s.records[key] {
		if existing.ID == record.ID {
			s.records[key][i] = record
			return nil
		}
	}
	s.records[key] = append(s.records[key], record)
	return nil
}

func (s *DispatchStatusStore) List(_ context.Context, offerID string, version int64) ([]entities.DispatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := slices.Clone(s.records[statusKey(offerID, version)])
	if records == nil {
		return []entities.DispatchRecord{}, nil
	}
	return records, nil
}

func statusKey(offerID string, version int64) string {
	return fmt.Sprintf("%s:%d", offerID, version)
}
