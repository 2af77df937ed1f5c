package subscription

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory Repository used by tests and local
// development without a database. Safe for concurrent use.
type MemoryRepository struct {
	mu   sync.Mutex
	rows map[string]Subscription // id -> row

	// FailWith, when set, is returned by every call. Lets tests drive
	// the infrastructure-error paths.
	FailWith error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]Subscription)}
}

func (m *MemoryRepository) Create(_ context.Context, s *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.rows[s.ID] = *s
	return nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, userID string) ([]Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []Subscription
	for _, s := range m.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextPaymentDate.Before(out[j].NextPaymentDate)
	})
	return out, nil
}

func (m *MemoryRepository) Get(_ context.Context, userID, id string) (*Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	s, ok := m.rows[id]
	if !ok || s.UserID != userID {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryRepository) Update(_ context.Context, s *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	existing, ok := m.rows[s.ID]
	if !ok || existing.UserID != s.UserID {
		return ErrNotFound
	}
	m.rows[s.ID] = *s
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	s, ok := m.rows[id]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
