package scoreboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/IdoSagiv/connect-four/internal/domain"
)

// Store keeps one win counter per player identity.
type Store interface {
	Increment(ctx context.Context, id domain.PlayerID) (int64, error)
	Totals(ctx context.Context) (map[domain.PlayerID]int64, error)
}

// Service records round winners in a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Service{store: store}
}

func (s *Service) RecordWin(ctx context.Context, id domain.PlayerID) (int64, error) {
	if id != domain.PlayerA && id != domain.PlayerB {
		return 0, fmt.Errorf("record win: unknown player %d", id)
	}
	total, err := s.store.Increment(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record win for %s: %w", id, err)
	}
	return total, nil
}

// Totals always reports both identities, zero when nothing is stored.
func (s *Service) Totals(ctx context.Context) (map[domain.PlayerID]int64, error) {
	stored, err := s.store.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}
	totals := map[domain.PlayerID]int64{domain.PlayerA: 0, domain.PlayerB: 0}
	for id, n := range stored {
		if _, ok := totals[id]; ok {
			totals[id] = n
		}
	}
	return totals, nil
}

// MemoryStore lives for the process only.
type MemoryStore struct {
	mu   sync.RWMutex
	wins map[domain.PlayerID]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wins: make(map[domain.PlayerID]int64)}
}

func (m *MemoryStore) Increment(_ context.Context, id domain.PlayerID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wins[id]++
	return m.wins[id], nil
}

func (m *MemoryStore) Totals(_ context.Context) (map[domain.PlayerID]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.PlayerID]int64, len(m.wins))
	for id, n := range m.wins {
		out[id] = n
	}
	return out, nil
}
