package ledger

import (
	"sync"

	"github.com/ecoscan/ecoscan/internal/model"
)

// MemoryStore is an in-memory Store, used in tests and as a reference
// implementation of the store contract.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]model.UserRewardState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]model.UserRewardState)}
}

func (m *MemoryStore) Get(identity string) (*model.UserRewardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[identity]
	if !ok {
		return nil, nil
	}
	copied := state
	copied.Badges = append([]string(nil), state.Badges...)
	return &copied, nil
}

func (m *MemoryStore) Put(state *model.UserRewardState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *state
	copied.Badges = append([]string(nil), state.Badges...)
	m.states[state.Identity] = copied
	return nil
}
