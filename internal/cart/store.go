package cart

import (
	"sync"

	"go.uber.org/zap"
)

// Store owns the live cart. Every mutation runs the pure reducer and
// then mirrors the new state; a mirror failure is logged and swallowed,
// never surfaced — losing persistence must not cost the user the cart
// they are holding.
type Store struct {
	mu     sync.RWMutex
	state  State
	mirror Mirror
	log    *zap.Logger
}

func NewStore(mirror Mirror, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{state: Empty(), mirror: mirror, log: log}
}

// Load hydrates from the mirror once at startup. A failed load degrades
// to the empty cart; IsOpen is forced closed regardless of what was
// persisted.
func (s *Store) Load() {
	st, err := s.mirror.Load()
	if err != nil {
		s.log.Warn("cart mirror load failed, starting empty", zap.Error(err))
		st = Empty()
	}
	st.IsOpen = false

	s.mu.Lock()
	s.state = Apply(s.state, LoadCart{State: st})
	s.mu.Unlock()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) AddItem(it Item) State { return s.dispatch(AddItem{Item: it}) }
func (s *Store) RemoveItem(id int) State { return s.dispatch(RemoveItem{ID: id}) }
func (s *Store) Clear() State  { return s.dispatch(ClearCart{}) }
func (s *Store) Toggle() State { return s.dispatch(ToggleCart{}) }
func (s *Store) Close() State  { return s.dispatch(CloseCart{}) }

func (s *Store) UpdateQuantity(id, quantity int) State {
	return s.dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

func (s *Store) dispatch(a Action) State {
	s.mu.Lock()
	s.state = Apply(s.state, a)
	st := s.state
	s.mu.Unlock()

	if err := s.mirror.Save(st); err != nil {
		s.log.Warn("cart mirror save failed", zap.Error(err))
	}
	return st
}
