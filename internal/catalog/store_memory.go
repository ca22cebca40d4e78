package catalog

import (
	"context"
	"sync"
)

// MemStore mirrors FileStore semantics without the file. Used by tests
// and demo boots.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemStore(seed ...Product) *MemStore {
	s := &MemStore{}
	s.products = append(s.products, seed...)
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.products, id); i >= 0 {
		return s.products[i], true, nil
	}
	return Product{}, false, nil
}

func (s *MemStore) Create(ctx context.Context, patch Patch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := patch.apply(Product{}, nextID(s.products))
	if err != nil {
		return Product{}, err
	}
	s.products = append(s.products, created)
	return created, nil
}

func (s *MemStore) Update(ctx context.Context, id int, patch Patch) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.products, id)
	if idx < 0 {
		return Product{}, false, nil
	}

	merged, err := patch.apply(s.products[idx], id)
	if err != nil {
		return Product{}, false, err
	}
	s.products[idx] = merged
	return merged, true, nil
}

func (s *MemStore) Delete(ctx context.Context, id int) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.products, id)
	if idx < 0 {
		return Product{}, false, nil
	}

	removed := s.products[idx]
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	return removed, true, nil
}
