package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps the whole catalog in one JSON document and rewrites it
// in full on every mutation. The mutex only serializes requests within
// this process; a second process writing the same file still races, and
// the last write wins. That lost-update window is accepted under the
// single-admin assumption.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("catalog file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Get(ctx context.Context, id int) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

func (s *FileStore) Create(ctx context.Context, patch Patch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return Product{}, err
	}

	created, err := patch.apply(Product{}, nextID(products))
	if err != nil {
		return Product{}, err
	}

	products = append(products, created)
	if err := s.save(products); err != nil {
		return Product{}, err
	}
	return created, nil
}

func (s *FileStore) Update(ctx context.Context, id int, patch Patch) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return Product{}, false, err
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return Product{}, false, nil
	}

	merged, err := patch.apply(products[idx], id)
	if err != nil {
		return Product{}, false, err
	}

	products[idx] = merged
	if err := s.save(products); err != nil {
		return Product{}, false, err
	}
	return merged, true, nil
}

func (s *FileStore) Delete(ctx context.Context, id int) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return Product{}, false, err
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return Product{}, false, nil
	}

	removed := products[idx]
	products = append(products[:idx], products[idx+1:]...)
	if err := s.save(products); err != nil {
		return Product{}, false, err
	}
	return removed, true, nil
}

func (s *FileStore) load() ([]Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return products, nil
}

func (s *FileStore) save(products []Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// nextID is max(ids, 0)+1. Deleting the highest id and creating again
// reuses that id; the admin surface has always behaved this way.
func nextID(products []Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func indexOf(products []Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// apply merges the patch over base field by field and forces the id.
// The merge happens on the JSON representation so absent payload fields
// inherit the stored value, then the result is re-typed.
func (patch Patch) apply(base Product, id int) (Product, error) {
	raw, err := json.Marshal(base)
	if err != nil {
		return Product{}, fmt.Errorf("encode product: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Product{}, fmt.Errorf("merge product: %w", err)
	}
	for k, v := range patch {
		m[k] = v
	}
	m["id"] = id

	raw, err = json.Marshal(m)
	if err != nil {
		return Product{}, fmt.Errorf("merge product: %w", err)
	}

	var out Product
	if err := json.Unmarshal(raw, &out); err != nil {
		return Product{}, fmt.Errorf("merge product: %w", err)
	}
	return out, nil
}
