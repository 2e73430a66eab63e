package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Product
}

// NewMemStore returns a store holding products. Invalid entries are skipped.
func NewMemStore(products ...Product) *MemStore {
	s := &MemStore{m: make(map[string]Product, len(products))}
	for _, p := range products {
		if p.Validate() == nil {
			s.m[p.ID] = p
		}
	}
	return s
}

// DefaultProducts seeds the in-memory catalog when no database is configured.
func DefaultProducts() []Product {
	return []Product{
		{ID: "p1", Title: "Shirt", PriceCents: 1999},
		{ID: "p2", Title: "Mug", PriceCents: 899},
		{ID: "p3", Title: "Sticker Pack", PriceCents: 450},
		{ID: "p4", Title: "Hoodie", PriceCents: 4999},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

// Put replaces a product. Carts already holding it keep their snapshot.
func (s *MemStore) Put(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = p
	return nil
}
