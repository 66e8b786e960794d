package testutil

import (
	"sync"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// MemoryStore is an in-memory contracts.LocalStore that starts empty.
type MemoryStore struct {
	mu       sync.Mutex
	products []*domain.Product

	LoadErr  error
	WriteErr error
}

var _ contracts.LocalStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding products.
func NewMemoryStore(products ...*domain.Product) *MemoryStore {
	s := &MemoryStore{}
	for _, p := range products {
		s.products = append(s.products, p.Clone())
	}
	return s
}

func (s *MemoryStore) Load() ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.snapshot(), nil
}

func (s *MemoryStore) Save(products []*domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.products = nil
	for _, p := range products {
		s.products = append(s.products, p.Clone())
	}
	return nil
}

func (s *MemoryStore) Add(p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.products = append([]*domain.Product{p.Clone()}, s.products...)
	return nil
}

func (s *MemoryStore) Update(p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p.Clone()
		}
	}
	return nil
}

func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return nil
}

func (s *MemoryStore) snapshot() []*domain.Product {
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}
