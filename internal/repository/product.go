// Package repository holds the product catalog
package repository

import (
	"context"
	"fmt"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"slices"
	"sync"
)

type ProductRepository interface {
	// All returns the catalog in listing order
	All(ctx context.Context) ([]*domain.Product, error)
	ByID(ctx context.Context, id int) (*domain.Product, error)
	ByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Add(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int) error
}

// catalogRepository keeps the records indexed by id and the listing order
// separately. Records are never shared with callers: reads hand out copies
// and writes store copies.
type catalogRepository struct {
	byID   map[int]*domain.Product
	order  []int
	lastID int
	mutex  sync.RWMutex
}

// NewMemoryProductRepository holds the catalog in memory, seeded with the store fixture
func NewMemoryProductRepository() ProductRepository {
	return NewMemoryProductRepositoryWith(SeedProducts())
}

// NewMemoryProductRepositoryWith holds the given products in memory, in the given order.
// A later product with an id already seen replaces the earlier one.
func NewMemoryProductRepositoryWith(products []*domain.Product) ProductRepository {
	r := &catalogRepository{byID: make(map[int]*domain.Product, len(products))}
	for _, p := range products {
		if _, ok := r.byID[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p.Clone()
		r.lastID = max(r.lastID, p.ID)
	}
	return r
}

func (r *catalogRepository) All(ctx context.Context) ([]*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *catalogRepository) ByID(ctx context.Context, id int) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return p.Clone(), nil
}

func (r *catalogRepository) ByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var out []*domain.Product
	for _, id := range r.order {
		if p := r.byID[id]; p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Update replaces the record with product's id, keeping its place in the listing
func (r *catalogRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.byID[product.ID]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, product.ID)
	}
	r.byID[product.ID] = product.Clone()
	return nil
}

// Add assigns product the next free id and appends it to the listing.
// Ids of deleted products are not reused.
func (r *catalogRepository) Add(ctx context.Context, product *domain.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.lastID++
	product.ID = r.lastID
	r.byID[product.ID] = product.Clone()
	r.order = append(r.order, product.ID)
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(o int) bool { return o == id })
	return nil
}
