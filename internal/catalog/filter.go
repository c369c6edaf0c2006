package catalog

import (
	"github.com/kahvecikaan/luxegear/internal/domain"
	"slices"
	"strings"
)

// FilterSpec is the set of active catalog search and filter criteria.
// Zero values disable the matching predicate.
type FilterSpec struct {
	Search     string            `json:"search,omitempty"`
	Categories []domain.Category `json:"categories,omitempty"`
	MinPrice   *float64          `json:"minPrice,omitempty"`
	MaxPrice   *float64          `json:"maxPrice,omitempty"`
	MinRating  float64           `json:"minRating,omitempty"`
	InStock    bool              `json:"inStock,omitempty"`
}

// Matches reports whether p satisfies every predicate of the spec
func (f FilterSpec) Matches(p *domain.Product) bool {
	if f.Search != "" && !matchesSearch(p, strings.ToLower(f.Search)) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, p.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.InStock && p.Stock <= 0 {
		return false
	}
	return true
}

func matchesSearch(p *domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Filter returns the products matching spec in their input order.
// The input slice is never modified.
func Filter(products []*domain.Product, spec FilterSpec) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if spec.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
