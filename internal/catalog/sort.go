package catalog

import (
	"cmp"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"slices"
)

// SortKey selects the order of catalog results
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
)

// ParseSortKey maps s to a SortKey, unknown values fall back to SortDefault
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceAsc, SortPriceDesc, SortRating, SortNewest, SortPopular:
		return k
	default:
		return SortDefault
	}
}

// Sort returns a stably sorted copy of products
func Sort(products []*domain.Product, key SortKey) []*domain.Product {
	sorted := slices.Clone(products)

	var compare func(a, b *domain.Product) int
	switch key {
	case SortPriceAsc:
		compare = func(a, b *domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		compare = func(a, b *domain.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortRating:
		compare = func(a, b *domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortNewest:
		compare = func(a, b *domain.Product) int { return cmp.Compare(rank(b.NewArrival), rank(a.NewArrival)) }
	case SortPopular:
		compare = func(a, b *domain.Product) int { return cmp.Compare(b.ReviewCount, a.ReviewCount) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func rank(b bool) int {
	if b {
		return 1
	}
	return 0
}
