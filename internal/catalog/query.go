package catalog

import (
	"github.com/kahvecikaan/luxegear/internal/domain"
	"net/url"
	"strconv"
	"strings"
)

// Query is a full shop request: filter, order and page
type Query struct {
	Filter   FilterSpec `json:"filter"`
	Sort     SortKey    `json:"sort"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// Run filters, sorts and paginates products. An empty page is a valid result.
func Run(products []*domain.Product, q Query) Page {
	return Paginate(Sort(Filter(products, q.Filter), q.Sort), q.Page, q.PageSize)
}

// QueryFromValues reads a Query from URL query parameters.
// search and category seed the filter the way shop links do; the remaining
// parameters are minPrice, maxPrice, minRating, inStock, sort, page and pageSize.
// Malformed numbers are ignored.
func QueryFromValues(v url.Values) Query {
	q := Query{
		Filter: FilterSpec{Search: strings.TrimSpace(v.Get("search"))},
		Sort:   ParseSortKey(v.Get("sort")),
		Page:   atoi(v.Get("page"), 1),
	}
	q.PageSize = atoi(v.Get("pageSize"), DefaultPageSize)

	for _, raw := range v["category"] {
		for _, c := range strings.Split(raw, ",") {
			if cat, err := domain.ParseCategory(strings.TrimSpace(c)); err == nil {
				q.Filter.Categories = append(q.Filter.Categories, cat)
			}
		}
	}

	if f, ok := parseFloat(v.Get("minPrice")); ok {
		q.Filter.MinPrice = &f
	}
	if f, ok := parseFloat(v.Get("maxPrice")); ok {
		q.Filter.MaxPrice = &f
	}
	if f, ok := parseFloat(v.Get("minRating")); ok {
		q.Filter.MinRating = f
	}
	if b, err := strconv.ParseBool(v.Get("inStock")); err == nil {
		q.Filter.InStock = b
	}

	return q
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// Featured returns up to n featured products
func Featured(products []*domain.Product, n int) []*domain.Product {
	return firstN(products, n, func(p *domain.Product) bool { return p.IsFeatured })
}

// NewArrivals returns up to n products flagged as new
func NewArrivals(products []*domain.Product, n int) []*domain.Product {
	return firstN(products, n, func(p *domain.Product) bool { return p.NewArrival })
}

// OnSale returns up to n discounted products
func OnSale(products []*domain.Product, n int) []*domain.Product {
	return firstN(products, n, func(p *domain.Product) bool { return p.IsSale })
}

// Related returns up to n other products from the same category as product
func Related(products []*domain.Product, product *domain.Product, n int) []*domain.Product {
	return firstN(products, n, func(p *domain.Product) bool {
		return p.Category == product.Category && p.ID != product.ID
	})
}

func firstN(products []*domain.Product, n int, keep func(*domain.Product) bool) []*domain.Product {
	out := []*domain.Product{}
	for _, p := range products {
		if len(out) == n {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
