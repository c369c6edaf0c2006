package catalog

import (
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/url"
	"testing"
)

func ids(products []*domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func ptr(f float64) *float64 { return &f }

func TestFilter(t *testing.T) {
	products := repository.SeedProducts()

	testCases := []struct {
		name string
		spec FilterSpec
		want []int
	}{
		{"no criteria", FilterSpec{}, ids(products)},
		{"keyboards rated 4+", FilterSpec{Categories: []domain.Category{domain.CategoryKeyboards}, MinRating: 4}, []int{5, 6, 8}},
		{"search name and tag case-insensitive", FilterSpec{Search: "MOUSE"}, []int{12, 13, 14, 15}},
		{"search name or category", FilterSpec{Search: "monitor"}, []int{2, 9, 10, 11}},
		{"search tag", FilterSpec{Search: "ultralight"}, []int{13}},
		{"price bounds inclusive", FilterSpec{MinPrice: ptr(89.99), MaxPrice: ptr(129.99)}, []int{3, 7, 8, 12}},
		{"in stock only", FilterSpec{Categories: []domain.Category{domain.CategoryKeyboards}, InStock: true}, []int{5, 6, 7}},
		{"several categories", FilterSpec{Categories: []domain.Category{domain.CategoryMice, domain.CategoryAccessories}, MaxPrice: ptr(50)}, []int{14, 15, 16}},
		{"nothing matches", FilterSpec{Search: "espresso"}, []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(products, tc.spec)
			assert.Equal(t, tc.want, ids(got))

			// filtering is idempotent
			assert.Equal(t, ids(got), ids(Filter(got, tc.spec)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := repository.SeedProducts()
	before := ids(products)

	Filter(products, FilterSpec{InStock: true})
	Sort(products, SortPriceAsc)

	assert.Equal(t, before, ids(products))
}

func TestSort(t *testing.T) {
	products := repository.SeedProducts()

	asc := Sort(products, SortPriceAsc)
	desc := Sort(products, SortPriceDesc)
	require.Len(t, asc, len(products))
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	// seed prices are distinct, so descending is ascending reversed
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}

	rating := Sort(products, SortRating)
	for i := 1; i < len(rating); i++ {
		assert.GreaterOrEqual(t, rating[i-1].Rating, rating[i].Rating)
	}

	popular := Sort(products, SortPopular)
	assert.Equal(t, 12, popular[0].ID)
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].ReviewCount, popular[i].ReviewCount)
	}

	assert.Equal(t, ids(products), ids(Sort(products, SortDefault)))
}

func TestSortNewestIsStable(t *testing.T) {
	products := repository.SeedProducts()

	got := ids(Sort(products, SortNewest))
	assert.Equal(t, []int{3, 6, 10, 13, 16, 1, 2, 4, 5, 7, 8, 9, 11, 12, 14, 15}, got)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceDesc, ParseSortKey("price-desc"))
	assert.Equal(t, SortDefault, ParseSortKey(""))
	assert.Equal(t, SortDefault, ParseSortKey("cheapest"))
}

func TestPaginate(t *testing.T) {
	products := repository.SeedProducts()

	testCases := []struct {
		name       string
		items      []*domain.Product
		page, size int
		wantIDs    []int
		wantPages  int
	}{
		{"first page", products, 1, 8, []int{1, 2, 3, 4, 5, 6, 7, 8}, 2},
		{"second page", products, 2, 8, []int{9, 10, 11, 12, 13, 14, 15, 16}, 2},
		{"past the end", products, 3, 8, []int{}, 2},
		{"partial last page", products[:10], 2, 8, []int{9, 10}, 2},
		{"page below one", products[:3], 0, 8, []int{1, 2, 3}, 1},
		{"default size", products, 1, 0, []int{1, 2, 3, 4, 5, 6, 7, 8}, 2},
		{"empty", nil, 1, 8, []int{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(tc.items, tc.page, tc.size)
			assert.Equal(t, tc.wantIDs, ids(p.Items))
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.Equal(t, len(tc.items), p.TotalItems)
		})
	}
}

func TestRunAndQueryFromValues(t *testing.T) {
	products := repository.SeedProducts()

	v := url.Values{}
	v.Set("category", "keyboards")
	v.Set("minRating", "4")
	v.Set("sort", "price-asc")
	v.Set("maxPrice", "not-a-number")

	q := QueryFromValues(v)
	assert.Equal(t, []domain.Category{domain.CategoryKeyboards}, q.Filter.Categories)
	assert.Nil(t, q.Filter.MaxPrice)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	page := Run(products, q)
	assert.Equal(t, []int{8, 5, 6}, ids(page.Items))
	assert.Equal(t, 1, page.TotalPages)

	v = url.Values{}
	v.Set("search", "  wireless ")
	v.Set("category", "mice,unknown,headphones")
	v.Set("inStock", "true")
	v.Set("page", "1")
	v.Set("pageSize", "2")
	q = QueryFromValues(v)
	assert.Equal(t, "wireless", q.Filter.Search)
	assert.Equal(t, []domain.Category{domain.CategoryMice, domain.CategoryHeadphones}, q.Filter.Categories)
	page = Run(products, q)
	assert.Equal(t, []int{1, 3}, ids(page.Items))
	assert.Equal(t, 4, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
}

func TestCollections(t *testing.T) {
	products := repository.SeedProducts()

	assert.Equal(t, []int{1, 5, 9, 12}, ids(Featured(products, 4)))
	assert.Equal(t, []int{3, 6, 10, 13}, ids(NewArrivals(products, 4)))
	assert.Equal(t, []int{1, 3, 5, 7}, ids(OnSale(products, 4)))
	assert.Equal(t, []int{6, 7, 8}, ids(Related(products, products[4], 4)))
	assert.Equal(t, []int{}, ids(Related(products, products[4], 0)))
}
