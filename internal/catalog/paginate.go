package catalog

import "github.com/kahvecikaan/luxegear/internal/domain"

// DefaultPageSize is the number of products on a shop page
const DefaultPageSize = 8

// Page is one slice of a result set
type Page struct {
	Items      []*domain.Product `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalItems int               `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
}

// Paginate cuts page number page (1-based) of size pageSize out of items.
// Pages past the end are empty; page and pageSize below 1 are replaced by 1 and DefaultPageSize.
func Paginate(items []*domain.Product, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	p := Page{
		Items:      []*domain.Product{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := min(start+pageSize, total)
	p.Items = items[start:end]
	return p
}
