package domain

import (
	"bytes"
	"fmt"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"slices"
)

// Category is one of the fixed product categories of the store
type Category string

const (
	CategoryHeadphones  Category = "headphones"
	CategoryKeyboards   Category = "keyboards"
	CategoryMonitors    Category = "monitors"
	CategoryMice        Category = "mice"
	CategoryAccessories Category = "accessories"
)

var categories = []Category{
	CategoryHeadphones,
	CategoryKeyboards,
	CategoryMonitors,
	CategoryMice,
	CategoryAccessories,
}

// Categories returns every category in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory returns the category named s or ErrInvalidCategory
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// Product represents the product model
//
// swagger:model
type Product struct {
	// The ID of the product
	//
	// required: true
	// min: 1
	// example: 1
	ID int `json:"id"`

	// The name of the product
	//
	// required: true
	// example: Aurora ANC Headphones
	Name string `json:"name" validate:"required"`

	// The category of the product
	//
	// required: true
	// example: headphones
	Category Category `json:"category" validate:"required,category"`

	// The description of the product
	//
	// required: false
	Description string `json:"description"`

	// The current price of the product
	//
	// required: true
	// min: 0.01
	// example: 249.99
	Price float64 `json:"price" validate:"required,gt=0"`

	// The price before any sale, never below the current price
	//
	// required: true
	// example: 299.99
	OriginalPrice float64 `json:"originalPrice" validate:"gtefield=Price"`

	// Units available
	//
	// min: 0
	Stock int `json:"stock" validate:"gte=0"`

	// Average rating between 0 and 5
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`

	// Number of reviews behind the rating
	ReviewCount int `json:"reviewCount" validate:"gte=0"`

	Tags []string `json:"tags"`

	// Image URLs, the first one is the cover image
	//
	// required: true
	Images []string `json:"images" validate:"required,min=1,dive,required"`

	IsFeatured bool  `json:"isFeatured"`
	IsSale     bool  `json:"isSale"`
	NewArrival bool  `json:"newArrival"`
	Specs      Specs `json:"specs"`
}

// Clone returns a deep copy of p
func (p *Product) Clone() *Product {
	c := *p
	c.Tags = slices.Clone(p.Tags)
	c.Images = slices.Clone(p.Images)
	c.Specs = slices.Clone(p.Specs)
	return &c
}

// StockStatus is the availability badge shown for a product
type StockStatus string

const (
	OutOfStock StockStatus = "out"
	LowStock   StockStatus = "low"
	InStock    StockStatus = "in"
)

// LowStockLimit is the stock level at or below which a product is flagged as low
const LowStockLimit = 5

// StockStatus derives the availability badge from the stock level
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return OutOfStock
	case p.Stock <= LowStockLimit:
		return LowStock
	default:
		return InStock
	}
}

// Spec is a single named attribute of a product, e.g. "Battery": "30h"
type Spec struct {
	Key   string
	Value string
}

// Specs is an ordered string to string mapping.
// It encodes as a JSON object and keeps the key order of the source document.
type Specs []Spec

// Get returns the value for key
func (s Specs) Get(key string) (string, bool) {
	for _, sp := range s {
		if sp.Key == key {
			return sp.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key or appends it when missing
func (s Specs) Set(key, value string) Specs {
	for i, sp := range s {
		if sp.Key == key {
			s[i].Value = value
			return s
		}
	}
	return append(s, Spec{Key: key, Value: value})
}

func (s Specs) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	om := orderedmap.New[string, string](len(s))
	for _, sp := range s {
		om.Set(sp.Key, sp.Value)
	}
	return om.MarshalJSON()
}

func (s *Specs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	om := orderedmap.New[string, string]()
	if err := om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("specs: %w", err)
	}
	out := make(Specs, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Spec{Key: pair.Key, Value: pair.Value})
	}
	*s = out
	return nil
}
