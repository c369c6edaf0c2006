package http

import (
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/catalog"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/format"
	"github.com/kahvecikaan/luxegear/internal/service"
	"net/http"
)

// cardDescriptionLength is the description length shown on product cards
const cardDescriptionLength = 80

// ProductView is a product with its display strings
type ProductView struct {
	*domain.Product
	FormattedPrice         string             `json:"formattedPrice"`
	FormattedOriginalPrice string             `json:"formattedOriginalPrice,omitempty"`
	Discount               int                `json:"discount"`
	StockStatus            domain.StockStatus `json:"stockStatus"`
	Excerpt                string             `json:"excerpt"`
}

func newProductView(p *domain.Product) ProductView {
	v := ProductView{
		Product:        p,
		FormattedPrice: format.Currency(p.Price),
		Discount:       format.DiscountPercent(p.Price, p.OriginalPrice),
		StockStatus:    p.StockStatus(),
		Excerpt:        format.Truncate(p.Description, cardDescriptionLength),
	}
	if v.Discount > 0 {
		v.FormattedOriginalPrice = format.Currency(p.OriginalPrice)
	}
	return v
}

func productViews(products []*domain.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = newProductView(p)
	}
	return out
}

// PageResponse is one page of the shop grid
type PageResponse struct {
	Items      []ProductView `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalItems int           `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}

// ProductDetailResponse is the product page
type ProductDetailResponse struct {
	Product ProductView   `json:"product"`
	Related []ProductView `json:"related"`
}

// CollectionsResponse are the home page rows
type CollectionsResponse struct {
	Featured    []ProductView `json:"featured"`
	NewArrivals []ProductView `json:"newArrivals"`
	OnSale      []ProductView `json:"onSale"`
}

type ProductHandler struct {
	productService service.ProductService
	logger         hclog.Logger
}

func NewProductHandler(ps service.ProductService, log hclog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: ps,
		logger:         log,
	}
}

// GetProducts handles GET /products
//
// swagger:route GET /products products listProducts
//
// Returns one page of products matching the filter.
//
// Responses:
//
//	200: pageResponse
//	500: errorResponse
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := catalog.QueryFromValues(r.URL.Query())

	page, err := h.productService.Query(r.Context(), q)
	if err != nil {
		h.logger.Error("Error getting products", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error getting products")
		return
	}

	writeJSON(w, http.StatusOK, PageResponse{
		Items:      productViews(page.Items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// GetFeatured handles GET /products/featured
//
// swagger:route GET /products/featured products listCollections
//
// Returns the featured, new arrival and sale rows of the home page.
//
// Responses:
//
//	200: collectionsResponse
//	500: errorResponse
func (h *ProductHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	c, err := h.productService.Collections(r.Context())
	if err != nil {
		h.logger.Error("Error getting collections", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error getting products")
		return
	}

	writeJSON(w, http.StatusOK, CollectionsResponse{
		Featured:    productViews(c.Featured),
		NewArrivals: productViews(c.NewArrivals),
		OnSale:      productViews(c.OnSale),
	})
}

// GetProductByID handles GET /products/{id}
//
// swagger:route GET /products/{id} products getProductByID
//
// Returns a product and related products from the same category.
//
// Responses:
//
//	200: productDetailResponse
//	400: errorResponse
//	404: errorResponse
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Error getting product")
		return
	}

	related, err := h.productService.Related(r.Context(), product)
	if err != nil {
		h.logger.Error("Error getting related products", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error getting product")
		return
	}

	writeJSON(w, http.StatusOK, ProductDetailResponse{
		Product: newProductView(product),
		Related: productViews(related),
	})
}

// ListCategories handles GET /categories
//
// swagger:route GET /categories products listCategories
//
// Returns the product categories in display order.
//
// Responses:
//
//	200: categoriesResponse
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Categories())
}

// AddProduct handles POST /admin/products
//
// swagger:route POST /admin/products admin addProduct
//
// Adds a new product.
//
// Responses:
//
//	201: productResponse
//	400: errorResponse
//	403: errorResponse
//	422: validationErrorResponse
//	500: errorResponse
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := r.Context().Value(ContextKeyProduct).(*domain.Product)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	err := h.productService.AddProduct(r.Context(), product)
	if err != nil {
		h.logger.Error("Error adding product", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error adding product")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/{id}
//
// swagger:route PUT /admin/products/{id} admin updateProduct
//
// Replaces an existing product.
//
// Responses:
//
//	204: noContentResponse
//	400: errorResponse
//	404: errorResponse
//	422: validationErrorResponse
//	500: errorResponse
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, ok := r.Context().Value(ContextKeyProduct).(*domain.Product)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	product.ID = id

	if err := h.productService.UpdateProduct(r.Context(), product); err != nil {
		writeError(w, err, "Error updating product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/products/{id}
//
// swagger:route DELETE /admin/products/{id} admin deleteProduct
//
// Deletes a product.
//
// Responses:
//
//	204: noContentResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err, "Error deleting product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
