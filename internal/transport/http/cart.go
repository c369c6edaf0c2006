package http

import (
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/cart"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/format"
	"github.com/kahvecikaan/luxegear/internal/service"
	"net/http"
)

// CartResponse is the priced cart with its display strings
type CartResponse struct {
	Cart    cart.Summary `json:"cart"`
	Display CartDisplay  `json:"display"`
}

// CartDisplay holds the formatted totals of the order summary
type CartDisplay struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount,omitempty"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

func newCartResponse(s cart.Summary) CartResponse {
	d := CartDisplay{
		Subtotal: format.Currency(s.Subtotal.InexactFloat64()),
		Shipping: "FREE",
		Total:    format.Currency(s.Total.InexactFloat64()),
	}
	if s.DiscountAmount.IsPositive() {
		d.Discount = "−" + format.Currency(s.DiscountAmount.InexactFloat64())
	}
	if !s.FreeShipping() {
		d.Shipping = format.Currency(s.Shipping.InexactFloat64())
	}
	return CartResponse{Cart: s, Display: d}
}

// AddItemRequest is the body of POST /cart/items
type AddItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// QuantityRequest is the body of PUT /cart/items/{id}
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CouponRequest is the body of POST /cart/coupon
type CouponRequest struct {
	Code string `json:"code"`
}

type CartHandler struct {
	productService service.ProductService
	publisher      events.Publisher
	logger         hclog.Logger
}

func NewCartHandler(ps service.ProductService, publisher events.Publisher, log hclog.Logger) *CartHandler {
	return &CartHandler{productService: ps, publisher: publisher, logger: log}
}

// GetCart handles GET /cart
//
// swagger:route GET /cart cart getCart
//
// Returns the priced cart of the session.
//
// Responses:
//
//	200: cartResponse
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}

// AddItem handles POST /cart/items
//
// swagger:route POST /cart/items cart addCartItem
//
// Adds units of a product, merging with an existing line.
//
// Responses:
//
//	200: cartResponse
//	400: errorResponse
//	404: errorResponse
//	409: errorResponse
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var req AddItemRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid cart item")
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err, "Error adding to cart")
		return
	}

	before := s.Cart.Quantity(product.ID)
	if err := s.Cart.Add(r.Context(), product, req.Quantity); err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			h.logger.Debug("Product out of stock", "session", s.ID, "product_id", product.ID)
			events.Notify(h.publisher, s.ID, events.LevelError, "%s is out of stock.", product.Name)
		} else {
			h.logger.Error("Unable to add to cart", "session", s.ID, "product_id", product.ID, "error", err)
		}
		writeError(w, err, "Error adding to cart")
		return
	}

	switch added := s.Cart.Quantity(product.ID) - before; {
	case added > 1:
		events.Notify(h.publisher, s.ID, events.LevelSuccess, "%s (×%d) added to cart!", product.Name, added)
	case added == 1:
		events.Notify(h.publisher, s.ID, events.LevelSuccess, "%s added to cart!", product.Name)
	default:
		events.Notify(h.publisher, s.ID, events.LevelWarning, "Only %d of %s in stock.", product.Stock, product.Name)
	}
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}

// UpdateItem handles PUT /cart/items/{id}
//
// swagger:route PUT /cart/items/{id} cart updateCartItem
//
// Sets the quantity of a line, zero removes it.
//
// Responses:
//
//	200: cartResponse
//	400: errorResponse
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req QuantityRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	// cap at the stock of the current catalog record; a line whose product
	// left the catalog keeps its snapshot
	product, err := h.productService.GetProductByID(r.Context(), id)
	switch {
	case err == nil:
		err = s.Cart.SetProductQuantity(r.Context(), product, req.Quantity)
	case errors.Is(err, domain.ErrProductNotFound):
		err = s.Cart.SetQuantity(r.Context(), id, req.Quantity)
	}
	if err != nil {
		h.logger.Error("Unable to update cart", "session", s.ID, "error", err)
		writeError(w, err, "Error updating cart")
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}

// RemoveItem handles DELETE /cart/items/{id}
//
// swagger:route DELETE /cart/items/{id} cart removeCartItem
//
// Removes a line from the cart.
//
// Responses:
//
//	200: cartResponse
//	400: errorResponse
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	name := ""
	for _, l := range s.Cart.Lines() {
		if l.ID == id {
			name = l.Name
		}
	}

	if err := s.Cart.Remove(r.Context(), id); err != nil {
		h.logger.Error("Unable to update cart", "session", s.ID, "error", err)
		writeError(w, err, "Error updating cart")
		return
	}
	if name != "" {
		events.Notify(h.publisher, s.ID, events.LevelInfo, "%s removed.", name)
	}
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}

// ClearCart handles DELETE /cart
//
// swagger:route DELETE /cart cart clearCart
//
// Empties the cart and drops the coupon.
//
// Responses:
//
//	200: cartResponse
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	if err := s.Cart.Clear(r.Context()); err != nil {
		h.logger.Error("Unable to clear cart", "session", s.ID, "error", err)
		writeError(w, err, "Error clearing cart")
		return
	}
	events.Notify(h.publisher, s.ID, events.LevelInfo, "Cart cleared.")
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}

// ApplyCoupon handles POST /cart/coupon
//
// swagger:route POST /cart/coupon cart applyCoupon
//
// Activates a coupon code, replacing the active one.
//
// Responses:
//
//	200: cartResponse
//	400: errorResponse
//	422: errorResponse
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var req CouponRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid coupon request")
		return
	}

	res, err := s.Cart.ApplyCoupon(r.Context(), req.Code)
	if err != nil {
		h.logger.Error("Unable to apply coupon", "session", s.ID, "error", err)
		writeError(w, err, "Error applying coupon")
		return
	}
	if !res.Success {
		writeMessage(w, http.StatusUnprocessableEntity, "Invalid coupon code")
		return
	}

	events.Notify(h.publisher, s.ID, events.LevelSuccess, "Coupon applied! %d%% off your order.", res.Percent)
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}

// RemoveCoupon handles DELETE /cart/coupon
//
// swagger:route DELETE /cart/coupon cart removeCoupon
//
// Drops the active coupon.
//
// Responses:
//
//	200: cartResponse
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	if err := s.Cart.RemoveCoupon(r.Context()); err != nil {
		h.logger.Error("Unable to remove coupon", "session", s.ID, "error", err)
		writeError(w, err, "Error removing coupon")
		return
	}
	events.Notify(h.publisher, s.ID, events.LevelInfo, "Coupon removed.")
	writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Summary()))
}
