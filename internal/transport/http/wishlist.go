package http

import (
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/service"
	"net/http"
)

// WishlistResponse lists the saved products
type WishlistResponse struct {
	Items      []ProductView `json:"items"`
	Wishlisted *bool         `json:"wishlisted,omitempty"`
}

// MoveToCartResponse reports the cart after adding the wishlist to it
type MoveToCartResponse struct {
	CartResponse
	Skipped []ProductView `json:"skipped"`
}

type WishlistHandler struct {
	productService service.ProductService
	publisher      events.Publisher
	logger         hclog.Logger
}

func NewWishlistHandler(ps service.ProductService, publisher events.Publisher, log hclog.Logger) *WishlistHandler {
	return &WishlistHandler{productService: ps, publisher: publisher, logger: log}
}

// GetWishlist handles GET /wishlist
//
// swagger:route GET /wishlist wishlist getWishlist
//
// Returns the saved products of the session.
//
// Responses:
//
//	200: wishlistResponse
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	writeJSON(w, http.StatusOK, WishlistResponse{Items: productViews(s.Wishlist.Items())})
}

// Toggle handles POST /wishlist/{id}
//
// swagger:route POST /wishlist/{id} wishlist toggleWishlist
//
// Saves the product, or removes it when already saved.
//
// Responses:
//
//	200: wishlistResponse
//	404: errorResponse
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Error updating wishlist")
		return
	}

	wishlisted, err := s.Wishlist.Toggle(r.Context(), product)
	if err != nil {
		h.logger.Error("Unable to update wishlist", "session", s.ID, "error", err)
		writeError(w, err, "Error updating wishlist")
		return
	}

	if wishlisted {
		events.Notify(h.publisher, s.ID, events.LevelInfo, "Added to wishlist!")
	} else {
		events.Notify(h.publisher, s.ID, events.LevelInfo, "Removed from wishlist")
	}
	writeJSON(w, http.StatusOK, WishlistResponse{Items: productViews(s.Wishlist.Items()), Wishlisted: &wishlisted})
}

// Remove handles DELETE /wishlist/{id}
//
// swagger:route DELETE /wishlist/{id} wishlist removeWishlist
//
// Removes a product from the wishlist.
//
// Responses:
//
//	200: wishlistResponse
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := s.Wishlist.Remove(r.Context(), id); err != nil {
		h.logger.Error("Unable to update wishlist", "session", s.ID, "error", err)
		writeError(w, err, "Error updating wishlist")
		return
	}
	writeJSON(w, http.StatusOK, WishlistResponse{Items: productViews(s.Wishlist.Items())})
}

// MoveToCart handles POST /wishlist/cart
//
// swagger:route POST /wishlist/cart wishlist moveWishlistToCart
//
// Adds one unit of every saved product that is in stock to the cart.
//
// Responses:
//
//	200: moveToCartResponse
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	// add the current catalog record, not the saved snapshot
	var products []*domain.Product
	for _, saved := range s.Wishlist.Items() {
		p, err := h.productService.GetProductByID(r.Context(), saved.ID)
		if errors.Is(err, domain.ErrProductNotFound) {
			p = saved
			p.Stock = 0
		} else if err != nil {
			writeError(w, err, "Error adding to cart")
			return
		}
		products = append(products, p)
	}

	skipped, err := s.Cart.AddAll(r.Context(), products)
	if err != nil {
		h.logger.Error("Unable to add wishlist to cart", "session", s.ID, "error", err)
		writeError(w, err, "Error adding to cart")
		return
	}

	switch added := len(products) - len(skipped); {
	case len(products) == 0:
	case added == 0:
		events.Notify(h.publisher, s.ID, events.LevelWarning, "Wishlist items are out of stock.")
	case len(skipped) > 0:
		events.Notify(h.publisher, s.ID, events.LevelWarning, "%d added to cart, %d out of stock.", added, len(skipped))
	default:
		events.Notify(h.publisher, s.ID, events.LevelSuccess, "All wishlist items added to cart!")
	}
	writeJSON(w, http.StatusOK, MoveToCartResponse{
		CartResponse: newCartResponse(s.Cart.Summary()),
		Skipped:      productViews(skipped),
	})
}
