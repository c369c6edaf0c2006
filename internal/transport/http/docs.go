// Package classification of LuxeGear Storefront API
//
// # Documentation for LuxeGear Storefront API
//
// Shopper sessions are addressed with the X-Session-ID header. A request
// without one starts a new session and the id is returned in the response.
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import (
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/domain"
)

// NOTE: Types defined here are purely for documentation purposes
// These types are not used by any of the handlers

// Generic error message
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Validation errors keyed by field
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// in: body
	Body ValidationErrorResponse
}

// One page of products
// swagger:response pageResponse
type pageResponseWrapper struct {
	// in: body
	Body PageResponse
}

// The rows of the home page
// swagger:response collectionsResponse
type collectionsResponseWrapper struct {
	// in: body
	Body CollectionsResponse
}

// Data structure representing a single product
// swagger:response productResponse
type productResponseWrapper struct {
	// A single product
	// in: body
	Body domain.Product
}

// A product and related products
// swagger:response productDetailResponse
type productDetailResponseWrapper struct {
	// in: body
	Body ProductDetailResponse
}

// The product categories
// swagger:response categoriesResponse
type categoriesResponseWrapper struct {
	// in: body
	Body []domain.Category
}

// The priced cart
// swagger:response cartResponse
type cartResponseWrapper struct {
	// in: body
	Body CartResponse
}

// swagger:response wishlistResponse
type wishlistResponseWrapper struct {
	// in: body
	Body WishlistResponse
}

// swagger:response moveToCartResponse
type moveToCartResponseWrapper struct {
	// in: body
	Body MoveToCartResponse
}

// The signed-in user
// swagger:response userResponse
type userResponseWrapper struct {
	// in: body
	Body UserResponse
}

// swagger:response ordersResponse
type ordersResponseWrapper struct {
	// in: body
	Body struct {
		Orders []domain.Order `json:"orders"`
	}
}

// The checkout state
// swagger:response checkoutResponse
type checkoutResponseWrapper struct {
	// in: body
	Body CheckoutResponse
}

// A placed order
// swagger:response orderResponse
type orderResponseWrapper struct {
	// in: body
	Body OrderResponse
}

// swagger:response dashboardResponse
type dashboardResponseWrapper struct {
	// in: body
	Body struct {
		Stats api.DashboardStats `json:"stats"`
	}
}

// swagger:response usersResponse
type usersResponseWrapper struct {
	// in: body
	Body struct {
		Users []domain.User `json:"users"`
	}
}

// No content response for endpoints that return 204
// swagger:response noContentResponse
type noContentResponseWrapper struct{}

// swagger:parameters getProductByID deleteProduct updateProduct updateCartItem removeCartItem toggleWishlist removeWishlist
type productIDParamsWrapper struct {
	// The ID of the product
	// in: path
	// required: true
	ID int `json:"id"`
}

// swagger:parameters addProduct updateProduct
type productBodyParamsWrapper struct {
	// Product data structure to create or update.
	// in: body
	// required: true
	Body domain.Product
}

// swagger:parameters addCartItem
type addItemParamsWrapper struct {
	// in: body
	// required: true
	Body AddItemRequest
}

// swagger:parameters applyCoupon
type couponParamsWrapper struct {
	// in: body
	// required: true
	Body CouponRequest
}

// swagger:parameters submitShipping
type shippingParamsWrapper struct {
	// in: body
	// required: true
	Body domain.ShippingForm
}

// swagger:parameters submitPayment
type paymentParamsWrapper struct {
	// in: body
	// required: true
	Body domain.PaymentForm
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// The error message
	//
	// required: true
	Message string `json:"message"`
}

// ValidationErrorResponse defines the structure for API validation error responses
//
// swagger:model
type ValidationErrorResponse struct {
	// required: true
	Message string `json:"message"`

	// The message for each invalid field
	//
	// required: true
	Errors map[string]string `json:"errors"`
}
