package http

import (
	"context"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/checkout"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"net/http"
)

// CheckoutResponse is the wizard state, with field errors after a failed step
type CheckoutResponse struct {
	checkout.State
	Errors map[string]string `json:"errors,omitempty"`
}

type CheckoutHandler struct {
	logger hclog.Logger
}

func NewCheckoutHandler(log hclog.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: log}
}

// GetCheckout handles GET /checkout
//
// swagger:route GET /checkout checkout getCheckout
//
// Returns the checkout state of the session.
//
// Responses:
//
//	200: checkoutResponse
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	writeJSON(w, http.StatusOK, CheckoutResponse{State: s.Checkout.State()})
}

// Begin handles POST /checkout
//
// swagger:route POST /checkout checkout beginCheckout
//
// Starts checkout at the shipping step.
//
// Responses:
//
//	200: checkoutResponse
//	409: errorResponse
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	st, err := s.Checkout.Begin()
	if err != nil {
		writeError(w, err, "Error starting checkout")
		return
	}
	writeJSON(w, http.StatusOK, CheckoutResponse{State: st})
}

// SubmitShipping handles POST /checkout/shipping
//
// swagger:route POST /checkout/shipping checkout submitShipping
//
// Validates the shipping details and moves to payment.
//
// Responses:
//
//	200: checkoutResponse
//	409: errorResponse
//	422: checkoutResponse
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var form domain.ShippingForm
	if err := decode(r, &form); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid shipping details")
		return
	}

	st, err := s.Checkout.SubmitShipping(form)
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, CheckoutResponse{State: st, Errors: verrs.Fields()})
	case err != nil:
		writeError(w, err, "Error saving shipping details")
	default:
		writeJSON(w, http.StatusOK, CheckoutResponse{State: st})
	}
}

// Back handles POST /checkout/back
//
// swagger:route POST /checkout/back checkout checkoutBack
//
// Returns from payment to shipping.
//
// Responses:
//
//	200: checkoutResponse
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	writeJSON(w, http.StatusOK, CheckoutResponse{State: s.Checkout.Back()})
}

// SubmitPayment handles POST /checkout/payment
//
// swagger:route POST /checkout/payment checkout submitPayment
//
// Validates the card and places the order.
//
// Responses:
//
//	201: orderResponse
//	409: errorResponse
//	422: checkoutResponse
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var form domain.PaymentForm
	if err := decode(r, &form); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid payment details")
		return
	}
	form.CardNumber = checkout.FormatCardNumber(form.CardNumber)
	form.Expiry = checkout.FormatExpiry(form.Expiry)
	form.CVV = checkout.FormatCVV(form.CVV)

	order, err := s.Checkout.SubmitPayment(r.Context(), form)
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, CheckoutResponse{State: s.Checkout.State(), Errors: verrs.Fields()})
	case errors.Is(err, context.Canceled):
		h.logger.Debug("Payment abandoned", "session", s.ID)
	case err != nil:
		h.logger.Error("Unable to place order", "session", s.ID, "error", err)
		writeError(w, err, "Error placing order")
	default:
		writeJSON(w, http.StatusCreated, OrderResponse{Order: order})
	}
}

// OrderResponse wraps a placed order
type OrderResponse struct {
	Order *domain.Order `json:"order"`
}
