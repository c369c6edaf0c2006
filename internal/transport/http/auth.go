package http

import (
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"net/http"
)

// UserResponse wraps the signed-in user
type UserResponse struct {
	User *domain.User `json:"user"`
}

// OrdersResponse is the order history of the signed-in user
type OrdersResponse struct {
	Orders any `json:"orders"`
}

type AuthHandler struct {
	client     *api.Client
	validation *domain.Validation
	publisher  events.Publisher
	logger     hclog.Logger
}

func NewAuthHandler(client *api.Client, v *domain.Validation, publisher events.Publisher, log hclog.Logger) *AuthHandler {
	return &AuthHandler{client: client, validation: v, publisher: publisher, logger: log}
}

// Login handles POST /auth/login
//
// swagger:route POST /auth/login auth login
//
// Signs the session in.
//
// Responses:
//
//	200: userResponse
//	401: errorResponse
//	422: validationErrorResponse
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var form domain.LoginForm
	if err := decode(r, &form); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid login request")
		return
	}
	if errs := h.validation.Validate(form); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	u, err := s.Auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		events.Notify(h.publisher, s.ID, events.LevelError, "Invalid credentials. Password must be at least 6 characters.")
		writeMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	events.Notify(h.publisher, s.ID, events.LevelSuccess, "Welcome back!")
	writeJSON(w, http.StatusOK, UserResponse{User: u})
}

// Register handles POST /auth/register
//
// swagger:route POST /auth/register auth register
//
// Creates an account and signs the session in.
//
// Responses:
//
//	201: userResponse
//	422: validationErrorResponse
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var form domain.RegisterForm
	if err := decode(r, &form); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid register request")
		return
	}
	if errs := h.validation.Validate(form); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	u, err := s.Auth.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		h.logger.Error("Unable to register", "session", s.ID, "error", err)
		writeError(w, err, "Error creating account")
		return
	}

	events.Notify(h.publisher, s.ID, events.LevelSuccess, "Account created! Welcome to LuxeGear!")
	writeJSON(w, http.StatusCreated, UserResponse{User: u})
}

// Logout handles POST /auth/logout
//
// swagger:route POST /auth/logout auth logout
//
// Signs the session out.
//
// Responses:
//
//	204: noContentResponse
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	if err := s.Auth.Logout(r.Context()); err != nil {
		h.logger.Error("Unable to log out", "session", s.ID, "error", err)
		writeError(w, err, "Error logging out")
		return
	}
	events.Notify(h.publisher, s.ID, events.LevelInfo, "Logged out successfully.")
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
//
// swagger:route GET /auth/me auth me
//
// Returns the signed-in user, refreshed from the backend for backend accounts.
//
// Responses:
//
//	200: userResponse
//	401: errorResponse
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	u, err := s.Auth.Refresh(r.Context())
	if err != nil {
		h.logger.Warn("Unable to refresh user, using the session copy", "session", s.ID, "error", err)
		u = s.Auth.User()
	}
	if u == nil {
		writeError(w, domain.ErrUnauthorized, "")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: u})
}

// MyOrders handles GET /orders
//
// swagger:route GET /orders auth myOrders
//
// Returns the order history, from the backend for backend accounts.
//
// Responses:
//
//	200: ordersResponse
//	401: errorResponse
func (h *AuthHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	u := s.Auth.User()
	if u == nil {
		writeError(w, domain.ErrUnauthorized, "")
		return
	}

	if token := s.Auth.Token(); token != "" && h.client.Configured() {
		orders, err := h.client.Orders().Mine(api.WithToken(r.Context(), token))
		if err == nil {
			writeJSON(w, http.StatusOK, OrdersResponse{Orders: orders})
			return
		}
		h.logger.Warn("Unable to fetch orders, using local history", "session", s.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, OrdersResponse{Orders: u.Orders})
}
