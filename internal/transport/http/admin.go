package http

import (
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"net/http"
	"net/url"
)

// defaultAdminLimit is the page size asked of the backend for admin lists
const defaultAdminLimit = "50"

// StatusRequest is the body of PUT /admin/orders/{id}/status
type StatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// RoleRequest is the body of PUT /admin/users/{id}/role
type RoleRequest struct {
	Role domain.Role `json:"role"`
}

// AdminHandler forwards the admin views to the backend with the admin's token
type AdminHandler struct {
	client    *api.Client
	publisher events.Publisher
	logger    hclog.Logger
}

func NewAdminHandler(client *api.Client, publisher events.Publisher, log hclog.Logger) *AdminHandler {
	return &AdminHandler{client: client, publisher: publisher, logger: log}
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	s := sessionFrom(r)
	h.logger.Error("Backend admin call failed", "session", s.ID, "path", r.URL.Path, "error", err)
	events.Notify(h.publisher, s.ID, events.LevelError, "%s", err.Error())
	writeError(w, err, "Backend request failed")
}

func listParams(r *http.Request) url.Values {
	params := r.URL.Query()
	if params.Get("limit") == "" {
		params.Set("limit", defaultAdminLimit)
	}
	return params
}

// Dashboard handles GET /admin/dashboard
//
// swagger:route GET /admin/dashboard admin dashboard
//
// Returns the headline numbers of the store.
//
// Responses:
//
//	200: dashboardResponse
//	403: errorResponse
//	503: errorResponse
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := api.WithToken(r.Context(), sessionFrom(r).Auth.Token())
	stats, err := h.client.Admin().Dashboard(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// Orders handles GET /admin/orders
//
// swagger:route GET /admin/orders admin adminOrders
//
// Lists the orders of every customer.
//
// Responses:
//
//	200: ordersResponse
//	403: errorResponse
//	503: errorResponse
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	ctx := api.WithToken(r.Context(), sessionFrom(r).Auth.Token())
	orders, err := h.client.Admin().Orders(ctx, listParams(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OrdersResponse{Orders: orders})
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status
//
// swagger:route PUT /admin/orders/{id}/status admin updateOrderStatus
//
// Moves an order to a new fulfilment status.
//
// Responses:
//
//	204: noContentResponse
//	403: errorResponse
//	503: errorResponse
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var req StatusRequest
	if err := decode(r, &req); err != nil || req.Status == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx := api.WithToken(r.Context(), s.Auth.Token())
	if err := h.client.Admin().UpdateOrderStatus(ctx, mux.Vars(r)["id"], req.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	events.Notify(h.publisher, s.ID, events.LevelSuccess, "Order status updated!")
	w.WriteHeader(http.StatusNoContent)
}

// Users handles GET /admin/users
//
// swagger:route GET /admin/users admin adminUsers
//
// Lists the registered users.
//
// Responses:
//
//	200: usersResponse
//	403: errorResponse
//	503: errorResponse
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	ctx := api.WithToken(r.Context(), sessionFrom(r).Auth.Token())
	users, err := h.client.Admin().Users(ctx, listParams(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// UpdateUserRole handles PUT /admin/users/{id}/role
//
// swagger:route PUT /admin/users/{id}/role admin updateUserRole
//
// Changes the role of a user.
//
// Responses:
//
//	204: noContentResponse
//	400: errorResponse
//	403: errorResponse
//	503: errorResponse
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var req RoleRequest
	if err := decode(r, &req); err != nil || (req.Role != domain.RoleUser && req.Role != domain.RoleAdmin) {
		writeMessage(w, http.StatusBadRequest, "Invalid role")
		return
	}

	ctx := api.WithToken(r.Context(), s.Auth.Token())
	if err := h.client.Admin().UpdateUserRole(ctx, mux.Vars(r)["id"], req.Role); err != nil {
		h.fail(w, r, err)
		return
	}
	events.Notify(h.publisher, s.ID, events.LevelSuccess, "Role updated to %s", req.Role)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /admin/users/{id}
//
// swagger:route DELETE /admin/users/{id} admin deleteUser
//
// Deletes a user account.
//
// Responses:
//
//	204: noContentResponse
//	403: errorResponse
//	503: errorResponse
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	ctx := api.WithToken(r.Context(), s.Auth.Token())
	if err := h.client.Admin().DeleteUser(ctx, mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	events.Notify(h.publisher, s.ID, events.LevelSuccess, "User deleted.")
	w.WriteHeader(http.StatusNoContent)
}
