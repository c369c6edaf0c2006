package api

import (
	"context"
	"fmt"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"net/http"
	"net/url"
)

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate holds the editable account fields
type ProfileUpdate struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type userBody struct {
	User domain.User `json:"user"`
}

type AuthAPI struct{ c *Client }

func (a *AuthAPI) Register(ctx context.Context, cred Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/register", nil, cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Login(ctx context.Context, cred Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var out userBody
	if err := a.c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (a *AuthAPI) Update(ctx context.Context, upd ProfileUpdate) (*domain.User, error) {
	var out userBody
	if err := a.c.do(ctx, http.MethodPut, "/api/auth/me", nil, upd, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

type productsBody struct {
	Products []*domain.Product `json:"products"`
}

type productBody struct {
	Product *domain.Product `json:"product"`
}

type ProductsAPI struct{ c *Client }

func (p *ProductsAPI) List(ctx context.Context, params url.Values) ([]*domain.Product, error) {
	var out productsBody
	if err := p.c.do(ctx, http.MethodGet, "/api/products", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (p *ProductsAPI) Featured(ctx context.Context) ([]*domain.Product, error) {
	var out productsBody
	if err := p.c.do(ctx, http.MethodGet, "/api/products/featured", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (p *ProductsAPI) Get(ctx context.Context, id int) (*domain.Product, error) {
	var out productBody
	if err := p.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (p *ProductsAPI) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var out productBody
	if err := p.c.do(ctx, http.MethodPost, "/api/products", nil, product, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (p *ProductsAPI) Update(ctx context.Context, id int, product *domain.Product) (*domain.Product, error) {
	var out productBody
	if err := p.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), nil, product, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (p *ProductsAPI) Delete(ctx context.Context, id int) error {
	return p.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}

type orderBody struct {
	Order *domain.Order `json:"order"`
}

type ordersBody struct {
	Orders []*domain.Order `json:"orders"`
}

type OrdersAPI struct{ c *Client }

// Place submits a completed checkout
func (o *OrdersAPI) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var out orderBody
	if err := o.c.do(ctx, http.MethodPost, "/api/orders", nil, order, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (o *OrdersAPI) Mine(ctx context.Context) ([]*domain.Order, error) {
	var out ordersBody
	if err := o.c.do(ctx, http.MethodGet, "/api/orders/my", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (o *OrdersAPI) Get(ctx context.Context, id string) (*domain.Order, error) {
	var out orderBody
	if err := o.c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

// DashboardStats are the headline numbers of the admin dashboard
type DashboardStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int     `json:"totalOrders"`
	TotalUsers    int     `json:"totalUsers"`
	TotalProducts int     `json:"totalProducts"`
	PendingOrders int     `json:"pendingOrders"`
}

type AdminAPI struct{ c *Client }

func (a *AdminAPI) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var out struct {
		Stats DashboardStats `json:"stats"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

func (a *AdminAPI) Orders(ctx context.Context, params url.Values) ([]*domain.Order, error) {
	var out ordersBody
	if err := a.c.do(ctx, http.MethodGet, "/api/admin/orders", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (a *AdminAPI) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	body := map[string]domain.OrderStatus{"status": status}
	return a.c.do(ctx, http.MethodPut, "/api/admin/orders/"+url.PathEscape(id)+"/status", nil, body, nil)
}

func (a *AdminAPI) Users(ctx context.Context, params url.Values) ([]*domain.User, error) {
	var out struct {
		Users []*domain.User `json:"users"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/api/admin/users", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (a *AdminAPI) UpdateUserRole(ctx context.Context, id string, role domain.Role) error {
	body := map[string]domain.Role{"role": role}
	return a.c.do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(id)+"/role", nil, body, nil)
}

func (a *AdminAPI) DeleteUser(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil, nil, nil)
}
