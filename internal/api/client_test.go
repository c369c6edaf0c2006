package api

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// backend records the last request and replies with status and body
type backend struct {
	status int
	body   string

	method string
	path   string
	query  url.Values
	auth   string
	sent   map[string]any
}

func (b *backend) start(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		b.method, b.path, b.query = r.Method, r.URL.Path, r.URL.Query()
		b.auth = r.Header.Get("Authorization")
		b.sent = nil
		_ = json.NewDecoder(r.Body).Decode(&b.sent)

		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(b.status)
		rw.Write([]byte(b.body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestNilClient(t *testing.T) {
	c := NewClient("")
	assert.Nil(t, c)
	assert.False(t, c.Configured())

	_, err := c.Auth().Login(context.Background(), Credentials{Email: "a@b.co", Password: "secret"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoginSendsCredentials(t *testing.T) {
	b := &backend{status: http.StatusOK, body: `{"token":"tok-1","user":{"id":"u1","name":"Asha","email":"asha@example.com","role":"user"}}`}
	c := b.start(t)

	resp, err := c.Auth().Login(context.Background(), Credentials{Email: "asha@example.com", Password: "hunter22"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, b.method)
	assert.Equal(t, "/api/auth/login", b.path)
	assert.Equal(t, "asha@example.com", b.sent["email"])
	assert.NotContains(t, b.sent, "name")
	assert.Empty(t, b.auth)

	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
}

func TestBearerToken(t *testing.T) {
	b := &backend{status: http.StatusOK, body: `{"user":{"id":"u1"}}`}
	c := b.start(t)

	_, err := c.Auth().Me(WithToken(context.Background(), "abc"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", b.auth)
	assert.Equal(t, "/api/auth/me", b.path)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message from body", http.StatusUnauthorized, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"empty body", http.StatusInternalServerError, ``, "Request failed"},
		{"non json body", http.StatusBadGateway, `<html>bad gateway</html>`, "Request failed"},
		{"json without message", http.StatusBadRequest, `{"error":"nope"}`, "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &backend{status: tt.status, body: tt.body}
			c := b.start(t)

			_, err := c.Products().Get(context.Background(), 3)
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestStatusCodeOfOtherErrors(t *testing.T) {
	assert.Equal(t, 0, StatusCode(errors.New("boom")))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestProductEndpoints(t *testing.T) {
	b := &backend{status: http.StatusOK, body: `{"products":[{"id":1,"name":"Aurora"},{"id":2,"name":"Pulse"}]}`}
	c := b.start(t)
	ctx := context.Background()

	list, err := c.Products().List(ctx, url.Values{"category": {"headphones"}})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "/api/products", b.path)
	assert.Equal(t, "headphones", b.query.Get("category"))

	_, err = c.Products().Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/products/featured", b.path)

	b.body = `{"product":{"id":7,"name":"Vector"}}`
	p, err := c.Products().Update(ctx, 7, &domain.Product{ID: 7, Name: "Vector"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, b.method)
	assert.Equal(t, "/api/products/7", b.path)
	assert.Equal(t, "Vector", p.Name)

	b.body = ``
	require.NoError(t, c.Products().Delete(ctx, 7))
	assert.Equal(t, http.MethodDelete, b.method)
}

func TestOrderAndAdminEndpoints(t *testing.T) {
	b := &backend{status: http.StatusCreated, body: `{"order":{"id":"ORD-AB12C","total":99.5,"status":"pending"}}`}
	c := b.start(t)
	ctx := context.Background()

	o, err := c.Orders().Place(ctx, &domain.Order{ID: "ORD-AB12C", Total: 99.5})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders", b.path)
	assert.Equal(t, domain.OrderPending, o.Status)

	b.status, b.body = http.StatusOK, `{"orders":[{"id":"ORD-AB12C"}]}`
	mine, err := c.Orders().Mine(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "/api/orders/my", b.path)

	b.body = `{"stats":{"totalRevenue":1234.5,"totalOrders":3,"totalUsers":2,"totalProducts":16}}`
	stats, err := c.Admin().Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, stats.TotalRevenue)
	assert.Equal(t, 16, stats.TotalProducts)

	b.body = `{}`
	require.NoError(t, c.Admin().UpdateOrderStatus(ctx, "ORD-AB12C", domain.OrderShipped))
	assert.Equal(t, "/api/admin/orders/ORD-AB12C/status", b.path)
	assert.Equal(t, "shipped", b.sent["status"])

	require.NoError(t, c.Admin().UpdateUserRole(ctx, "u1", domain.RoleAdmin))
	assert.Equal(t, "/api/admin/users/u1/role", b.path)
	assert.Equal(t, "admin", b.sent["role"])

	b.body = `{"users":[{"id":"u1"},{"id":"u2"}]}`
	users, err := c.Admin().Users(ctx, url.Values{"search": {"a"}})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "a", b.query.Get("search"))
}
