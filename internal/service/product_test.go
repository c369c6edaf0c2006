package service

import (
	"context"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/catalog"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newService(t *testing.T) (ProductService, events.Subscriber[any]) {
	t.Helper()
	bus := events.NewEventBus[any]()
	sub := bus.Subscribe()
	t.Cleanup(func() { bus.Unsubscribe(sub) })
	return NewProductService(repository.NewMemoryProductRepository(), bus, hclog.NewNullLogger()), sub
}

func TestQuery(t *testing.T) {
	s, _ := newService(t)

	page, err := s.Query(context.Background(), catalog.Query{
		Filter: catalog.FilterSpec{Categories: []domain.Category{domain.CategoryKeyboards}},
		Sort:   catalog.SortRating,
	})
	require.NoError(t, err)
	require.Equal(t, 4, page.TotalItems)
	assert.Equal(t, 5, page.Items[0].ID)
}

func TestCollections(t *testing.T) {
	s, _ := newService(t)

	c, err := s.Collections(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Featured, 4)
	assert.Len(t, c.NewArrivals, 4)
	assert.Len(t, c.OnSale, 4)
	for _, p := range c.OnSale {
		assert.True(t, p.IsSale)
	}
}

func TestRelated(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	p, err := s.GetProductByID(ctx, 9)
	require.NoError(t, err)
	related, err := s.Related(ctx, p)
	require.NoError(t, err)
	assert.Len(t, related, 2)
	for _, r := range related {
		assert.Equal(t, domain.CategoryMonitors, r.Category)
		assert.NotEqual(t, 9, r.ID)
	}
}

func TestAdminOperationsPublish(t *testing.T) {
	s, sub := newService(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Desk Mat", Category: domain.CategoryAccessories, Price: 19.99, OriginalPrice: 19.99, Images: []string{"m.jpg"}}
	require.NoError(t, s.AddProduct(ctx, p))
	assert.Equal(t, 17, p.ID)
	assert.Equal(t, events.ProductAdded{ProductID: 17}, <-sub)

	p.Price = 17.99
	require.NoError(t, s.UpdateProduct(ctx, p))
	assert.Equal(t, events.ProductUpdated{ProductID: 17}, <-sub)

	require.NoError(t, s.DeleteProduct(ctx, 17))
	assert.Equal(t, events.ProductDeleted{ProductID: 17}, <-sub)

	_, err := s.GetProductByID(ctx, 17)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, 17), domain.ErrProductNotFound)
}
