package wishlist

import (
	"context"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestToggle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	bus := events.NewEventBus[any]()
	sub := bus.Subscribe()

	w, err := Load(ctx, store, "s1", bus, nil)
	require.NoError(t, err)

	p := &domain.Product{ID: 3, Name: "Echo Buds Pro"}

	on, err := w.Toggle(ctx, p)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, w.Contains(3))
	assert.Equal(t, events.WishlistToggled{SessionID: "s1", ProductID: 3, Wishlisted: true}, <-sub)

	on, err = w.Toggle(ctx, p)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, w.Contains(3))
	assert.Empty(t, w.Items())
}

func TestRemoveAndPersistence(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	w, err := Load(ctx, store, "", nil, nil)
	require.NoError(t, err)

	for _, id := range []int{5, 1, 9} {
		_, err := w.Toggle(ctx, &domain.Product{ID: id})
		require.NoError(t, err)
	}
	require.NoError(t, w.Remove(ctx, 1))
	require.NoError(t, w.Remove(ctx, 42))

	restored, err := Load(ctx, store, "", nil, nil)
	require.NoError(t, err)

	var got []int
	for _, p := range restored.Items() {
		got = append(got, p.ID)
	}
	assert.Equal(t, []int{5, 9}, got)
}
