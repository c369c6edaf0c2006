// Package wishlist keeps the products a shopper has saved for later
package wishlist

import (
	"context"
	"fmt"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/storage"
	"slices"
	"sync"
)

// KeyItems is the storage key of the saved products
const KeyItems = "luxegear-wishlist"

// Wishlist is safe for concurrent use
type Wishlist struct {
	items     []domain.Product
	store     storage.Store
	publisher events.Publisher
	sessionID string
	log       hclog.Logger
	mutex     sync.RWMutex
}

// Load restores the wishlist saved in store
func Load(ctx context.Context, store storage.Store, sessionID string, publisher events.Publisher, log hclog.Logger) (*Wishlist, error) {
	items, err := storage.GetOrDefault(ctx, store, KeyItems, []domain.Product{})
	if err != nil {
		return nil, fmt.Errorf("loading wishlist: %w", err)
	}
	if publisher == nil {
		publisher = events.Discard
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Wishlist{
		items:     items,
		store:     store,
		publisher: publisher,
		sessionID: sessionID,
		log:       log,
	}, nil
}

// Toggle saves product when it is not in the list and removes it otherwise.
// It returns whether the product is wishlisted afterwards.
func (w *Wishlist) Toggle(ctx context.Context, product *domain.Product) (bool, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	wishlisted := true
	if i := w.index(product.ID); i >= 0 {
		w.items = slices.Delete(w.items, i, i+1)
		wishlisted = false
	} else {
		w.items = append(w.items, *product)
	}

	w.log.Debug("Toggled wishlist", "product_id", product.ID, "wishlisted", wishlisted)
	if err := w.save(ctx); err != nil {
		return !wishlisted, err
	}
	w.publisher.Publish(events.WishlistToggled{SessionID: w.sessionID, ProductID: product.ID, Wishlisted: wishlisted})
	return wishlisted, nil
}

// Remove drops productID from the list, if present
func (w *Wishlist) Remove(ctx context.Context, productID int) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	i := w.index(productID)
	if i < 0 {
		return nil
	}
	w.items = slices.Delete(w.items, i, i+1)
	if err := w.save(ctx); err != nil {
		return err
	}
	w.publisher.Publish(events.WishlistToggled{SessionID: w.sessionID, ProductID: productID, Wishlisted: false})
	return nil
}

// Contains reports whether productID is wishlisted
func (w *Wishlist) Contains(productID int) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.index(productID) >= 0
}

// Items returns the saved products in the order they were added
func (w *Wishlist) Items() []*domain.Product {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	out := make([]*domain.Product, len(w.items))
	for i := range w.items {
		p := w.items[i]
		out[i] = &p
	}
	return out
}

func (w *Wishlist) index(productID int) int {
	return slices.IndexFunc(w.items, func(p domain.Product) bool { return p.ID == productID })
}

func (w *Wishlist) save(ctx context.Context) error {
	items := w.items
	if items == nil {
		items = []domain.Product{}
	}
	if err := w.store.Set(ctx, KeyItems, items); err != nil {
		return fmt.Errorf("saving wishlist: %w", err)
	}
	return nil
}
