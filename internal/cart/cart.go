// Package cart holds the shopper's line items and prices them.
//
// Every mutation writes the complete cart state (lines, coupon code and
// discount percentage) to the backing store before returning, so a cart
// restored with Load is always the last state a caller observed.
package cart

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

// Storage keys
const (
	KeyLines    = "luxegear-cart"
	KeyCoupon   = "luxegear-coupon"
	KeyDiscount = "luxegear-discount"
)

// Line is a product snapshot and the quantity ordered.
// It encodes flat, the product fields next to "quantity".
type Line struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CouponResult reports the outcome of ApplyCoupon
type CouponResult struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Percent int    `json:"discount,omitempty"`
}

// Cart is safe for concurrent use
type Cart struct {
	lines      []Line
	couponCode string
	discount   int

	coupons   CouponTable
	policy    PricingPolicy
	store     storage.Store
	publisher events.Publisher
	sessionID string
	log       hclog.Logger
	mutex     sync.RWMutex
}

// Option configures a Cart
type Option func(*Cart)

// WithCoupons replaces the default coupon table
func WithCoupons(t CouponTable) Option {
	return func(c *Cart) { c.coupons = t }
}

// WithPolicy replaces the default shipping policy
func WithPolicy(p PricingPolicy) Option {
	return func(c *Cart) { c.policy = p }
}

// WithPublisher sends cart events to p
func WithPublisher(p events.Publisher) Option {
	return func(c *Cart) { c.publisher = p }
}

// WithSessionID tags published events with the owning session
func WithSessionID(id string) Option {
	return func(c *Cart) { c.sessionID = id }
}

func WithLogger(l hclog.Logger) Option {
	return func(c *Cart) { c.log = l }
}

// New returns an empty cart persisted to store
func New(store storage.Store, opts ...Option) *Cart {
	c := &Cart{
		coupons:   DefaultCoupons(),
		policy:    DefaultPolicy(),
		store:     store,
		publisher: events.Discard,
		log:       hclog.NewNullLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Load restores the cart saved in store. Missing keys give an empty cart.
// A saved discount that does not belong to the saved code in the coupon
// table, lines without quantity and quantities above stock are corrected.
func Load(ctx context.Context, store storage.Store, opts ...Option) (*Cart, error) {
	c := New(store, opts...)

	lines, err := storage.GetOrDefault(ctx, store, KeyLines, []Line{})
	if err != nil {
		return nil, fmt.Errorf("loading cart lines: %w", err)
	}
	code, err := storage.GetOrDefault(ctx, store, KeyCoupon, "")
	if err != nil {
		return nil, fmt.Errorf("loading coupon: %w", err)
	}
	discount, err := storage.GetOrDefault(ctx, store, KeyDiscount, 0)
	if err != nil {
		return nil, fmt.Errorf("loading discount: %w", err)
	}

	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		l.Quantity = min(l.Quantity, l.Stock)
		if l.Quantity <= 0 {
			continue
		}
		c.lines = append(c.lines, l)
	}

	if normalized, pct, ok := c.coupons.Lookup(code); ok && pct == discount {
		c.couponCode, c.discount = normalized, pct
	} else if code != "" || discount != 0 {
		c.log.Warn("Discarding stored coupon", "code", code, "discount", discount)
	}

	c.log.Debug("Cart loaded", "lines", len(c.lines), "coupon", c.couponCode)
	return c, nil
}

// Add puts quantity units of product in the cart. A quantity below one adds one unit.
// The resulting line quantity never exceeds the product's stock.
func (c *Cart) Add(ctx context.Context, product *domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if product.Stock <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrOutOfStock, product.Name)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log.Debug("Adding to cart", "product_id", product.ID, "quantity", quantity)
	c.add(product, quantity)
	return c.commit(ctx)
}

// AddAll adds one unit of every in-stock product, e.g. the whole wishlist.
// Products that are out of stock are skipped; the skipped ones are returned.
func (c *Cart) AddAll(ctx context.Context, products []*domain.Product) ([]*domain.Product, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var skipped []*domain.Product
	for _, p := range products {
		if p.Stock <= 0 {
			skipped = append(skipped, p)
			continue
		}
		c.add(p, 1)
	}
	c.log.Debug("Adding products to cart", "count", len(products), "skipped", len(skipped))
	return skipped, c.commit(ctx)
}

// add merges into an existing line and refreshes its product snapshot, so
// later caps use the latest stock seen
func (c *Cart) add(product *domain.Product, quantity int) {
	if i := c.index(product.ID); i >= 0 {
		c.lines[i].Product = *product
		c.lines[i].Quantity = min(c.lines[i].Quantity+quantity, product.Stock)
		return
	}
	c.lines = append(c.lines, Line{Product: *product, Quantity: min(quantity, product.Stock)})
}

// Remove deletes the line for productID. Removing a product that is not in the cart does nothing.
func (c *Cart) Remove(ctx context.Context, productID int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log.Debug("Removing from cart", "product_id", productID)
	c.remove(productID)
	return c.commit(ctx)
}

func (c *Cart) remove(productID int) {
	c.lines = slices.DeleteFunc(c.lines, func(l Line) bool { return l.ID == productID })
}

// SetQuantity sets the quantity of an existing line, capped at the product's stock.
// A quantity of zero or less removes the line. Unknown products are ignored.
func (c *Cart) SetQuantity(ctx context.Context, productID, quantity int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log.Debug("Updating quantity", "product_id", productID, "quantity", quantity)
	if quantity <= 0 {
		c.remove(productID)
		return c.commit(ctx)
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = min(quantity, c.lines[i].Stock)
	}
	return c.commit(ctx)
}

// SetProductQuantity is SetQuantity capped at the stock of product, the current
// catalog record. The line's snapshot is replaced by product. A product that
// is no longer in stock loses its line.
func (c *Cart) SetProductQuantity(ctx context.Context, product *domain.Product, quantity int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log.Debug("Updating quantity", "product_id", product.ID, "quantity", quantity, "stock", product.Stock)
	i := c.index(product.ID)
	if i < 0 {
		return c.commit(ctx)
	}
	c.lines[i].Product = *product
	c.lines[i].Quantity = min(quantity, product.Stock)
	if c.lines[i].Quantity <= 0 {
		c.remove(product.ID)
	}
	return c.commit(ctx)
}

// Quantity is the number of units of productID in the cart
func (c *Cart) Quantity(productID int) int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Clear empties the cart and drops the coupon
func (c *Cart) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log.Debug("Clearing cart")
	c.lines = nil
	c.couponCode, c.discount = "", 0
	return c.commit(ctx)
}

// ApplyCoupon activates code when it is in the coupon table, replacing any
// active coupon. An unknown code leaves the cart unchanged and is reported
// through CouponResult, not as an error.
func (c *Cart) ApplyCoupon(ctx context.Context, code string) (CouponResult, error) {
	normalized, pct, ok := c.coupons.Lookup(code)
	if !ok {
		c.log.Debug("Rejected coupon", "code", code)
		return CouponResult{Success: false}, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log.Debug("Applying coupon", "code", normalized, "discount", pct)
	c.couponCode, c.discount = normalized, pct
	if err := c.commit(ctx); err != nil {
		return CouponResult{}, err
	}
	c.publisher.Publish(events.CouponApplied{SessionID: c.sessionID, Code: normalized, Percent: pct})
	return CouponResult{Success: true, Code: normalized, Percent: pct}, nil
}

// RemoveCoupon drops the active coupon, if any
func (c *Cart) RemoveCoupon(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.couponCode, c.discount = "", 0
	return c.commit(ctx)
}

// Lines returns a copy of the line items in insertion order
func (c *Cart) Lines() []Line {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return slices.Clone(c.lines)
}

// Len is the number of distinct products in the cart
func (c *Cart) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.lines)
}

// Summary prices the current lines
func (c *Cart) Summary() Summary {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.summary()
}

func (c *Cart) summary() Summary {
	return Price(slices.Clone(c.lines), c.couponCode, c.discount, c.policy)
}

func (c *Cart) index(productID int) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ID == productID })
}

// commit persists the full state and announces it. Callers hold the write lock.
func (c *Cart) commit(ctx context.Context) error {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	if err := c.store.Set(ctx, KeyLines, lines); err != nil {
		return fmt.Errorf("saving cart lines: %w", err)
	}
	if err := c.store.Set(ctx, KeyCoupon, c.couponCode); err != nil {
		return fmt.Errorf("saving coupon: %w", err)
	}
	if err := c.store.Set(ctx, KeyDiscount, c.discount); err != nil {
		return fmt.Errorf("saving discount: %w", err)
	}

	s := c.summary()
	c.publisher.Publish(events.CartUpdated{
		SessionID: c.sessionID,
		ItemCount: s.ItemCount,
		Total:     s.Total.InexactFloat64(),
	})
	return nil
}
