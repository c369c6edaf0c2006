// Package checkout walks a cart through shipping and payment to a placed order
package checkout

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/cart"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"strings"
	"sync"
	"time"
)

// Step of the checkout wizard
type Step int

const (
	StepCart Step = iota
	StepShipping
	StepPayment
	StepConfirmed
)

var stepNames = [...]string{"cart", "shipping", "payment", "confirmed"}

func (s Step) String() string {
	if s < StepCart || s > StepConfirmed {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DefaultDelay is how long payment processing takes
const DefaultDelay = 1800 * time.Millisecond

// Account is the signed-in user of the session, if any
type Account interface {
	User() *domain.User
	Token() string
	AddOrder(ctx context.Context, order domain.OrderSummary) error
}

// State is a snapshot of the wizard
type State struct {
	Step     Step                `json:"step"`
	Shipping domain.ShippingForm `json:"shipping"`
	Order    *domain.Order       `json:"order,omitempty"`
}

// Checkout is safe for concurrent use; one payment is processed at a time
type Checkout struct {
	step     Step
	shipping domain.ShippingForm
	order    *domain.Order

	cart       *cart.Cart
	validation *domain.Validation
	account    Account
	client     *api.Client
	publisher  events.Publisher
	sessionID  string
	delay      time.Duration
	now        func() time.Time
	log        hclog.Logger
	mutex      sync.Mutex
}

// Option configures a Checkout
type Option func(*Checkout)

// WithAccount pre-fills shipping details and records placed orders for the user
func WithAccount(a Account) Option {
	return func(c *Checkout) { c.account = a }
}

// WithClient sends placed orders to the backend
func WithClient(cl *api.Client) Option {
	return func(c *Checkout) { c.client = cl }
}

func WithPublisher(p events.Publisher) Option {
	return func(c *Checkout) { c.publisher = p }
}

func WithSessionID(id string) Option {
	return func(c *Checkout) { c.sessionID = id }
}

// WithDelay sets the simulated payment processing time
func WithDelay(d time.Duration) Option {
	return func(c *Checkout) { c.delay = d }
}

func WithLogger(l hclog.Logger) Option {
	return func(c *Checkout) { c.log = l }
}

// New creates a wizard for crt, starting at the cart step
func New(crt *cart.Cart, v *domain.Validation, opts ...Option) *Checkout {
	c := &Checkout{
		cart:       crt,
		validation: v,
		publisher:  events.Discard,
		delay:      DefaultDelay,
		now:        time.Now,
		log:        hclog.NewNullLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns the current step, shipping details and the confirmed order
func (c *Checkout) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state()
}

func (c *Checkout) state() State {
	s := State{Step: c.step, Shipping: c.shipping}
	if c.order != nil {
		o := *c.order
		s.Order = &o
	}
	return s
}

// Begin moves to the shipping step. The cart must not be empty.
// Shipping fields left blank are filled from the signed-in user.
func (c *Checkout) Begin() (State, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cart.Len() == 0 {
		return c.state(), domain.ErrEmptyCart
	}

	if c.step == StepConfirmed {
		c.order = nil
		c.shipping = domain.ShippingForm{}
	}
	c.prefill()
	c.step = StepShipping
	c.log.Debug("Checkout started", "session", c.sessionID)
	return c.state(), nil
}

func (c *Checkout) prefill() {
	if c.shipping.Country == "" {
		c.shipping.Country = domain.DefaultCountry
	}
	if c.account == nil {
		return
	}
	u := c.account.User()
	if u == nil {
		return
	}
	names := strings.Split(u.Name, " ")
	if c.shipping.FirstName == "" {
		c.shipping.FirstName = names[0]
	}
	if c.shipping.LastName == "" && len(names) > 1 {
		c.shipping.LastName = names[1]
	}
	if c.shipping.Email == "" {
		c.shipping.Email = u.Email
	}
}

// SubmitShipping validates form and moves to the payment step.
// On a validation failure the domain.ValidationErrors are returned and the step does not change.
func (c *Checkout) SubmitShipping(form domain.ShippingForm) (State, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.step != StepShipping && c.step != StepPayment {
		return c.state(), fmt.Errorf("%w: shipping from %s", domain.ErrStepOrder, c.step)
	}

	if form.Country == "" {
		form.Country = domain.DefaultCountry
	}
	c.shipping = form
	if errs := c.validation.Validate(form); len(errs) > 0 {
		c.step = StepShipping
		return c.state(), errs
	}

	c.step = StepPayment
	return c.state(), nil
}

// Back returns from payment to shipping
func (c *Checkout) Back() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.step == StepPayment {
		c.step = StepShipping
	}
	return c.state()
}

// SubmitPayment validates form and places the order. The card details are
// only validated, never stored. A backend failure is reported with a
// notification and the order is still confirmed locally.
func (c *Checkout) SubmitPayment(ctx context.Context, form domain.PaymentForm) (*domain.Order, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.step != StepPayment {
		return nil, fmt.Errorf("%w: payment from %s", domain.ErrStepOrder, c.step)
	}
	if errs := c.validation.Validate(form); len(errs) > 0 {
		return nil, errs
	}
	if c.cart.Len() == 0 {
		return nil, domain.ErrEmptyCart
	}

	c.log.Debug("Processing payment", "session", c.sessionID, "delay", c.delay)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.delay):
	}

	order := c.buildOrder()
	c.submit(ctx, order)

	if err := c.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clearing cart: %w", err)
	}
	if c.account != nil {
		if err := c.account.AddOrder(ctx, order.Summary()); err != nil {
			c.log.Error("Unable to record order", "order_id", order.ID, "error", err)
		}
	}

	c.order = order
	c.step = StepConfirmed
	c.log.Info("Order placed", "order_id", order.ID, "total", order.Total)

	c.publisher.Publish(events.OrderPlaced{SessionID: c.sessionID, OrderID: order.ID, Total: order.Total})
	events.Notify(c.publisher, c.sessionID, events.LevelSuccess, "Order %s placed!", order.ID)

	out := *order
	return &out, nil
}

func (c *Checkout) buildOrder() *domain.Order {
	s := c.cart.Summary()
	lines := make([]domain.OrderLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = domain.OrderLine{
			ProductID: l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
		if len(l.Images) > 0 {
			lines[i].Image = l.Images[0]
		}
	}
	return &domain.Order{
		ID:              NewOrderID(),
		Lines:           lines,
		Shipping:        c.shipping,
		Subtotal:        s.Subtotal.InexactFloat64(),
		DiscountPercent: s.DiscountPercent,
		DiscountAmount:  s.DiscountAmount.InexactFloat64(),
		ShippingFee:     s.Shipping.InexactFloat64(),
		Total:           s.Total.InexactFloat64(),
		CouponCode:      s.CouponCode,
		Status:          domain.OrderPending,
		PlacedAt:        c.now().UTC(),
	}
}

// submit hands the order to the backend when one is configured
func (c *Checkout) submit(ctx context.Context, order *domain.Order) {
	if !c.client.Configured() {
		return
	}
	if c.account != nil {
		ctx = api.WithToken(ctx, c.account.Token())
	}
	if _, err := c.client.Orders().Place(ctx, order); err != nil {
		c.log.Error("Unable to submit order", "order_id", order.ID, "error", err)
		msg := err.Error()
		var apiErr *api.Error
		if !errors.As(err, &apiErr) {
			msg = "order service unavailable"
		}
		events.Notify(c.publisher, c.sessionID, events.LevelWarning, "Order saved locally: %s", msg)
	}
}

// Reset abandons the wizard and returns to the cart step
func (c *Checkout) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.step = StepCart
	c.order = nil
}

const orderAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID returns "ORD-" followed by five random upper-case base-36 characters
func NewOrderID() string {
	id := uuid.New()
	var b strings.Builder
	b.WriteString("ORD-")
	for i := 0; i < 5; i++ {
		b.WriteByte(orderAlphabet[int(id[i])%len(orderAlphabet)])
	}
	return b.String()
}
