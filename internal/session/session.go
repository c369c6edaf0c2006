// Package session keeps the per-shopper state: cart, wishlist, sign-in and checkout
package session

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/auth"
	"github.com/kahvecikaan/luxegear/internal/cart"
	"github.com/kahvecikaan/luxegear/internal/checkout"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/storage"
	"github.com/kahvecikaan/luxegear/internal/wishlist"
	"sync"
	"time"
)

// Header carries the shopper's session id. The id is the session's only credential.
const Header = "X-Session-ID"

// Session is the state of one shopper
type Session struct {
	ID       string
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
	Auth     *auth.Auth
	Checkout *checkout.Checkout
}

const (
	DefaultMaxSessions = 10000
	DefaultIdleTimeout = 30 * time.Minute
)

// Config holds the dependencies shared by every session.
// A zero CheckoutDelay means checkout.DefaultDelay, a negative one no delay.
// Zero MaxSessions and IdleTimeout take the defaults above.
type Config struct {
	Store         storage.Store
	Coupons       cart.CouponTable
	Policy        cart.PricingPolicy
	Client        *api.Client
	Publisher     events.Publisher
	Validation    *domain.Validation
	CheckoutDelay time.Duration
	MaxSessions   int
	IdleTimeout   time.Duration
	Logger        hclog.Logger
}

// Manager loads sessions on first use and keeps at most MaxSessions of them in
// memory, dropping the least recently used one first. Sessions idle for longer
// than IdleTimeout are dropped by Sweep. A dropped session is restored from the
// store on its next request; checkout progress does not survive that.
type Manager struct {
	cfg      Config
	log      hclog.Logger
	sessions *lru.Cache
	now      func() time.Time
	mutex    sync.Mutex
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

func NewManager(cfg Config) *Manager {
	if cfg.Coupons == nil {
		cfg.Coupons = cart.DefaultCoupons()
	}
	if cfg.Policy.FlatShipping.IsZero() && cfg.Policy.FreeShippingThreshold.IsZero() {
		cfg.Policy = cart.DefaultPolicy()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.Discard
	}
	if cfg.Validation == nil {
		cfg.Validation = domain.NewValidation()
	}
	switch {
	case cfg.CheckoutDelay == 0:
		cfg.CheckoutDelay = checkout.DefaultDelay
	case cfg.CheckoutDelay < 0:
		cfg.CheckoutDelay = 0
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	m := &Manager{
		cfg: cfg,
		log: cfg.Logger.Named("session"),
		now: time.Now,
	}
	// only fails for a non-positive size
	m.sessions, _ = lru.NewWithEvict(cfg.MaxSessions, func(key, _ interface{}) {
		m.log.Debug("Session dropped from memory", "session", key)
	})
	return m
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id can address a session
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session id, restoring it from storage when it is not in memory
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSession, id)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if v, ok := m.sessions.Get(id); ok {
		e := v.(*entry)
		e.lastUsed = m.now()
		return e.session, nil
	}

	s, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	m.sessions.Add(id, &entry{session: s, lastUsed: m.now()})
	m.log.Debug("Session loaded", "session", id, "active", m.sessions.Len())
	return s, nil
}

func (m *Manager) load(ctx context.Context, id string) (*Session, error) {
	store := storage.Prefixed(m.cfg.Store, "session:"+id)
	log := m.cfg.Logger.With("session", id)

	c, err := cart.Load(ctx, store,
		cart.WithCoupons(m.cfg.Coupons),
		cart.WithPolicy(m.cfg.Policy),
		cart.WithPublisher(m.cfg.Publisher),
		cart.WithSessionID(id),
		cart.WithLogger(log.Named("cart")),
	)
	if err != nil {
		return nil, err
	}

	w, err := wishlist.Load(ctx, store, id, m.cfg.Publisher, log.Named("wishlist"))
	if err != nil {
		return nil, err
	}

	a, err := auth.Load(ctx, store, m.cfg.Client, log.Named("auth"))
	if err != nil {
		return nil, err
	}

	co := checkout.New(c, m.cfg.Validation,
		checkout.WithAccount(a),
		checkout.WithClient(m.cfg.Client),
		checkout.WithPublisher(m.cfg.Publisher),
		checkout.WithSessionID(id),
		checkout.WithDelay(m.cfg.CheckoutDelay),
		checkout.WithLogger(log.Named("checkout")),
	)

	return &Session{ID: id, Cart: c, Wishlist: w, Auth: a, Checkout: co}, nil
}

// Forget drops the in-memory copy of a session; its stored state is kept
func (m *Manager) Forget(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions.Remove(id)
}

// Len is the number of sessions held in memory
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Sweep drops the sessions idle for longer than IdleTimeout and returns how many it dropped
func (m *Manager) Sweep() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cutoff := m.now().Add(-m.cfg.IdleTimeout)
	dropped := 0
	// the oldest entry is the least recently used one
	for {
		_, v, ok := m.sessions.GetOldest()
		if !ok || v.(*entry).lastUsed.After(cutoff) {
			break
		}
		m.sessions.RemoveOldest()
		dropped++
	}
	if dropped > 0 {
		m.log.Info("Idle sessions dropped", "count", dropped, "active", m.sessions.Len())
	}
	return dropped
}

// Run sweeps idle sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
