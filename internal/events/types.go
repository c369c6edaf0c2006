package events

import "fmt"

type ProductAdded struct {
	ProductID int `json:"product_id"`
}

type ProductUpdated struct {
	ProductID int `json:"product_id"`
}

type ProductDeleted struct {
	ProductID int `json:"product_id"`
}

// Session-scoped events carry the owning SessionID for routing only, it is
// never part of the encoded event.

// CartUpdated is published after every cart mutation
type CartUpdated struct {
	SessionID string  `json:"-"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

type CouponApplied struct {
	SessionID string `json:"-"`
	Code      string `json:"code"`
	Percent   int    `json:"percent"`
}

type WishlistToggled struct {
	SessionID  string `json:"-"`
	ProductID  int    `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

type OrderPlaced struct {
	SessionID string  `json:"-"`
	OrderID   string  `json:"order_id"`
	Total     float64 `json:"total"`
}

// Level of a user-facing notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notification is a transient message for the shopper, e.g. "Cart cleared."
type Notification struct {
	SessionID string `json:"-"`
	Level     Level  `json:"level"`
	Message   string `json:"message"`
}

// Notify publishes a notification on p
func Notify(p Publisher, sessionID string, level Level, format string, args ...any) {
	p.Publish(Notification{SessionID: sessionID, Level: level, Message: fmt.Sprintf(format, args...)})
}
