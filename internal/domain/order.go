package domain

import "time"

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderLine is a purchased product and quantity, priced at checkout time
type OrderLine struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Order is the payload placed with the backend when checkout completes
//
// swagger:model
type Order struct {
	ID              string       `json:"id"`
	Lines           []OrderLine  `json:"items"`
	Shipping        ShippingForm `json:"shippingAddress"`
	Subtotal        float64      `json:"subtotal"`
	DiscountPercent int          `json:"discountPercent"`
	DiscountAmount  float64      `json:"discountAmount"`
	ShippingFee     float64      `json:"shippingFee"`
	Total           float64      `json:"total"`
	CouponCode      string       `json:"couponCode,omitempty"`
	Status          OrderStatus  `json:"status"`
	PlacedAt        time.Time    `json:"placedAt"`
}

// OrderSummary is the short form kept in a user's order history
type OrderSummary struct {
	ID        string      `json:"id"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
	Status    OrderStatus `json:"status"`
	PlacedAt  time.Time   `json:"placedAt"`
}

// Summary shortens the order for the user's history
func (o *Order) Summary() OrderSummary {
	count := 0
	for _, l := range o.Lines {
		count += l.Quantity
	}
	return OrderSummary{
		ID:        o.ID,
		Total:     o.Total,
		ItemCount: count,
		Status:    o.Status,
		PlacedAt:  o.PlacedAt,
	}
}
