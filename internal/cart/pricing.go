package cart

import (
	"encoding/json"
	"github.com/shopspring/decimal"
)

// PricingPolicy holds the shipping rules applied to every cart
type PricingPolicy struct {
	// Shipping is free once the subtotal, before any discount, is strictly above this amount
	FreeShippingThreshold decimal.Decimal
	// FlatShipping is charged on non-empty carts below the threshold
	FlatShipping decimal.Decimal
}

// DefaultPolicy is free shipping above 150 and a 9.99 flat fee otherwise
func DefaultPolicy() PricingPolicy {
	return PricingPolicy{
		FreeShippingThreshold: decimal.NewFromInt(150),
		FlatShipping:          decimal.RequireFromString("9.99"),
	}
}

// Summary is the pricing snapshot derived from the cart lines and the active coupon
type Summary struct {
	Lines           []Line
	ItemCount       int
	Subtotal        decimal.Decimal
	CouponCode      string
	DiscountPercent int
	DiscountAmount  decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
}

// FreeShipping reports whether the shipping fee was waived
func (s Summary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

// Price computes the summary for lines with a discount of pct percent
func Price(lines []Line, code string, pct int, policy PricingPolicy) Summary {
	s := Summary{
		Lines:           lines,
		CouponCode:      code,
		DiscountPercent: pct,
		Subtotal:        decimal.Zero,
	}

	for _, l := range lines {
		s.ItemCount += l.Quantity
		s.Subtotal = s.Subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	s.DiscountAmount = s.Subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(2)

	switch {
	case s.Subtotal.IsZero(), s.Subtotal.GreaterThan(policy.FreeShippingThreshold):
		s.Shipping = decimal.Zero
	default:
		s.Shipping = policy.FlatShipping
	}

	s.Total = s.Subtotal.Sub(s.DiscountAmount).Add(s.Shipping)
	return s
}

type summaryJSON struct {
	Lines           []Line  `json:"items"`
	ItemCount       int     `json:"itemCount"`
	Subtotal        float64 `json:"subtotal"`
	CouponCode      string  `json:"couponCode"`
	DiscountPercent int     `json:"appliedDiscount"`
	DiscountAmount  float64 `json:"discountAmount"`
	Shipping        float64 `json:"shipping"`
	FreeShipping    bool    `json:"freeShipping"`
	Total           float64 `json:"total"`
}

// MarshalJSON renders the amounts as plain JSON numbers
func (s Summary) MarshalJSON() ([]byte, error) {
	lines := s.Lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(summaryJSON{
		Lines:           lines,
		ItemCount:       s.ItemCount,
		Subtotal:        s.Subtotal.InexactFloat64(),
		CouponCode:      s.CouponCode,
		DiscountPercent: s.DiscountPercent,
		DiscountAmount:  s.DiscountAmount.InexactFloat64(),
		Shipping:        s.Shipping.InexactFloat64(),
		FreeShipping:    s.FreeShipping(),
		Total:           s.Total.InexactFloat64(),
	})
}
