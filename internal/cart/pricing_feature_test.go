package cart_test

import (
	"context"
	"fmt"
	"github.com/cucumber/godog"
	"github.com/kahvecikaan/luxegear/internal/cart"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/storage"
	"github.com/shopspring/decimal"
	"testing"
)

type pricingTestContext struct {
	cart   *cart.Cart
	coupon cart.CouponResult
}

func (c *pricingTestContext) anEmptyCart() error {
	c.cart = cart.New(storage.NewMemory())
	c.coupon = cart.CouponResult{}
	return nil
}

func (c *pricingTestContext) iAddOfProductPricedWithStock(quantity, id int, price string, stock int) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	return c.cart.Add(context.Background(), &domain.Product{
		ID:            id,
		Name:          fmt.Sprintf("Product %d", id),
		Category:      domain.CategoryAccessories,
		Price:         p.InexactFloat64(),
		OriginalPrice: p.InexactFloat64(),
		Stock:         stock,
		Images:        []string{"https://example.com/p.jpg"},
	}, quantity)
}

func (c *pricingTestContext) iApplyTheCoupon(code string) error {
	res, err := c.cart.ApplyCoupon(context.Background(), code)
	c.coupon = res
	return err
}

func (c *pricingTestContext) iRemoveTheCoupon() error {
	return c.cart.RemoveCoupon(context.Background())
}

func (c *pricingTestContext) iSetTheQuantityOfProductTo(id, quantity int) error {
	return c.cart.SetQuantity(context.Background(), id, quantity)
}

func (c *pricingTestContext) theCouponIsAcceptedWithPercent(pct int) error {
	if !c.coupon.Success || c.coupon.Percent != pct {
		return fmt.Errorf("expected coupon accepted with %d%%, got %+v", pct, c.coupon)
	}
	return nil
}

func (c *pricingTestContext) theCouponIsRejected() error {
	if c.coupon.Success {
		return fmt.Errorf("expected coupon to be rejected, got %+v", c.coupon)
	}
	return nil
}

func (c *pricingTestContext) theItemCountIs(n int) error {
	if got := c.cart.Summary().ItemCount; got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func amountIs(name string, get func(cart.Summary) decimal.Decimal) func(*pricingTestContext, string) error {
	return func(c *pricingTestContext, want string) error {
		w, err := decimal.NewFromString(want)
		if err != nil {
			return err
		}
		if got := get(c.cart.Summary()); !got.Equal(w) {
			return fmt.Errorf("expected %s %s, got %s", name, w, got)
		}
		return nil
	}
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.anEmptyCart()
		return ctx, nil
	})

	bind := func(f func(*pricingTestContext, string) error) func(string) error {
		return func(s string) error { return f(tc, s) }
	}

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^I add (\d+) of product (\d+) priced ([0-9.]+) with stock (\d+)$`, tc.iAddOfProductPricedWithStock)
	ctx.Step(`^I apply the coupon "([^"]*)"$`, tc.iApplyTheCoupon)
	ctx.Step(`^I remove the coupon$`, tc.iRemoveTheCoupon)
	ctx.Step(`^I set the quantity of product (\d+) to (-?\d+)$`, tc.iSetTheQuantityOfProductTo)
	ctx.Step(`^the coupon is accepted with (\d+) percent$`, tc.theCouponIsAcceptedWithPercent)
	ctx.Step(`^the coupon is rejected$`, tc.theCouponIsRejected)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^the subtotal is ([0-9.]+)$`, bind(amountIs("subtotal", func(s cart.Summary) decimal.Decimal { return s.Subtotal })))
	ctx.Step(`^the discount is ([0-9.]+)$`, bind(amountIs("discount", func(s cart.Summary) decimal.Decimal { return s.DiscountAmount })))
	ctx.Step(`^the shipping is ([0-9.]+)$`, bind(amountIs("shipping", func(s cart.Summary) decimal.Decimal { return s.Shipping })))
	ctx.Step(`^the total is ([0-9.]+)$`, bind(amountIs("total", func(s cart.Summary) decimal.Decimal { return s.Total })))
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/pricing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
