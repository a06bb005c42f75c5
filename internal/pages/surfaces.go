package pages

import (
	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// The surfaces below are what a storefront integration implements for its
// platform. Locator methods return nil when the platform has no such
// element: for required locators the page object then fails with
// fixture.ErrNotImplemented, optional ones are skipped. Embed the matching
// Unimplemented type to provide only part of a surface.

// ProductSurface is the platform part of the product page.
type ProductSurface interface {
	ProductURL(slug string) (string, error)
	QuantityInput(slug string) browser.Locator
	AddToCartButton(slug string) browser.Locator
	ExpectProductIsInCart(slug string) error
}

// CategorySurface is the platform part of the category page.
type CategorySurface interface {
	CategoryURL(slug string) (string, error)
}

// CartSurface is the platform part of the cart page.
type CartSurface interface {
	CartURL() (string, error)
	CouponInput() browser.Locator
	ApplyCouponButton() browser.Locator
	RemoveCouponButton() browser.Locator
	QuantityInput() browser.Locator
	// UpdateCartButton is optional.
	UpdateCartButton() browser.Locator
	// ExpandCouponFormButton is optional.
	ExpandCouponFormButton() browser.Locator
	// CartIsEmptyText is optional.
	CartIsEmptyText() browser.Locator
	RemoveCartItemButton() browser.Locator
}

// CheckoutSurface is the platform part of the checkout page.
type CheckoutSurface interface {
	CheckoutURL() (string, error)
	PaymentMethods() browser.Locator
	PaymentMethodTitle(title string) browser.Locator
	PaymentMethodInput(product string, checked bool) browser.Locator
	MoreInfoLink(product, campaign string) browser.Locator

	FillForm(s models.Shopper) error
	PlaceOrder(product string) error
	WaitForOrderSuccess() error
	WaitForOrderOnHold() error
	OrderNumber() (string, error)
	// ExpectOrderHasStatus checks the status once.
	ExpectOrderHasStatus(exp models.OrderStatusExpectation) error
	ExpectOrderChangeTo(bo backoffice.BackOffice, exp models.OrderStatusExpectation) error
}

// UnimplementedProduct implements ProductSurface with nothing.
type UnimplementedProduct struct{}

var _ ProductSurface = UnimplementedProduct{}

func (UnimplementedProduct) ProductURL(string) (string, error) {
	return "", fixture.NotImplemented("product url")
}

func (UnimplementedProduct) QuantityInput(string) browser.Locator { return nil }

func (UnimplementedProduct) AddToCartButton(string) browser.Locator { return nil }

func (UnimplementedProduct) ExpectProductIsInCart(string) error {
	return fixture.NotImplemented("product in cart check")
}

// UnimplementedCategory implements CategorySurface with nothing.
type UnimplementedCategory struct{}

var _ CategorySurface = UnimplementedCategory{}

func (UnimplementedCategory) CategoryURL(string) (string, error) {
	return "", fixture.NotImplemented("category url")
}

// UnimplementedCart implements CartSurface with nothing.
type UnimplementedCart struct{}

var _ CartSurface = UnimplementedCart{}

func (UnimplementedCart) CartURL() (string, error) {
	return "", fixture.NotImplemented("cart url")
}

func (UnimplementedCart) CouponInput() browser.Locator { return nil }

func (UnimplementedCart) ApplyCouponButton() browser.Locator { return nil }

func (UnimplementedCart) RemoveCouponButton() browser.Locator { return nil }

func (UnimplementedCart) QuantityInput() browser.Locator { return nil }

func (UnimplementedCart) UpdateCartButton() browser.Locator { return nil }

func (UnimplementedCart) ExpandCouponFormButton() browser.Locator { return nil }

func (UnimplementedCart) CartIsEmptyText() browser.Locator { return nil }

func (UnimplementedCart) RemoveCartItemButton() browser.Locator { return nil }

// UnimplementedCheckout implements CheckoutSurface with nothing.
type UnimplementedCheckout struct{}

var _ CheckoutSurface = UnimplementedCheckout{}

func (UnimplementedCheckout) CheckoutURL() (string, error) {
	return "", fixture.NotImplemented("checkout url")
}

func (UnimplementedCheckout) PaymentMethods() browser.Locator { return nil }

func (UnimplementedCheckout) PaymentMethodTitle(string) browser.Locator { return nil }

func (UnimplementedCheckout) PaymentMethodInput(string, bool) browser.Locator { return nil }

func (UnimplementedCheckout) MoreInfoLink(string, string) browser.Locator { return nil }

func (UnimplementedCheckout) FillForm(models.Shopper) error {
	return fixture.NotImplemented("checkout form")
}

func (UnimplementedCheckout) PlaceOrder(string) error {
	return fixture.NotImplemented("place order")
}

func (UnimplementedCheckout) WaitForOrderSuccess() error {
	return fixture.NotImplemented("order success wait")
}

func (UnimplementedCheckout) WaitForOrderOnHold() error {
	return fixture.NotImplemented("order on hold wait")
}

func (UnimplementedCheckout) OrderNumber() (string, error) {
	return "", fixture.NotImplemented("order number")
}

func (UnimplementedCheckout) ExpectOrderHasStatus(models.OrderStatusExpectation) error {
	return fixture.NotImplemented("order status check")
}

func (UnimplementedCheckout) ExpectOrderChangeTo(backoffice.BackOffice, models.OrderStatusExpectation) error {
	return fixture.NotImplemented("order status change check")
}
