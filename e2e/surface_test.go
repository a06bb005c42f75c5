//go:build e2e

package e2e

import (
	"fmt"
	"regexp"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/pages"
)

var orderReceivedURL = regexp.MustCompile(`/checkout/order-received/(\d+)`)

// dummyStore is the platform surface of the dummy store.
type dummyStore struct {
	pages.UnimplementedCheckout
	f fixture.Fixture
}

func (s dummyStore) page() browser.Page { return s.f.Page }

func (s dummyStore) ProductURL(slug string) (string, error) {
	return s.f.URL("/product/" + slug), nil
}

func (s dummyStore) QuantityInput(string) browser.Locator {
	return s.page().Locator("form.cart input.qty")
}

func (s dummyStore) AddToCartButton(string) browser.Locator {
	return s.page().Locator("button.single_add_to_cart_button")
}

func (s dummyStore) ExpectProductIsInCart(string) error {
	return fixture.Assertf(s.page().Locator(".woocommerce-message").ExpectVisible(true, fixture.DefaultTimeout), "product should be added to the cart")
}

func (s dummyStore) CategoryURL(slug string) (string, error) {
	return s.f.URL("/product-category/" + slug), nil
}

func (s dummyStore) CartURL() (string, error) { return s.f.URL("/cart"), nil }

func (s dummyStore) CouponInput() browser.Locator { return s.page().Locator("#coupon_code") }

func (s dummyStore) ApplyCouponButton() browser.Locator {
	return s.page().Locator("button[name=apply_coupon]")
}

func (s dummyStore) RemoveCouponButton() browser.Locator { return s.page().Locator(".remove-coupon") }

func (s dummyStore) CartQuantityInput() browser.Locator {
	return s.page().Locator(".cart_item input.qty").First()
}

func (s dummyStore) UpdateCartButton() browser.Locator {
	return s.page().Locator("button[name=update_cart]")
}

func (s dummyStore) ExpandCouponFormButton() browser.Locator { return nil }

func (s dummyStore) CartIsEmptyText() browser.Locator { return s.page().Locator(".cart-empty") }

func (s dummyStore) RemoveCartItemButton() browser.Locator { return s.page().Locator(".remove-item") }

func (s dummyStore) CheckoutURL() (string, error) { return s.f.URL("/checkout"), nil }

func (s dummyStore) PaymentMethods() browser.Locator {
	return s.page().Locator(".payment_method_sequra")
}

func (s dummyStore) PaymentMethodTitle(title string) browser.Locator {
	return s.page().Locator(".payment_method_sequra label", browser.LocatorOptions{HasText: title})
}

func (s dummyStore) PaymentMethodInput(product string, checked bool) browser.Locator {
	sel := fmt.Sprintf(`.payment_method_sequra input[data-product="%s"]`, product)
	if checked {
		sel += ":checked"
	}
	return s.page().Locator(sel)
}

func (s dummyStore) MoreInfoLink(product, _ string) browser.Locator {
	return s.page().Locator(fmt.Sprintf(`.payment_methods .sequra-educational-popup[data-product="%s"]`, product))
}

func (s dummyStore) FillForm(shopper models.Shopper) error {
	fields := []struct{ sel, value string }{
		{"#billing_first_name", shopper.FirstName},
		{"#billing_last_name", shopper.LastName},
		{"#billing_email", shopper.Email},
	}
	for _, f := range fields {
		if err := s.page().Locator(f.sel).Fill(f.value); err != nil {
			return err
		}
	}
	return s.page().Locator("#billing_country").SelectOption(browser.SelectOptionValues{Value: shopper.Country})
}

func (s dummyStore) PlaceOrder(product string) error {
	input := s.page().Locator(fmt.Sprintf(`input[name="product"][value="%s"]`, product))
	if err := input.Click(); err != nil {
		return err
	}
	return s.page().Locator("#place_order").Click()
}

func (s dummyStore) WaitForOrderSuccess() error {
	return s.page().WaitForURL(orderReceivedURL, 10*time.Second)
}

func (s dummyStore) WaitForOrderOnHold() error {
	if err := s.WaitForOrderSuccess(); err != nil {
		return err
	}
	number, err := s.OrderNumber()
	if err != nil {
		return err
	}
	return s.ExpectOrderHasStatus(models.OrderStatusExpectation{OrderNumber: number, Status: models.OrderStatusOnHold})
}

func (s dummyStore) OrderNumber() (string, error) {
	m := orderReceivedURL.FindStringSubmatch(s.page().URL())
	if m == nil {
		return "", fmt.Errorf("not on the order received page: %s", s.page().URL())
	}
	return m[1], nil
}

func (s dummyStore) ExpectOrderHasStatus(exp models.OrderStatusExpectation) error {
	status := s.page().Locator("mark.order-status", browser.LocatorOptions{HasText: string(exp.Status)})
	return fixture.Assertf(status.ExpectVisible(true, time.Second), "order %s should be %s", exp.OrderNumber, exp.Status)
}

// cartSurface adapts the cart quantity input, named apart from the product
// one on dummyStore.
type cartSurface struct{ dummyStore }

func (c cartSurface) QuantityInput() browser.Locator { return c.CartQuantityInput() }
