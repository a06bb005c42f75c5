//go:build e2e

package e2e

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/pages"
)

var orderFailedURL = regexp.MustCompile(`/checkout/order-failed/\d+$`)

func addToCart(t *testing.T, product *pages.ProductPage, slug string) {
	t.Helper()
	if err := product.Goto(slug); err != nil {
		t.Fatal(err)
	}
	if err := product.AddToCart(slug, 1); err != nil {
		t.Fatal(err)
	}
}

// TestCheckoutPaymentMethods
// Feature: seQura payment methods at checkout
//
//	Scenario: Payment methods of the default merchant
//	  Given the plugin is configured
//	  And my cart has a product
//	  When I open the checkout
//	  Then I should see "Paga Después", "Divide tu pago en 3" and sp1
//	  And the "+ info" popup opens and closes
func TestCheckoutPaymentMethods(t *testing.T) {
	f := newFixture(t, "dummy")
	surface := dummyStore{f: f}
	addToCart(t, pages.NewProductPage(f, surface), "sunglasses")
	checkout := pages.NewCheckoutPage(f, surface)

	if err := checkout.Goto(false); err != nil {
		t.Fatal(err)
	}
	for _, m := range []pages.PaymentMethodOptions{
		{Product: "i1", Title: "Paga Después"},
		{Product: "pp3", Title: "Divide tu pago en 3"},
		{Product: "sp1", Title: "Divide en 3 partes de 30 días"},
	} {
		if err := checkout.ExpectPaymentMethodToBeVisible(m); err != nil {
			t.Error(err)
		}
	}
	if err := checkout.OpenAndCloseEducationalPopup("pp3", ""); err != nil {
		t.Error(err)
	}
}

// TestCheckoutPaymentMethods_NotConfigured
//
//	Scenario: No payment methods without configuration
//	  Given the plugin is not configured
//	  When I open the checkout
//	  Then no seQura payment method is offered
func TestCheckoutPaymentMethods_NotConfigured(t *testing.T) {
	f := newFixture(t, "reset")
	checkout := pages.NewCheckoutPage(f, dummyStore{f: f})

	if err := checkout.Goto(false); err != nil {
		t.Fatal(err)
	}
	if err := checkout.ExpectAnyPaymentMethod(false, 0); err != nil {
		t.Error(err)
	}
}

// TestPlaceOrder
// Feature: Order placement
//
//	Scenario: Order moves from on hold to processing
//	  Given the plugin is configured
//	  And my cart has a product
//	  When I place the order with pp3 as a Spanish shopper
//	  Then the order is on hold
//	  And it moves to processing after a few reloads
//	  And it was sent with the Spanish merchant reference
func TestPlaceOrder(t *testing.T) {
	f := newFixture(t, "dummy")
	surface := dummyStore{f: f}
	addToCart(t, pages.NewProductPage(f, surface), "hoodie")
	checkout := pages.NewCheckoutPage(f, surface)
	checkout.PollInterval = 200 * time.Millisecond

	shopper, err := data.Shopper("spain")
	if err != nil {
		t.Fatal(err)
	}
	if err := checkout.Goto(false); err != nil {
		t.Fatal(err)
	}
	if err := checkout.FillForm(shopper); err != nil {
		t.Fatal(err)
	}
	if err := checkout.PlaceOrder("pp3"); err != nil {
		t.Fatal(err)
	}
	if err := checkout.WaitForOrderOnHold(); err != nil {
		t.Fatal(err)
	}
	number, err := checkout.OrderNumber()
	if err != nil {
		t.Fatal(err)
	}

	err = checkout.WaitForOrderStatus(models.OrderStatusExpectation{
		OrderNumber: number,
		Status:      models.OrderStatusProcessing,
		WaitFor:     5,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := checkout.ExpectOrderHasTheCorrectMerchantID(ctx, "ES", helper, data, false); err != nil {
		t.Error(err)
	}
	if err := checkout.ExpectOrderHasTheCorrectMerchantID(ctx, "FR", helper, data, false); err == nil {
		t.Error("Expected merchant id check to fail for France")
	}
}

// TestPlaceOrder_ForcedFailure
//
//	Scenario: Forced order failure
//	  Given the next order is forced to fail
//	  When I place an order
//	  Then I land on the order failed page
func TestPlaceOrder_ForcedFailure(t *testing.T) {
	f := newFixture(t, "dummy")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := helper.Execute(ctx, models.WebhookCall{Webhook: "force_order_failure"}); err != nil {
		t.Fatal(err)
	}
	surface := dummyStore{f: f}
	addToCart(t, pages.NewProductPage(f, surface), "beanie")
	checkout := pages.NewCheckoutPage(f, surface)

	if err := checkout.Goto(false); err != nil {
		t.Fatal(err)
	}
	if err := checkout.PlaceOrder("i1"); err != nil {
		t.Fatal(err)
	}
	if err := f.Page.WaitForURL(orderFailedURL, 10*time.Second); err != nil {
		t.Fatal(err)
	}
	heading := f.Page.Locator("h1.entry-title", browser.LocatorOptions{HasText: "Pedido fallido"})
	if err := heading.ExpectVisible(true, 0); err != nil {
		t.Error(err)
	}
}
