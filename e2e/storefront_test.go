//go:build e2e

package e2e

import (
	"testing"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/pages"
)

// TestProductWidget
// Feature: Product page widget
//
//	Scenario: Widget shows when enabled
//	  Given the plugin is configured with widgets
//	  When I open the sunglasses page
//	  Then I should see the pp3 widget for 90,00 €
func TestProductWidget(t *testing.T) {
	f := newFixture(t, "dummy_widgets")
	product := pages.NewProductPage(f, dummyStore{f: f})

	if err := product.Goto("sunglasses"); err != nil {
		t.Fatal(err)
	}
	if err := product.ExpectWidgetToBeVisible(data.ProductWidget("pp3", 9000, nil), 0); err != nil {
		t.Error(err)
	}
}

// TestProductWidget_Disabled
//
//	Scenario: No widget without the widget setting
//	  Given the plugin is configured without widgets
//	  When I open the sunglasses page
//	  Then no widget is shown
func TestProductWidget_Disabled(t *testing.T) {
	f := newFixture(t, "dummy")
	product := pages.NewProductPage(f, dummyStore{f: f})

	if err := product.Goto("sunglasses"); err != nil {
		t.Fatal(err)
	}
	if err := product.ExpectWidgetsNotToBeVisible(); err != nil {
		t.Error(err)
	}
}

// TestCategoryMiniWidget
//
//	Scenario: Mini widgets on the product listing
//	  Given the plugin is configured with widgets
//	  When I open the accessories category
//	  Then I should see a pp3 mini widget "Desde 30,00 €/mes"
func TestCategoryMiniWidget(t *testing.T) {
	f := newFixture(t, "dummy_widgets")
	category := pages.NewCategoryPage(f, dummyStore{f: f})

	if err := category.Goto("accessories"); err != nil {
		t.Fatal(err)
	}
	if err := category.ExpectAnyVisibleMiniWidget("pp3", "Desde 30,00 €/mes", 3); err != nil {
		t.Error(err)
	}
	if err := category.ExpectMiniWidgetsNotToBeVisible("sp1", "", 1); err != nil {
		t.Error(err)
	}
}

// TestCart
// Feature: Cart
//
//	Scenario: Fill and empty the cart
//	  Given I added two products to the cart
//	  When I apply and remove a coupon
//	  And I empty the cart
//	  Then the cart is empty
func TestCart(t *testing.T) {
	f := newFixture(t, "dummy")
	surface := dummyStore{f: f}
	product := pages.NewProductPage(f, surface)
	cart := pages.NewCartPage(f, cartSurface{surface})

	for _, slug := range []string{"sunglasses", "hoodie"} {
		if err := product.Goto(slug); err != nil {
			t.Fatal(err)
		}
		if err := product.AddToCart(slug, 2); err != nil {
			t.Fatal(err)
		}
	}

	if err := cart.Goto(); err != nil {
		t.Fatal(err)
	}
	if err := cart.ApplyCoupon("fixed_10"); err != nil {
		t.Fatal(err)
	}
	if err := cart.RemoveCoupon(); err != nil {
		t.Fatal(err)
	}
	if err := cart.SetQuantity(1); err != nil {
		t.Fatal(err)
	}
	total := f.Page.Locator(".order-total .amount", browser.LocatorOptions{HasText: "180,00 €"})
	if err := total.ExpectVisible(true, 0); err != nil {
		t.Fatal(err)
	}
	if err := cart.EmptyCart(); err != nil {
		t.Fatal(err)
	}
	if err := surface.CartIsEmptyText().ExpectVisible(true, 0); err != nil {
		t.Error(err)
	}
}
