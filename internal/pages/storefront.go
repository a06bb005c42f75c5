package pages

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
)

const (
	cartTimeout      = 10 * time.Second
	emptyCartTimeout = time.Second
)

// ProductPage is a product detail page.
type ProductPage struct {
	Page
	Widgets
	surface ProductSurface
}

func NewProductPage(f fixture.Fixture, surface ProductSurface) *ProductPage {
	return &ProductPage{Page: NewPage(f, "product"), Widgets: NewWidgets(f.Page), surface: surface}
}

// Goto opens the product page unless it is already open.
func (p *ProductPage) Goto(slug string) error {
	url, err := p.surface.ProductURL(slug)
	if err != nil {
		return err
	}
	return p.gotoURL(url, false)
}

// AddToCart sets the quantity, a zero quantity meaning one, and adds the
// product to the cart.
func (p *ProductPage) AddToCart(slug string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	qty, err := required(p.surface.QuantityInput(slug), "product quantity input")
	if err != nil {
		return err
	}
	add, err := required(p.surface.AddToCartButton(slug), "add to cart button")
	if err != nil {
		return err
	}
	if err := qty.Fill(strconv.Itoa(quantity)); err != nil {
		return err
	}
	if err := add.Click(); err != nil {
		return err
	}
	p.Log.WithField("slug", slug).WithField("quantity", quantity).Info("Added to cart")
	return p.surface.ExpectProductIsInCart(slug)
}

// CategoryPage is a product listing.
type CategoryPage struct {
	Page
	Widgets
	surface CategorySurface
}

func NewCategoryPage(f fixture.Fixture, surface CategorySurface) *CategoryPage {
	return &CategoryPage{Page: NewPage(f, "category"), Widgets: NewWidgets(f.Page), surface: surface}
}

// Goto opens the category unless it is already open.
func (p *CategoryPage) Goto(slug string) error {
	url, err := p.surface.CategoryURL(slug)
	if err != nil {
		return err
	}
	return p.gotoURL(url, false)
}

// CartPage is the shopping cart.
type CartPage struct {
	Page
	Widgets
	surface CartSurface
}

func NewCartPage(f fixture.Fixture, surface CartSurface) *CartPage {
	return &CartPage{Page: NewPage(f, "cart"), Widgets: NewWidgets(f.Page), surface: surface}
}

// Goto opens the cart unless it is already open.
func (p *CartPage) Goto() error {
	url, err := p.surface.CartURL()
	if err != nil {
		return err
	}
	return p.gotoURL(url, false)
}

// ApplyCoupon applies a coupon code and waits for its remove button.
func (p *CartPage) ApplyCoupon(coupon string) error {
	if expand := p.surface.ExpandCouponFormButton(); expand != nil {
		if err := expand.Click(); err != nil {
			return err
		}
	}
	input, err := required(p.surface.CouponInput(), "coupon input")
	if err != nil {
		return err
	}
	apply, err := required(p.surface.ApplyCouponButton(), "apply coupon button")
	if err != nil {
		return err
	}
	remove, err := required(p.surface.RemoveCouponButton(), "remove coupon button")
	if err != nil {
		return err
	}

	if err := input.Fill(coupon); err != nil {
		return err
	}
	if err := apply.Click(); err != nil {
		return err
	}
	if err := remove.First().WaitFor(browser.WaitForOptions{State: browser.StateVisible, Timeout: cartTimeout}); err != nil {
		return fmt.Errorf("coupon %q was not applied: %w", coupon, err)
	}
	return nil
}

// RemoveCoupon removes the applied coupon.
func (p *CartPage) RemoveCoupon() error {
	remove, err := required(p.surface.RemoveCouponButton(), "remove coupon button")
	if err != nil {
		return err
	}
	if err := remove.Click(); err != nil {
		return err
	}
	return fixture.Assertf(remove.ExpectCount(0, cartTimeout), "coupon should be removed")
}

// SetQuantity changes the quantity of the cart line, pressing the update
// button on platforms that have one.
func (p *CartPage) SetQuantity(quantity int) error {
	input, err := required(p.surface.QuantityInput(), "cart quantity input")
	if err != nil {
		return err
	}
	if err := input.Fill(strconv.Itoa(quantity)); err != nil {
		return err
	}
	if update := p.surface.UpdateCartButton(); update != nil {
		return update.Click()
	}
	return nil
}

// EmptyCart removes the cart lines one by one from the top, checking the
// count of lines after each removal.
func (p *CartPage) EmptyCart() error {
	if empty := p.surface.CartIsEmptyText(); empty != nil {
		ok, err := fixture.Visible(empty, emptyCartTimeout)
		if err != nil {
			return err
		}
		if ok {
			p.Log.Debug("Cart already empty")
			return nil
		}
	}

	remove, err := required(p.surface.RemoveCartItemButton(), "remove cart item button")
	if err != nil {
		return err
	}
	n, err := remove.Count()
	if err != nil {
		return err
	}
	for n > 0 {
		if err := remove.First().Click(); err != nil {
			return err
		}
		n--
		if err := remove.ExpectCount(n, cartTimeout); err != nil {
			return fixture.Assertf(err, "cart should have %d lines left", n)
		}
	}
	return nil
}

// IsNotImplemented reports whether err comes from a missing platform part.
func IsNotImplemented(err error) bool {
	return errors.Is(err, fixture.ErrNotImplemented)
}
