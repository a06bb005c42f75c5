package pages

import (
	"fmt"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// Toggle headings of the widget settings
const (
	productWidgetHeading = "Display widget on product page"
	cartWidgetHeading    = "Show installment amount in cart page"
	listingWidgetHeading = "Show installment amount in product listing"
)

// WidgetSettingsPage is the "Widget" settings tab.
type WidgetSettingsPage struct {
	SettingsPage
}

func NewWidgetSettingsPage(f fixture.Fixture, bo backoffice.BackOffice) *WidgetSettingsPage {
	return &WidgetSettingsPage{SettingsPage: NewSettingsPage(f, bo, backoffice.PageWidget)}
}

func (p *WidgetSettingsPage) byName(name string) browser.Locator {
	return p.Fixture.Page.Locator(fmt.Sprintf(`[name="%s"]`, name))
}

func (p *WidgetSettingsPage) WidgetConfiguratorTextarea() browser.Locator {
	return p.byName("widget-configurator-input")
}

func (p *WidgetSettingsPage) PriceSelectorInput() browser.Locator {
	return p.byName("productPriceSelector")
}

func (p *WidgetSettingsPage) AltPriceSelectorInput() browser.Locator {
	return p.byName("altProductPriceSelector")
}

func (p *WidgetSettingsPage) AltPriceTriggerSelectorInput() browser.Locator {
	return p.byName("altProductPriceTriggerSelector")
}

func (p *WidgetSettingsPage) DefaultLocationSelectorInput() browser.Locator {
	return p.byName("defaultProductLocationSelector")
}

func (p *WidgetSettingsPage) CustomLocationsDetails() browser.Locator {
	return p.Fixture.Page.Locator(".sq-locations-container details")
}

func (p *WidgetSettingsPage) CustomLocationsAddButton() browser.Locator {
	return p.Fixture.Page.Locator(".sq-locations-container .sq-add")
}

func (p *WidgetSettingsPage) CustomLocationPaymentMethodSelect(details browser.Locator) browser.Locator {
	return details.Locator("select")
}

func (p *WidgetSettingsPage) CustomLocationDisplayToggle(details browser.Locator) ToggleFunc {
	return p.ToggleIn(details)
}

func (p *WidgetSettingsPage) CustomLocationLocationInput(details browser.Locator) browser.Locator {
	return details.Locator(`input[type="text"]`)
}

func (p *WidgetSettingsPage) CustomLocationWidgetConfigTextarea(details browser.Locator) browser.Locator {
	return details.Locator("textarea")
}

func (p *WidgetSettingsPage) CartPriceSelectorInput() browser.Locator {
	return p.byName("cartPriceSelector")
}

func (p *WidgetSettingsPage) CartLocationSelectorInput() browser.Locator {
	return p.byName("cartLocationSelector")
}

func (p *WidgetSettingsPage) CartPaymentMethodSelect() browser.Locator {
	return p.Fixture.Page.Locator(".sqm--table-dropdown.sq-cart-related-field")
}

func (p *WidgetSettingsPage) ListingPriceSelectorInput() browser.Locator {
	return p.byName("listingPriceSelector")
}

func (p *WidgetSettingsPage) ListingLocationSelectorInput() browser.Locator {
	return p.byName("listingLocationSelector")
}

func (p *WidgetSettingsPage) ListingPaymentMethodSelect() browser.Locator {
	return p.Fixture.Page.Locator(".sqm--table-dropdown.sq-listing-related-field")
}

func (p *WidgetSettingsPage) DisplayWidgetOnProductToggle() ToggleFunc {
	return p.ToggleNextTo(productWidgetHeading)
}

func (p *WidgetSettingsPage) DisplayWidgetOnCartToggle() ToggleFunc {
	return p.ToggleNextTo(cartWidgetHeading)
}

func (p *WidgetSettingsPage) DisplayWidgetOnListingToggle() ToggleFunc {
	return p.ToggleNextTo(listingWidgetHeading)
}

// ensureDisplay switches a section toggle when display is set and reports
// whether the section fields are to be filled.
func (p *WidgetSettingsPage) ensureDisplay(toggle ToggleFunc, display *bool, what string) (bool, error) {
	if display == nil {
		return true, nil
	}
	if err := p.EnsureToggle(toggle, *display, what); err != nil {
		return false, err
	}
	return *display, nil
}

func (p *WidgetSettingsPage) expectDisplay(toggle ToggleFunc, display *bool, what string) (bool, error) {
	if display == nil {
		return true, nil
	}
	if err := p.ExpectToBeChecked(toggle(ToggleInput), what, *display); err != nil {
		return false, err
	}
	return *display, nil
}

// FillForm fills the widget settings. Empty values and nil flags in opts are
// left untouched, and sections switched off get no other change.
func (p *WidgetSettingsPage) FillForm(opts models.WidgetOptions) error {
	if err := fillAll(fill{p.WidgetConfiguratorTextarea(), opts.WidgetConfig}); err != nil {
		return err
	}

	on, err := p.ensureDisplay(p.DisplayWidgetOnProductToggle(), opts.Product.Display, productWidgetHeading)
	if err != nil {
		return err
	}
	if on {
		if err := p.fillProduct(opts.Product); err != nil {
			return err
		}
	}

	on, err = p.ensureDisplay(p.DisplayWidgetOnCartToggle(), opts.Cart.Display, cartWidgetHeading)
	if err != nil {
		return err
	}
	if on {
		err := fillAll(
			fill{p.CartPriceSelectorInput(), opts.Cart.PriceSel},
			fill{p.CartLocationSelectorInput(), opts.Cart.LocationSel},
		)
		if err != nil {
			return err
		}
		if err := p.selectPaymentMethod(p.CartPaymentMethodSelect(), opts.Cart.PaymentMethod); err != nil {
			return err
		}
	}

	on, err = p.ensureDisplay(p.DisplayWidgetOnListingToggle(), opts.ProductListing.Display, listingWidgetHeading)
	if err != nil {
		return err
	}
	if on {
		if opts.ProductListing.UseSelectors {
			err := fillAll(
				fill{p.ListingPriceSelectorInput(), opts.ProductListing.PriceSel},
				fill{p.ListingLocationSelectorInput(), opts.ProductListing.LocationSel},
			)
			if err != nil {
				return err
			}
		}
		if err := p.selectPaymentMethod(p.ListingPaymentMethodSelect(), opts.ProductListing.PaymentMethod); err != nil {
			return err
		}
	}
	return nil
}

// fillProduct fills the product section. Custom locations are replaced as a
// whole when product.CustomLocations is not nil; an empty list removes them.
func (p *WidgetSettingsPage) fillProduct(product models.WidgetOptionsProduct) error {
	err := fillAll(
		fill{p.PriceSelectorInput(), product.PriceSel},
		fill{p.AltPriceSelectorInput(), product.AltPriceSel},
		fill{p.AltPriceTriggerSelectorInput(), product.AltPriceTriggerSel},
		fill{p.DefaultLocationSelectorInput(), product.LocationSel},
	)
	if err != nil {
		return err
	}
	if product.CustomLocations == nil {
		return nil
	}

	if err := p.RemoveAllDetails(p.CustomLocationsDetails); err != nil {
		return err
	}
	for _, loc := range product.CustomLocations {
		if err := p.CustomLocationsAddButton().Click(); err != nil {
			return err
		}
		details := p.CustomLocationsDetails().Last()
		if loc.PaymentMethod != "" {
			if err := p.CustomLocationPaymentMethodSelect(details).SelectOption(browser.SelectOptionValues{Label: loc.PaymentMethod}); err != nil {
				return err
			}
		}
		if err := p.OpenDetails(details); err != nil {
			return err
		}
		// New locations are displayed by default.
		if !loc.Display {
			if err := p.CustomLocationDisplayToggle(details)(ToggleLabel).Click(); err != nil {
				return err
			}
		}
		err := fillAll(
			fill{p.CustomLocationLocationInput(details), loc.LocationSel},
			fill{p.CustomLocationWidgetConfigTextarea(details), loc.WidgetConfig},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *WidgetSettingsPage) selectPaymentMethod(container browser.Locator, method string) error {
	if method == "" {
		return nil
	}
	if err := p.DropdownButton(container).Click(); err != nil {
		return err
	}
	if err := p.DropdownListItem(container, method).Click(); err != nil {
		return err
	}
	return p.expectPaymentMethod(container, method, "Payment method")
}

func (p *WidgetSettingsPage) expectPaymentMethod(container browser.Locator, method, what string) error {
	if method == "" {
		return nil
	}
	return p.ExpectToBeVisible(p.DropdownSelectedListItem(container, method), fmt.Sprintf("%s %q", what, method), true)
}

// ExpectConfigurationMatches asserts the form shows opts. Fields left empty
// in opts are not checked.
func (p *WidgetSettingsPage) ExpectConfigurationMatches(opts models.WidgetOptions) error {
	if err := expectValues(fill{p.WidgetConfiguratorTextarea(), opts.WidgetConfig}); err != nil {
		return err
	}

	on, err := p.expectDisplay(p.DisplayWidgetOnProductToggle(), opts.Product.Display, productWidgetHeading)
	if err != nil {
		return err
	}
	if on {
		if err := p.expectProduct(opts.Product); err != nil {
			return err
		}
	}

	on, err = p.expectDisplay(p.DisplayWidgetOnCartToggle(), opts.Cart.Display, cartWidgetHeading)
	if err != nil {
		return err
	}
	if on {
		err := expectValues(
			fill{p.CartPriceSelectorInput(), opts.Cart.PriceSel},
			fill{p.CartLocationSelectorInput(), opts.Cart.LocationSel},
		)
		if err != nil {
			return err
		}
		if err := p.expectPaymentMethod(p.CartPaymentMethodSelect(), opts.Cart.PaymentMethod, "Cart payment method"); err != nil {
			return err
		}
	}

	on, err = p.expectDisplay(p.DisplayWidgetOnListingToggle(), opts.ProductListing.Display, listingWidgetHeading)
	if err != nil {
		return err
	}
	if on {
		if opts.ProductListing.UseSelectors {
			err := expectValues(
				fill{p.ListingPriceSelectorInput(), opts.ProductListing.PriceSel},
				fill{p.ListingLocationSelectorInput(), opts.ProductListing.LocationSel},
			)
			if err != nil {
				return err
			}
		}
		if err := p.expectPaymentMethod(p.ListingPaymentMethodSelect(), opts.ProductListing.PaymentMethod, "Listing payment method"); err != nil {
			return err
		}
	}
	return nil
}

func (p *WidgetSettingsPage) expectProduct(product models.WidgetOptionsProduct) error {
	err := expectValues(
		fill{p.PriceSelectorInput(), product.PriceSel},
		fill{p.AltPriceSelectorInput(), product.AltPriceSel},
		fill{p.AltPriceTriggerSelectorInput(), product.AltPriceTriggerSel},
		fill{p.DefaultLocationSelectorInput(), product.LocationSel},
	)
	if err != nil || product.CustomLocations == nil {
		return err
	}

	details := p.CustomLocationsDetails()
	if err := details.ExpectCount(len(product.CustomLocations), fixture.DefaultTimeout); err != nil {
		return fixture.Assertf(err, "there should be %d custom locations", len(product.CustomLocations))
	}
	for i, loc := range product.CustomLocations {
		d := details.Nth(i)
		if err := expectValues(fill{p.CustomLocationPaymentMethodSelect(d), loc.PaymentMethod}); err != nil {
			return err
		}
		if err := p.OpenDetails(d); err != nil {
			return err
		}
		if err := p.ExpectToBeChecked(p.CustomLocationDisplayToggle(d)(ToggleInput), fmt.Sprintf("custom location %d display", i+1), loc.Display); err != nil {
			return err
		}
		err := expectValues(
			fill{p.CustomLocationLocationInput(d), loc.LocationSel},
			fill{p.CustomLocationWidgetConfigTextarea(d), loc.WidgetConfig},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
