package pages

import (
	"fmt"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// PaymentMethodsSettingsPage lists the payment methods available per country.
type PaymentMethodsSettingsPage struct {
	SettingsPage
}

func NewPaymentMethodsSettingsPage(f fixture.Fixture, bo backoffice.BackOffice) *PaymentMethodsSettingsPage {
	return &PaymentMethodsSettingsPage{SettingsPage: NewSettingsPage(f, bo, backoffice.PagePaymentMethods)}
}

func (p *PaymentMethodsSettingsPage) PaymentMethodTitle(text string) browser.Locator {
	return p.Fixture.Page.Locator(".sqp-payment-method-title", browser.LocatorOptions{HasText: text})
}

// ExpectAvailablePaymentMethodsAreVisible checks the payment methods of each
// country. The first country must be the one selected on load; the others
// are picked from the country dropdown.
func (p *PaymentMethodsSettingsPage) ExpectAvailablePaymentMethodsAreVisible(countries []models.CountryPaymentMethods) error {
	if len(countries) == 0 {
		return nil
	}
	def := countries[0]
	if err := p.ExpectToBeVisible(p.SelectedOption(def.Name), fmt.Sprintf("Default country %q", def.Name), true); err != nil {
		return err
	}
	if err := p.expectMethods(def); err != nil {
		return err
	}

	for _, c := range countries[1:] {
		if err := p.DropdownButton(p.Fixture.Page).Click(); err != nil {
			return err
		}
		if err := p.DropdownListItem(p.Fixture.Page, c.Name).Click(); err != nil {
			return err
		}
		if err := p.ExpectToBeVisible(p.DropdownSelectedListItem(p.Fixture.Page, c.Name), fmt.Sprintf("Country %q", c.Name), true); err != nil {
			return err
		}
		if err := p.ExpectLoadingShowAndHide(); err != nil {
			return err
		}
		if err := p.expectMethods(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *PaymentMethodsSettingsPage) expectMethods(c models.CountryPaymentMethods) error {
	for _, m := range c.PaymentMethods {
		if err := p.ExpectToBeVisible(p.PaymentMethodTitle(m), fmt.Sprintf("Payment method %q for %s", m, c.Name), true); err != nil {
			return err
		}
	}
	return nil
}
