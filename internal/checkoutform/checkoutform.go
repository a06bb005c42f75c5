// Package checkoutform fills the seQura checkout form rendered in an iframe
// once a seQura payment method is chosen and the order placed.
package checkoutform

import (
	"fmt"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

const (
	iframeTimeout  = 10 * time.Second
	newCardTimeout = 3 * time.Second
	keyDelay       = 100 * time.Millisecond
)

// Form is the seQura checkout form.
type Form struct {
	fixture.Fixture
}

// New creates the form fixture.
func New(f fixture.Fixture) *Form {
	return &Form{Fixture: f.Named("checkout-form")}
}

// Locators

func (f *Form) Iframe(product string) browser.FrameLocator {
	return f.Page.FrameLocator("#sq-identification-" + product)
}

func (f *Form) IframeElement(product string) browser.Locator {
	return f.Page.Locator("#sq-identification-" + product)
}

func (f *Form) DateOfBirth(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator(`[name="date_of_birth"]`)
}

func (f *Form) NIN(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator(`[name="nin"]`)
}

func (f *Form) AcceptPrivacyPolicy(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator("#sequra_privacy_policy_accepted")
}

func (f *Form) AcceptServiceDuration(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator("#sequra_service_duration_accepted")
}

func (f *Form) ContinueButton(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator(".actions-section button:not([disabled])")
}

// OTP locates the input of the OTP digit at position, starting at 1.
func (f *Form) OTP(iframe browser.FrameLocator, position int) browser.Locator {
	return iframe.Locator(fmt.Sprintf(`[aria-label="Please enter OTP character %d"]`, position))
}

func (f *Form) NewCreditCardButton(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator(".reuse-card-component .PaymentMethodsSelectionSection__actionsSection > .tlr-Button___tertiary_j9CJ-")
}

func (f *Form) CreditCardIframe(iframe browser.FrameLocator) browser.FrameLocator {
	return iframe.FrameLocator("#mufasa-iframe")
}

func (f *Form) CreditCardName(iframe browser.FrameLocator) browser.Locator {
	return f.CreditCardIframe(iframe).Locator("#cardholder_name")
}

func (f *Form) CreditCardNumber(iframe browser.FrameLocator) browser.Locator {
	return f.CreditCardIframe(iframe).Locator("#cc-number")
}

func (f *Form) CreditCardExp(iframe browser.FrameLocator) browser.Locator {
	return f.CreditCardIframe(iframe).Locator("#cc-exp")
}

func (f *Form) CreditCardCSC(iframe browser.FrameLocator) browser.Locator {
	return f.CreditCardIframe(iframe).Locator("#cc-csc")
}

func (f *Form) PaymentButton(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator(".payment-btn-container button:not([disabled])")
}

func (f *Form) MonthlyIncomeSelect(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator("#monthly_income")
}

func (f *Form) MonthlyFixedExpensesSelect(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator("#monthly_fixed_expenses")
}

func (f *Form) OccupationSelect(iframe browser.FrameLocator) browser.Locator {
	return iframe.Locator("#occupation")
}

// Actions

// Open waits for the product iframe to be attached and returns it.
func (f *Form) Open(product string) (browser.FrameLocator, error) {
	err := f.IframeElement(product).WaitFor(browser.WaitForOptions{State: browser.StateAttached, Timeout: iframeTimeout})
	if err != nil {
		return nil, fmt.Errorf("checkout form for %s did not load: %w", product, err)
	}
	return f.Iframe(product), nil
}

// FillOtp types the OTP digits, one per input, and continues.
func (f *Form) FillOtp(iframe browser.FrameLocator, otp []string) error {
	if len(otp) == 0 {
		return fmt.Errorf("empty OTP")
	}
	first := f.OTP(iframe, 1)
	if err := first.WaitFor(browser.WaitForOptions{State: browser.StateAttached, Timeout: iframeTimeout}); err != nil {
		return fmt.Errorf("OTP inputs did not load: %w", err)
	}
	for i, digit := range otp {
		if err := f.OTP(iframe, i+1).PressSequentially(digit, 0); err != nil {
			return fmt.Errorf("failed to type OTP digit %d: %w", i+1, err)
		}
	}
	return f.ContinueButton(iframe).Click()
}

// FillCreditCard fills the card iframe and pays. The "new card" button of
// returning shoppers and the cardholder input are used only when shown.
func (f *Form) FillCreditCard(iframe browser.FrameLocator, card models.CreditCard) error {
	newCard := f.NewCreditCardButton(iframe)
	shown, err := fixture.Visible(newCard, newCardTimeout)
	if err != nil {
		return err
	}
	if shown {
		if err := newCard.Click(browser.ClickOptions{Timeout: newCardTimeout}); err != nil {
			return err
		}
	}

	number := f.CreditCardNumber(iframe)
	if err := number.WaitFor(browser.WaitForOptions{State: browser.StateAttached, Timeout: iframeTimeout}); err != nil {
		return fmt.Errorf("credit card form did not load: %w", err)
	}
	fields := []struct {
		loc   browser.Locator
		value string
	}{
		{number, card.Number},
		{f.CreditCardExp(iframe), card.Exp},
		{f.CreditCardCSC(iframe), card.CVC},
	}
	for _, field := range fields {
		if err := field.loc.PressSequentially(field.value, keyDelay); err != nil {
			return err
		}
	}

	name := f.CreditCardName(iframe)
	hasName, err := fixture.Present(name)
	if err != nil {
		return err
	}
	if hasName {
		if err := name.PressSequentially(card.Name, keyDelay); err != nil {
			return err
		}
	}
	return f.PaymentButton(iframe).Click()
}

// FillI1 completes the "pay later" form.
func (f *Form) FillI1(s models.Shopper) error {
	iframe, err := f.Open("i1")
	if err != nil {
		return err
	}
	if err := f.fillIdentification(iframe, s); err != nil {
		return err
	}
	if err := f.acceptConditions(iframe); err != nil {
		return err
	}
	if err := f.ContinueButton(iframe).Click(); err != nil {
		return err
	}
	return f.FillOtp(iframe, s.OTP)
}

// FillPp3 completes the instalments form, including the optional income,
// expenses and occupation selects some countries ask for.
func (f *Form) FillPp3(s models.Shopper) error {
	iframe, err := f.Open("pp3")
	if err != nil {
		return err
	}
	// Confirms the pre-selected instalment plan.
	if err := f.ContinueButton(iframe).Click(); err != nil {
		return err
	}
	if err := f.fillIdentification(iframe, s); err != nil {
		return err
	}

	selects := []struct {
		loc    browser.Locator
		option browser.SelectOptionValues
	}{
		{f.MonthlyIncomeSelect(iframe), browser.SelectOptionValues{Index: browser.Index(1)}},
		{f.MonthlyFixedExpensesSelect(iframe), browser.SelectOptionValues{Index: browser.Index(1)}},
		{f.OccupationSelect(iframe), browser.SelectOptionValues{Value: "unemployed"}},
	}
	for _, sel := range selects {
		ok, err := fixture.Present(sel.loc)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := sel.loc.SelectOption(sel.option); err != nil {
			return err
		}
	}

	if err := f.acceptConditions(iframe); err != nil {
		return err
	}
	if err := f.ContinueButton(iframe).Click(); err != nil {
		return err
	}
	if err := f.FillOtp(iframe, s.OTP); err != nil {
		return err
	}
	return f.FillCreditCard(iframe, s.CreditCard)
}

// FillSp1 completes the "pay in 3" form, which ends with the card payment of
// the first instalment.
func (f *Form) FillSp1(s models.Shopper) error {
	iframe, err := f.Open("sp1")
	if err != nil {
		return err
	}
	if err := f.fillIdentification(iframe, s); err != nil {
		return err
	}
	if err := f.acceptConditions(iframe); err != nil {
		return err
	}
	if err := f.ContinueButton(iframe).Click(); err != nil {
		return err
	}
	if err := f.FillOtp(iframe, s.OTP); err != nil {
		return err
	}
	return f.FillCreditCard(iframe, s.CreditCard)
}

// fillIdentification types date of birth and national id, skipping empty ones.
func (f *Form) fillIdentification(iframe browser.FrameLocator, s models.Shopper) error {
	fields := []struct {
		loc   browser.Locator
		value string
	}{
		{f.DateOfBirth(iframe), s.DateOfBirth},
		{f.NIN(iframe), s.NIN},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := field.loc.Click(); err != nil {
			return err
		}
		if err := field.loc.PressSequentially(field.value, 0); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) acceptConditions(iframe browser.FrameLocator) error {
	if err := f.AcceptPrivacyPolicy(iframe).Click(); err != nil {
		return err
	}
	duration := f.AcceptServiceDuration(iframe)
	ok, err := fixture.Present(duration)
	if err != nil || !ok {
		return err
	}
	return duration.Click()
}
