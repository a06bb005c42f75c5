package pages

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// DefaultServicesEndDate is the ISO 8601 duration preset for services.
const DefaultServicesEndDate = "P1Y"

// GeneralSettingsPage is the "General" settings tab.
type GeneralSettingsPage struct {
	SettingsPage
}

func NewGeneralSettingsPage(f fixture.Fixture, bo backoffice.BackOffice) *GeneralSettingsPage {
	return &GeneralSettingsPage{SettingsPage: NewSettingsPage(f, bo, backoffice.PageGeneral)}
}

func (p *GeneralSettingsPage) AllowedIPAddressesRemoveButton() browser.Locator {
	return p.Fixture.Page.Locator(`.sq-multi-item-selector:has([name="allowedIPAddresses-selector"]) .sqp-selected-item > .sqp-remove-button`)
}

func (p *GeneralSettingsPage) AllowedIPAddressesInput() browser.Locator {
	return p.Fixture.Page.Locator(`[name="allowedIPAddresses-selector"] + .sq-multi-input`)
}

func (p *GeneralSettingsPage) AllowedIPAddressesHiddenInput() browser.Locator {
	return p.Fixture.Page.Locator(`[name="allowedIPAddresses-selector"]`)
}

func (p *GeneralSettingsPage) CountriesMultiSelect() browser.Locator {
	return p.Fixture.Page.Locator(`.sq-multi-item-selector:has([name="countries-selector"])`)
}

func (p *GeneralSettingsPage) CountriesSelect() browser.Locator {
	return p.Fixture.Page.Locator(`[name="countries-selector"]`)
}

// field locates the input area of the settings field with the given label.
func (p *GeneralSettingsPage) field(label string) browser.Locator {
	return p.Fixture.Page.Locator(".sq-field-wrapper").
		Filter(browser.LocatorOptions{HasText: label}).
		First().
		Locator(".sq-label-wrapper + div").
		First()
}

func (p *GeneralSettingsPage) ExcludedProducts() browser.Locator {
	return p.field("Excluded products")
}

func (p *GeneralSettingsPage) ExcludedProductsMultiInput() browser.Locator {
	return p.ExcludedProducts().Locator(".sq-multi-input")
}

func (p *GeneralSettingsPage) ExcludedProductsHiddenInput() browser.Locator {
	return p.ExcludedProducts().Locator(".sqp-hidden-input")
}

func (p *GeneralSettingsPage) ExcludedCategories() browser.Locator {
	return p.field("Excluded categories")
}

func (p *GeneralSettingsPage) ExcludedCategoriesHiddenInput() browser.Locator {
	return p.ExcludedCategories().Locator(".sqp-hidden-input").First()
}

func (p *GeneralSettingsPage) EnabledForServicesToggle() ToggleFunc {
	return p.ToggleIn(p.Fixture.Page.Locator(".sq-field-enabled-for-services"))
}

func (p *GeneralSettingsPage) AllowFirstServicePaymentDelayToggle() ToggleFunc {
	return p.ToggleIn(p.Fixture.Page.Locator(".sq-field-allow-first-service-payment-delay"))
}

func (p *GeneralSettingsPage) AllowRegistrationItemsToggle() ToggleFunc {
	return p.ToggleIn(p.Fixture.Page.Locator(".sq-field-allow-service-registration-items"))
}

func (p *GeneralSettingsPage) DefaultServicesEndDateInput() browser.Locator {
	return p.Fixture.Page.Locator(".sq-text-input.sq-default-services-end-date")
}

// CountryInput is the merchant reference input of a country.
func (p *GeneralSettingsPage) CountryInput(code string) browser.Locator {
	return p.Fixture.Page.Locator(fmt.Sprintf(`[name="country_%s"]`, code))
}

func (p *GeneralSettingsPage) CountryInputError() browser.Locator {
	return p.Fixture.Page.Locator(".sq-country-field-wrapper .sqp-input-error").
		Filter(browser.LocatorOptions{HasText: "This field is invalid."})
}

func (p *GeneralSettingsPage) ExpectAllowedIPAddressesToBeEmpty() error {
	return p.ExpectAllowedIPAddressesToHaveValue("")
}

func (p *GeneralSettingsPage) ExpectAllowedIPAddressesToHaveValue(value string) error {
	err := p.AllowedIPAddressesHiddenInput().ExpectValue(value, fixture.DefaultTimeout)
	return fixture.Assertf(err, `"Allowed IP addresses" should have value %q`, value)
}

func (p *GeneralSettingsPage) ExpectExcludedProductsToBeEmpty() error {
	err := p.ExcludedProductsHiddenInput().ExpectValue("", fixture.DefaultTimeout)
	return fixture.Assertf(err, `"Excluded products" should be empty`)
}

func (p *GeneralSettingsPage) ExpectExcludedCategoriesToBeEmpty() error {
	err := p.ExcludedCategoriesHiddenInput().ExpectValue("", fixture.DefaultTimeout)
	return fixture.Assertf(err, `"Excluded categories" should be empty`)
}

// FillAllowedIPAddresses replaces the allowed IP addresses.
func (p *GeneralSettingsPage) FillAllowedIPAddresses(addresses []string) error {
	return p.FillMultiValue(MultiValueField{
		Name:   "Allowed IP addresses",
		Input:  p.AllowedIPAddressesInput(),
		Hidden: p.AllowedIPAddressesHiddenInput(),
		Remove: p.AllowedIPAddressesRemoveButton,
	}, addresses)
}

// FillExcludedProducts replaces the excluded product references.
func (p *GeneralSettingsPage) FillExcludedProducts(values []string) error {
	return p.FillMultiValue(MultiValueField{
		Name:   "Excluded products",
		Input:  p.ExcludedProductsMultiInput(),
		Hidden: p.ExcludedProductsHiddenInput(),
		Remove: func() browser.Locator { return p.SelectedItemRemoveButton(p.ExcludedProducts()) },
	}, values)
}

// SelectExcludedCategories replaces the excluded categories. An empty list
// only clears them.
func (p *GeneralSettingsPage) SelectExcludedCategories(categories []string) error {
	if err := p.clearSelected(func() browser.Locator { return p.SelectedItemRemoveButton(p.ExcludedCategories()) }); err != nil {
		return err
	}
	if err := p.ExpectExcludedCategoriesToBeEmpty(); err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}

	container := p.ExcludedCategories()
	if err := container.Click(); err != nil {
		return err
	}
	for _, category := range categories {
		item := container.GetByText(category)
		if err := item.WaitFor(browser.WaitForOptions{State: browser.StateVisible}); err != nil {
			return fmt.Errorf("category %q not listed: %w", category, err)
		}
		if err := item.Click(); err != nil {
			return err
		}
		if err := p.SelectedItem(container, category).WaitFor(browser.WaitForOptions{State: browser.StateVisible}); err != nil {
			return fmt.Errorf("category %q not selected: %w", category, err)
		}
	}
	return p.CloseDropdownList(container)
}

// FillDefaultServicesEndDate types the services end date and leaves the
// field so that it gets validated.
func (p *GeneralSettingsPage) FillDefaultServicesEndDate(value string) error {
	input := p.DefaultServicesEndDateInput()
	if err := input.Fill(value); err != nil {
		return err
	}
	return input.Blur()
}

// FillMerchantRef types the merchant reference of a country.
func (p *GeneralSettingsPage) FillMerchantRef(code, ref string) error {
	return p.CountryInput(code).Fill(ref)
}

// ExpectAvailableCountries asserts exactly countries are selected.
func (p *GeneralSettingsPage) ExpectAvailableCountries(countries []models.CountryMerchantRef) error {
	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		codes = append(codes, c.Code)
		if err := p.ExpectToBeVisible(p.SelectedItem(p.Fixture.Page, c.Name), fmt.Sprintf("Country %q", c.Name), true); err != nil {
			return err
		}
	}
	sort.Strings(codes)

	raw, err := p.CountriesSelect().InputValue()
	if err != nil {
		return err
	}
	var actual []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			actual = append(actual, v)
		}
	}
	sort.Strings(actual)

	if strings.Join(codes, ",") != strings.Join(actual, ",") {
		return fmt.Errorf("%w: countries selector should be %q, got %q", fixture.ErrAssertion, strings.Join(codes, ","), strings.Join(actual, ","))
	}
	return nil
}

// FillAvailableCountries replaces the selected countries.
func (p *GeneralSettingsPage) FillAvailableCountries(countries []models.CountryMerchantRef) error {
	if err := p.clearSelected(func() browser.Locator { return p.SelectedItemRemoveButton(p.CountriesMultiSelect()) }); err != nil {
		return err
	}
	if err := p.ExpectAvailableCountries(nil); err != nil {
		return err
	}
	if len(countries) == 0 {
		return nil
	}

	multi := p.CountriesMultiSelect()
	if err := multi.Click(); err != nil {
		return err
	}
	if err := p.DropdownListVisible().WaitFor(browser.WaitForOptions{Timeout: dropdownTimeout}); err != nil {
		return fmt.Errorf("countries list did not open: %w", err)
	}
	for _, c := range countries {
		if err := p.DropdownListItem(p.Fixture.Page, c.Name).Click(); err != nil {
			return err
		}
	}
	return p.CloseDropdownList(multi)
}

func (p *GeneralSettingsPage) ExpectCountryInputErrorToBeVisible() error {
	return p.ExpectToBeVisible(p.CountryInputError(), "Country input error", true)
}

// ServicesConfiguration is the expected state of the services section. Each
// list holds the country codes the option applies to.
type ServicesConfiguration struct {
	EnabledForServices            []string
	AllowRegistrationItems        []string
	AllowFirstServicePaymentDelay []string
	// DefaultServicesEndDate defaults to DefaultServicesEndDate.
	DefaultServicesEndDate string
}

// ExpectServicesConfiguration asserts the services toggles and end date. The
// dependent options are only shown while services are enabled.
func (p *GeneralSettingsPage) ExpectServicesConfiguration(cfg ServicesConfiguration) error {
	if cfg.DefaultServicesEndDate == "" {
		cfg.DefaultServicesEndDate = DefaultServicesEndDate
	}
	enabled := len(cfg.EnabledForServices) > 0
	delay := p.AllowFirstServicePaymentDelayToggle()
	registration := p.AllowRegistrationItemsToggle()

	if err := p.ExpectToBeChecked(p.EnabledForServicesToggle()(ToggleInput), `"Enable for services" toggle`, enabled); err != nil {
		return err
	}
	if err := p.ExpectToBeVisible(delay(ToggleLabel), `"Allow first service payment delay" toggle`, enabled); err != nil {
		return err
	}
	if err := p.ExpectToBeVisible(registration(ToggleLabel), `"Allow registration items" toggle`, enabled); err != nil {
		return err
	}
	if err := p.ExpectToBeVisible(p.DefaultServicesEndDateInput(), `"Default services end date" input`, enabled); err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	if err := p.ExpectToBeChecked(delay(ToggleInput), `"Allow first service payment delay" toggle`, len(cfg.AllowFirstServicePaymentDelay) > 0); err != nil {
		return err
	}
	if err := p.ExpectToBeChecked(registration(ToggleInput), `"Allow registration items" toggle`, len(cfg.AllowRegistrationItems) > 0); err != nil {
		return err
	}
	err := p.DefaultServicesEndDateInput().ExpectValue(cfg.DefaultServicesEndDate, fixture.DefaultTimeout)
	return fixture.Assertf(err, `"Default services end date" should be %q`, cfg.DefaultServicesEndDate)
}
