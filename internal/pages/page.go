// Package pages models the seQura settings pages of the back office and the
// storefront pages (product, category, cart, checkout) as page objects.
//
// Every page object embeds Page, which carries the browser page, the store
// base URL and a logger, plus the locators and actions shared by all
// surfaces. Storefront pages depend on a platform surface interface for the
// parts that differ between e-commerce platforms.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
)

const (
	loadTimeout     = 10 * time.Second
	dropdownTimeout = time.Second
)

// TogglePart selects which element of a toggle a locator points to.
type TogglePart int

const (
	// ToggleInput is the checkbox, used to read state.
	ToggleInput TogglePart = iota
	// ToggleLabel is the visible switch, used to change state.
	ToggleLabel
)

// ToggleFunc locates one part of a given toggle.
type ToggleFunc func(part TogglePart) browser.Locator

// Page is embedded by every page object.
type Page struct {
	fixture.Fixture
}

// NewPage returns a Page whose logger is tagged with name.
func NewPage(f fixture.Fixture, name string) Page {
	return Page{Fixture: f.Named(name)}
}

// Toggle locates the toggle inside scope.
func (p Page) Toggle(scope browser.Scope, part TogglePart) browser.Locator {
	loc := scope.Locator(".sq-toggle")
	if part == ToggleInput {
		return loc.Locator("input")
	}
	return loc
}

// ToggleIn returns a ToggleFunc for the toggle inside scope.
func (p Page) ToggleIn(scope browser.Scope) ToggleFunc {
	return func(part TogglePart) browser.Locator {
		return p.Toggle(scope, part)
	}
}

// ToggleNextTo returns a ToggleFunc for the toggle sharing a parent with the
// heading of the given name.
func (p Page) ToggleNextTo(heading string) ToggleFunc {
	return p.ToggleIn(p.Fixture.Page.GetByRole("heading", heading).Locator("xpath=.."))
}

func (p Page) SelectedItem(scope browser.Scope, text string) browser.Locator {
	return scope.Locator(".sqp-selected-item", browser.LocatorOptions{HasText: text})
}

func (p Page) SelectedItemRemoveButton(scope browser.Scope) browser.Locator {
	return scope.Locator(".sqp-selected-item > .sqp-remove-button")
}

func (p Page) DropdownButton(scope browser.Scope) browser.Locator {
	return scope.Locator(".sqp-dropdown-button")
}

func (p Page) DropdownListItem(scope browser.Scope, text string) browser.Locator {
	return scope.Locator(".sqp-dropdown-button + .sqp-dropdown-list .sqp-dropdown-list-item", browser.LocatorOptions{HasText: text})
}

func (p Page) DropdownSelectedListItem(scope browser.Scope, text string) browser.Locator {
	return scope.Locator(".sqp-dropdown-button > .sqs--selected", browser.LocatorOptions{HasText: text})
}

func (p Page) DropdownListVisible() browser.Locator {
	return p.Fixture.Page.Locator(".sqp-dropdown-list.sqs--show")
}

func (p Page) MultiSelect() browser.Locator {
	return p.Fixture.Page.Locator(".sq-multi-item-selector")
}

func (p Page) MultiSelectSelectedListItem(text string) browser.Locator {
	return p.SelectedItem(p.MultiSelect(), text)
}

func (p Page) PrimaryButton() browser.Locator {
	return p.Fixture.Page.Locator(".sq-button.sqt--primary:not([disabled])")
}

func (p Page) SecondaryButton() browser.Locator {
	return p.Fixture.Page.Locator(".sq-button.sqt--secondary:not([disabled])")
}

// ExpectToBeChecked asserts the checkbox state.
func (p Page) ExpectToBeChecked(loc browser.Locator, what string, checked bool) error {
	state := "unchecked"
	if checked {
		state = "checked"
	}
	return fixture.Assertf(loc.ExpectChecked(checked, fixture.DefaultTimeout), "%s should be %s", what, state)
}

// ExpectToBeVisible asserts the visibility of loc.
func (p Page) ExpectToBeVisible(loc browser.Locator, what string, visible bool) error {
	state := "hidden"
	if visible {
		state = "visible"
	}
	return fixture.Assertf(loc.ExpectVisible(visible, fixture.DefaultTimeout), "%s should be %s", what, state)
}

// SetToggle switches a toggle to enabled. The toggle must currently be in
// the opposite state; calling it twice with the same value fails.
func (p Page) SetToggle(toggle ToggleFunc, enabled bool, what string) error {
	if err := p.ExpectToBeChecked(toggle(ToggleInput), what, !enabled); err != nil {
		return err
	}
	if err := toggle(ToggleLabel).Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", what, err)
	}
	return p.ExpectToBeChecked(toggle(ToggleInput), what, enabled)
}

// EnsureToggle calls SetToggle only when the toggle is not already in the
// desired state.
func (p Page) EnsureToggle(toggle ToggleFunc, enabled bool, what string) error {
	checked, err := toggle(ToggleInput).IsChecked()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", what, err)
	}
	if checked == enabled {
		return nil
	}
	return p.SetToggle(toggle, enabled, what)
}

// CloseDropdownList clicks the dropdown owner again and waits for the list
// to collapse.
func (p Page) CloseDropdownList(owner browser.Locator) error {
	if err := owner.Click(); err != nil {
		return err
	}
	return p.DropdownListVisible().WaitFor(browser.WaitForOptions{State: browser.StateHidden, Timeout: dropdownTimeout})
}

// OpenDetails expands a <details> element if it is collapsed.
func (p Page) OpenDetails(details browser.Locator) error {
	closed, err := fixture.Present(details.Locator("xpath=self::details[not(@open)]"))
	if err != nil || !closed {
		return err
	}
	return details.Locator("summary").Click()
}

// RemoveAllDetails removes every <details> entry matched by details, first
// to last, checking the count drops after each removal.
func (p Page) RemoveAllDetails(details func() browser.Locator) error {
	n, err := details().Count()
	if err != nil {
		return err
	}
	for n > 0 {
		first := details().First()
		if err := p.OpenDetails(first); err != nil {
			return err
		}
		if err := first.Locator(".sq-remove").Click(); err != nil {
			return err
		}
		n--
		if err := details().ExpectCount(n, loadTimeout); err != nil {
			return fixture.Assertf(err, "details should drop to %d entries", n)
		}
	}
	return nil
}

// fill pairs a field with its value. An empty value leaves the field as it
// is, both when filling and when checking.
type fill struct {
	loc   browser.Locator
	value string
}

func fillAll(fields ...fill) error {
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := f.loc.Fill(f.value); err != nil {
			return err
		}
	}
	return nil
}

func expectValues(fields ...fill) error {
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := f.loc.ExpectValue(f.value, fixture.DefaultTimeout); err != nil {
			return fixture.Assertf(err, "field should have value %q", f.value)
		}
	}
	return nil
}

// MultiValueField is a free text multi value input: the text box, the
// hidden input holding the comma separated value and the remove buttons of
// the current items.
type MultiValueField struct {
	Name   string
	Input  browser.Locator
	Hidden browser.Locator
	Remove func() browser.Locator
}

// FillMultiValue replaces the values of field. Existing items are removed
// and the empty state verified; then each value is typed and confirmed with
// Enter, checking the accumulated hidden value after every addition.
func (p Page) FillMultiValue(field MultiValueField, values []string) error {
	if err := p.clearSelected(field.Remove); err != nil {
		return err
	}
	if err := field.Hidden.ExpectValue("", fixture.DefaultTimeout); err != nil {
		return fixture.Assertf(err, "%q should be empty", field.Name)
	}

	var added []string
	for _, v := range values {
		if err := field.Input.Focus(); err != nil {
			return err
		}
		if err := field.Input.Fill(v); err != nil {
			return err
		}
		if err := p.Fixture.Page.Press("Enter"); err != nil {
			return err
		}
		added = append(added, v)
		want := strings.Join(added, ",")
		if err := field.Hidden.ExpectValue(want, fixture.DefaultTimeout); err != nil {
			return fixture.Assertf(err, "%q should have value %q", field.Name, want)
		}
		if err := field.Input.ExpectValue("", fixture.DefaultTimeout); err != nil {
			return fixture.Assertf(err, "%q input field should be empty", field.Name)
		}
	}
	return nil
}

// clearSelected clicks the first remove button until none is left.
func (p Page) clearSelected(remove func() browser.Locator) error {
	n, err := remove().Count()
	if err != nil {
		return err
	}
	for n > 0 {
		if err := remove().First().Click(); err != nil {
			return err
		}
		n--
		if err := remove().ExpectCount(n, fixture.DefaultTimeout); err != nil {
			return fixture.Assertf(err, "selected items should drop to %d", n)
		}
	}
	return nil
}

// Exists reports whether loc gets attached within timeout.
func (p Page) Exists(loc browser.Locator, timeout time.Duration) (bool, error) {
	return fixture.Exists(loc, timeout)
}

// gotoURL navigates unless the browser is already at url.
func (p Page) gotoURL(url string, force bool) error {
	if !force && p.Fixture.Page.URL() == url {
		p.Log.WithField("url", url).Debug("Already on page, skipping navigation")
		return nil
	}
	p.Log.WithField("url", url).Info("Navigating")
	if err := p.Fixture.Page.Goto(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// required turns a nil platform locator into ErrNotImplemented.
func required(loc browser.Locator, what string) (browser.Locator, error) {
	if loc == nil {
		return nil, fixture.NotImplemented(what)
	}
	return loc, nil
}
