package pages

import (
	"fmt"
	"time"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
)

const (
	saveButtonTimeout = 1500 * time.Millisecond
	saveClickTimeout  = 500 * time.Millisecond
	errorTimeout      = 100 * time.Millisecond
)

// SettingsPage is a page of the seQura settings in the back office, reached
// through a page hash.
type SettingsPage struct {
	Page
	BackOffice backoffice.BackOffice
	Hash       string
}

// NewSettingsPage creates the settings page for hash.
func NewSettingsPage(f fixture.Fixture, bo backoffice.BackOffice, hash string) SettingsPage {
	return SettingsPage{
		Page:       NewPage(f, hash),
		BackOffice: bo,
		Hash:       hash,
	}
}

// PageLoader locates the loading overlay, hidden or shown.
func (p SettingsPage) PageLoader(hidden bool) browser.Locator {
	if hidden {
		return p.Fixture.Page.Locator(".sq-page-loader.sqs--hidden")
	}
	return p.Fixture.Page.Locator(".sq-page-loader:not(.sqs--hidden)")
}

func (p SettingsPage) SaveButton() browser.Locator {
	return p.Fixture.Page.Locator(".sq-button.sqp-save:not([disabled])")
}

func (p SettingsPage) CancelButton() browser.Locator {
	return p.Fixture.Page.Locator(".sq-button.sqp-cancel:not([disabled])")
}

func (p SettingsPage) InputError() browser.Locator {
	return p.Fixture.Page.Locator(".sqp-input-error")
}

func (p SettingsPage) SelectedOption(text string) browser.Locator {
	return p.Fixture.Page.Locator("span.sqs--selected", browser.LocatorOptions{HasText: text})
}

// Goto opens the page through the back office.
func (p SettingsPage) Goto() error {
	if p.BackOffice == nil {
		return fixture.NotImplemented("settings navigation without back office")
	}
	p.Log.Info("Opening seQura settings")
	return p.BackOffice.GotoSeQuraSettings(p.Hash)
}

// ExpectLoadingShowAndHide waits for the loader to appear then disappear.
func (p SettingsPage) ExpectLoadingShowAndHide() error {
	opts := browser.WaitForOptions{State: browser.StateAttached, Timeout: loadTimeout}
	if err := p.PageLoader(false).WaitFor(opts); err != nil {
		return fmt.Errorf("loader did not show: %w", err)
	}
	if err := p.PageLoader(true).WaitFor(opts); err != nil {
		return fmt.Errorf("loader did not hide: %w", err)
	}
	return nil
}

// SaveOptions controls Save.
type SaveOptions struct {
	ExpectLoadingShowAndHide bool
	// SkipIfDisabled returns without error when the save button stays
	// disabled, i.e. there is nothing to save.
	SkipIfDisabled bool
}

// DefaultSaveOptions waits for the loader and fails on a disabled button.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{ExpectLoadingShowAndHide: true}
}

// Save clicks the save button.
func (p SettingsPage) Save(opts SaveOptions) error {
	save := p.SaveButton()
	enabled, err := fixture.Visible(save, saveButtonTimeout)
	if err != nil {
		return err
	}
	if !enabled {
		if opts.SkipIfDisabled {
			p.Log.Debug("Save button disabled, nothing to save")
			return nil
		}
		return fmt.Errorf("save button is not enabled: %w", browser.ErrTimeout)
	}
	if err := save.Click(browser.ClickOptions{Timeout: saveClickTimeout}); err != nil {
		return err
	}
	if opts.ExpectLoadingShowAndHide {
		return p.ExpectLoadingShowAndHide()
	}
	return nil
}

// Cancel discards the changes.
func (p SettingsPage) Cancel() error {
	return p.CancelButton().Click()
}

// ExpectErrorMessageToBeVisible asserts a field error is shown and the form
// buttons are disabled.
func (p SettingsPage) ExpectErrorMessageToBeVisible() error {
	if err := p.InputError().ExpectVisible(true, errorTimeout); err != nil {
		return fixture.Assertf(err, "input error should be visible")
	}
	if err := p.SaveButton().ExpectCount(0, errorTimeout); err != nil {
		return fixture.Assertf(err, "save button should be disabled")
	}
	if err := p.CancelButton().ExpectCount(0, errorTimeout); err != nil {
		return fixture.Assertf(err, "cancel button should be disabled")
	}
	return nil
}
