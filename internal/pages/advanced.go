package pages

import (
	"fmt"
	"strings"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// Log severity levels
const (
	SeverityDebug   = "DEBUG"
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// AdvancedSettingsPage is the "Advanced > Debug" tab with the log viewer.
type AdvancedSettingsPage struct {
	SettingsPage
}

func NewAdvancedSettingsPage(f fixture.Fixture, bo backoffice.BackOffice) *AdvancedSettingsPage {
	return &AdvancedSettingsPage{SettingsPage: NewSettingsPage(f, bo, backoffice.PageAdvanced)}
}

func (p *AdvancedSettingsPage) NoEntriesFound() browser.Locator {
	return p.Fixture.Page.GetByRole("cell", "No entries found")
}

func (p *AdvancedSettingsPage) EnableLogsToggle() ToggleFunc {
	return p.ToggleIn(p.Fixture.Page)
}

func (p *AdvancedSettingsPage) ReloadLogsButton() browser.Locator {
	return p.Fixture.Page.GetByRole("button", "Reload")
}

func (p *AdvancedSettingsPage) RemoveLogsButton() browser.Locator {
	return p.Fixture.Page.GetByRole("button", "Remove")
}

func (p *AdvancedSettingsPage) ConfirmRemoveLogsButton() browser.Locator {
	return p.Fixture.Page.Locator("#sq-modal .sq-button.sqt--danger")
}

func (p *AdvancedSettingsPage) LogEntry(level, message string) browser.Locator {
	return p.Fixture.Page.Locator(".sqm--log.sqm--log-"+strings.ToLower(level), browser.LocatorOptions{HasText: message})
}

func (p *AdvancedSettingsPage) FirstLogEntry() browser.Locator {
	return p.Fixture.Page.Locator(".sqm--log").First()
}

func (p *AdvancedSettingsPage) LogPaginationActiveItem() browser.Locator {
	return p.Fixture.Page.Locator(".datatable-pagination-list-item.sq-datatable__active")
}

func (p *AdvancedSettingsPage) SeverityDropdownButton() browser.Locator {
	return p.DropdownButton(p.Fixture.Page.Locator(".sq-single-select-dropdown"))
}

func (p *AdvancedSettingsPage) ExpectLogIsEmpty() error {
	err := p.NoEntriesFound().WaitFor(browser.WaitForOptions{State: browser.StateVisible, Timeout: fixture.DefaultTimeout})
	return fixture.Assertf(err, "log should be empty")
}

// EnableLogs switches logging on or off.
func (p *AdvancedSettingsPage) EnableLogs(enable bool) error {
	if err := p.SetToggle(p.EnableLogsToggle(), enable, "Enable logs"); err != nil {
		return err
	}
	return p.ExpectLoadingShowAndHide()
}

func (p *AdvancedSettingsPage) ReloadLogs() error {
	if err := p.ReloadLogsButton().Click(); err != nil {
		return err
	}
	return p.ExpectLoadingShowAndHide()
}

// RemoveLogs deletes every log entry, confirming the dialog.
func (p *AdvancedSettingsPage) RemoveLogs() error {
	if err := p.RemoveLogsButton().Click(); err != nil {
		return err
	}
	confirm := p.ConfirmRemoveLogsButton()
	if err := confirm.WaitFor(browser.WaitForOptions{State: browser.StateVisible}); err != nil {
		return fmt.Errorf("remove confirmation did not show: %w", err)
	}
	if err := confirm.Click(); err != nil {
		return err
	}
	return p.ExpectLoadingShowAndHide()
}

// ExpectLogHasContent asserts the log is not empty, that every expected
// entry is shown and that no unexpected one is.
func (p *AdvancedSettingsPage) ExpectLogHasContent(expected, unexpected []models.LogEntry) error {
	if err := p.ExpectToBeVisible(p.FirstLogEntry(), "Log datatable content", true); err != nil {
		return err
	}
	for _, e := range expected {
		if err := p.ExpectToBeVisible(p.LogEntry(e.Level, e.Message), fmt.Sprintf("%s log %q", e.Level, e.Message), true); err != nil {
			return err
		}
	}
	for _, e := range unexpected {
		err := p.LogEntry(e.Level, e.Message).ExpectCount(0, fixture.DefaultTimeout)
		if err != nil {
			return fixture.Assertf(err, "%s log %q should not be present", e.Level, e.Message)
		}
	}
	return nil
}

func (p *AdvancedSettingsPage) ExpectLogPaginationIsVisible() error {
	return p.ExpectToBeVisible(p.LogPaginationActiveItem(), "Logs pagination", true)
}

// SetSeverityLevel picks the minimum level recorded, one of the Severity
// constants.
func (p *AdvancedSettingsPage) SetSeverityLevel(level string) error {
	if err := p.SeverityDropdownButton().Click(); err != nil {
		return err
	}
	if err := p.DropdownListItem(p.Fixture.Page, level).Click(); err != nil {
		return err
	}
	return p.ExpectLoadingShowAndHide()
}
