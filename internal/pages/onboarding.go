package pages

import (
	"fmt"
	"time"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

const stepTimeout = 5 * time.Second

// OnboardingSettingsPage is the first-run wizard: connect, countries,
// widgets and deployment targets steps.
type OnboardingSettingsPage struct {
	SettingsPage
	connection *ConnectionSettingsPage
}

func NewOnboardingSettingsPage(f fixture.Fixture, bo backoffice.BackOffice) *OnboardingSettingsPage {
	return &OnboardingSettingsPage{
		SettingsPage: NewSettingsPage(f, bo, backoffice.PageOnboarding),
		connection:   NewConnectionSettingsPage(f, bo),
	}
}

// CompletedStep locates the wizard step marked done, e.g. "onboarding-countries".
func (p *OnboardingSettingsPage) CompletedStep(hash string) browser.Locator {
	return p.Fixture.Page.Locator(fmt.Sprintf(`.sqp-step.sqs--completed[href="#%s"]`, hash))
}

func (p *OnboardingSettingsPage) MerchantRefInput(code string) browser.Locator {
	return p.Fixture.Page.Locator(fmt.Sprintf(`[name="country_%s"]`, code))
}

func (p *OnboardingSettingsPage) YesOption() browser.Locator {
	return p.Fixture.Page.Locator(`.sq-radio-input:has([type="radio"][value="true"])`)
}

func (p *OnboardingSettingsPage) AssetsKey() browser.Locator {
	return p.Fixture.Page.Locator(`[name="assets-key-input"]`)
}

func (p *OnboardingSettingsPage) SendStatisticsCheckbox() browser.Locator {
	return p.Fixture.Page.Locator(".sq-statistics input.sqp-checkbox-input")
}

func (p *OnboardingSettingsPage) HeaderNavbar() browser.Locator {
	return p.Fixture.Page.Locator(".sqp-header-top > .sqp-menu-items")
}

func (p *OnboardingSettingsPage) waitStep(hash string) error {
	if err := p.CompletedStep(hash).WaitFor(browser.WaitForOptions{Timeout: stepTimeout}); err != nil {
		return fmt.Errorf("step %s not completed: %w", hash, err)
	}
	return nil
}

// FillConnectForm connects the deployment targets and accepts sending
// statistics.
func (p *OnboardingSettingsPage) FillConnectForm(form ConnectionForm) error {
	if err := p.connection.FillForm(form); err != nil {
		return err
	}
	if err := p.YesOption().Click(); err != nil {
		return err
	}
	if err := p.PrimaryButton().Click(); err != nil {
		return err
	}
	return p.waitStep("onboarding-connect")
}

// FillCountriesForm selects the countries not selected yet.
func (p *OnboardingSettingsPage) FillCountriesForm(countries []models.CountryMerchantRef) error {
	names := make([]string, len(countries))
	for i, c := range countries {
		names[i] = c.Name
	}
	if err := p.selectMissing(names); err != nil {
		return err
	}
	if err := p.PrimaryButton().Click(); err != nil {
		return err
	}
	return p.waitStep("onboarding-countries")
}

// FillWidgetsForm enables the widgets with the given assets key.
func (p *OnboardingSettingsPage) FillWidgetsForm(assetsKey string) error {
	if err := p.YesOption().Click(); err != nil {
		return err
	}
	if err := p.AssetsKey().Fill(assetsKey); err != nil {
		return err
	}
	// The first click validates the key, the second one finishes.
	for i := 0; i < 2; i++ {
		if err := p.PrimaryButton().Click(); err != nil {
			return err
		}
	}
	if err := p.HeaderNavbar().WaitFor(browser.WaitForOptions{Timeout: stepTimeout}); err != nil {
		return fmt.Errorf("onboarding did not finish: %w", err)
	}
	return nil
}

// FillDeploymentTargetsForm selects the deployment targets not selected yet.
func (p *OnboardingSettingsPage) FillDeploymentTargetsForm(targets []models.DeploymentTargetCredentials) error {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	if err := p.selectMissing(names); err != nil {
		return err
	}
	if err := p.PrimaryButton().Click(); err != nil {
		return err
	}
	return p.waitStep("onboarding-deployments")
}

func (p *OnboardingSettingsPage) selectMissing(names []string) error {
	for _, name := range names {
		selected, err := fixture.Present(p.MultiSelectSelectedListItem(name))
		if err != nil {
			return err
		}
		if selected {
			continue
		}
		if err := p.MultiSelect().Click(); err != nil {
			return err
		}
		if err := p.DropdownListItem(p.Fixture.Page, name).Click(); err != nil {
			return err
		}
		if err := p.CloseDropdownList(p.MultiSelect()); err != nil {
			return err
		}
	}
	return nil
}
