package pages

import (
	"fmt"
	"regexp"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

var onboardingDeploymentsURL = regexp.MustCompile(`#onboarding-deployments`)

// ConnectionSettingsPage is the "Connection" settings tab.
type ConnectionSettingsPage struct {
	SettingsPage
}

func NewConnectionSettingsPage(f fixture.Fixture, bo backoffice.BackOffice) *ConnectionSettingsPage {
	return &ConnectionSettingsPage{SettingsPage: NewSettingsPage(f, bo, backoffice.PageConnection)}
}

func (p *ConnectionSettingsPage) ModalConfirmButton() browser.Locator {
	return p.Fixture.Page.Locator("#sq-modal .sq-button.sqt--primary")
}

func (p *ConnectionSettingsPage) DisconnectButton() browser.Locator {
	return p.Fixture.Page.GetByRole("button", "Disconnect")
}

// EnvOption locates the radio input of env, or its clickable wrapper.
func (p *ConnectionSettingsPage) EnvOption(env string, label bool) browser.Locator {
	sel := fmt.Sprintf(`[type="radio"][value="%s"]`, env)
	if label {
		sel = fmt.Sprintf(".sq-radio-input:has(%s)", sel)
	}
	return p.Fixture.Page.Locator(sel)
}

func (p *ConnectionSettingsPage) Username() browser.Locator {
	return p.Fixture.Page.Locator(`[name="username-input"]`)
}

func (p *ConnectionSettingsPage) Password() browser.Locator {
	return p.Fixture.Page.Locator(`[name="password-input"]`)
}

func (p *ConnectionSettingsPage) CredentialsError() browser.Locator {
	return p.Fixture.Page.Locator(".sqp-alert-title").
		Filter(browser.LocatorOptions{HasText: "Invalid username or password. Validate connection data."})
}

// DeploymentTargetTab locates the tab of a deployment target, or every tab
// when name is empty.
func (p *ConnectionSettingsPage) DeploymentTargetTab(name string) browser.Locator {
	return p.Fixture.Page.Locator(".sqp-menu-items-deployments .sqp-menu-item", browser.LocatorOptions{HasText: name})
}

func (p *ConnectionSettingsPage) ManageDeploymentTargetsButton() browser.Locator {
	return p.Fixture.Page.Locator(".sqm--deployment .sq-button")
}

// ConfirmModal accepts the confirmation dialog.
func (p *ConnectionSettingsPage) ConfirmModal() error {
	btn := p.ModalConfirmButton()
	if err := btn.WaitFor(browser.WaitForOptions{State: browser.StateVisible}); err != nil {
		return fmt.Errorf("confirmation dialog did not show: %w", err)
	}
	return btn.Click()
}

// Disconnect removes the connection of one deployment target.
func (p *ConnectionSettingsPage) Disconnect(target models.DeploymentTargetCredentials) error {
	if err := p.DeploymentTargetTab(target.Name).Click(); err != nil {
		return err
	}
	if err := p.DisconnectButton().Click(); err != nil {
		return err
	}
	if err := p.ConfirmModal(); err != nil {
		return err
	}
	return p.ExpectLoadingShowAndHide()
}

// DisconnectAll disconnects every remaining deployment target, which sends
// the back office back to the onboarding.
func (p *ConnectionSettingsPage) DisconnectAll() error {
	for {
		ok, err := fixture.Present(p.DisconnectButton())
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := p.DisconnectButton().Click(); err != nil {
			return err
		}
		if err := p.ConfirmModal(); err != nil {
			return err
		}
		if err := p.ExpectLoadingShowAndHide(); err != nil {
			return err
		}
	}
	return p.Fixture.Page.WaitForURL(onboardingDeploymentsURL, 0)
}

// FillManageDeploymentTargetsForm sets the credentials of a deployment
// target and saves or cancels.
func (p *ConnectionSettingsPage) FillManageDeploymentTargetsForm(target models.DeploymentTargetCredentials, save bool) error {
	if err := p.ManageDeploymentTargetsButton().Click(); err != nil {
		return err
	}
	if err := p.fillCredentials(target); err != nil {
		return err
	}

	if !save {
		if err := p.SecondaryButton().Click(); err != nil {
			return err
		}
		err := p.DeploymentTargetTab(target.Name).ExpectCount(0, fixture.DefaultTimeout)
		return fixture.Assertf(err, "deployment target %q should not be listed after cancelling", target.Name)
	}

	if err := p.PrimaryButton().Click(); err != nil {
		return err
	}
	if err := p.ExpectLoadingShowAndHide(); err != nil {
		return err
	}
	if err := p.DeploymentTargetTab(target.Name).Click(); err != nil {
		return err
	}
	if err := p.Username().ExpectValue(target.Username, fixture.DefaultTimeout); err != nil {
		return fixture.Assertf(err, "username should be %q", target.Username)
	}
	err := p.Password().ExpectValue(target.Password, fixture.DefaultTimeout)
	return fixture.Assertf(err, "password should be saved")
}

// fillCredentials opens the target tab and types the credentials given.
// Empty credentials are left as they are.
func (p *ConnectionSettingsPage) fillCredentials(target models.DeploymentTargetCredentials) error {
	if target.Name != "" {
		if err := p.DeploymentTargetTab(target.Name).Click(); err != nil {
			return err
		}
	}
	return fillAll(
		fill{p.Username(), target.Username},
		fill{p.Password(), target.Password},
	)
}

// ConnectionForm is the connect form content. Empty fields are left as the
// page shows them.
type ConnectionForm struct {
	// Env is models.EnvSandbox or models.EnvLive.
	Env         string
	Credentials []models.DeploymentTargetCredentials
}

// FillForm picks the environment and types the credentials of every target.
func (p *ConnectionSettingsPage) FillForm(form ConnectionForm) error {
	if form.Env != "" {
		if err := p.EnvOption(form.Env, true).Click(); err != nil {
			return err
		}
	}
	for _, c := range form.Credentials {
		if err := p.fillCredentials(c); err != nil {
			return err
		}
	}
	return nil
}

// ExpectFormToHaveValues asserts the credentials and environment shown.
func (p *ConnectionSettingsPage) ExpectFormToHaveValues(username, password, env string) error {
	if err := p.Username().ExpectValue(username, fixture.DefaultTimeout); err != nil {
		return fixture.Assertf(err, "username should be %q", username)
	}
	if err := p.Password().ExpectValue(password, fixture.DefaultTimeout); err != nil {
		return fixture.Assertf(err, "password should be set")
	}
	name := "Live"
	if env == models.EnvSandbox {
		name = "Sandbox"
	}
	return p.ExpectToBeChecked(p.EnvOption(env, false), name+" environment", true)
}

func (p *ConnectionSettingsPage) ExpectCredentialsErrorToBeVisible() error {
	return p.CredentialsError().WaitFor(browser.WaitForOptions{State: browser.StateVisible})
}
