package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/browser/browsertest"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

const (
	usernameKey   = `[name="username-input"]`
	passwordKey   = `[name="password-input"]`
	confirmKey    = "#sq-modal .sq-button.sqt--primary"
	manageKey     = ".sqm--deployment .sq-button"
	primaryKey    = ".sq-button.sqt--primary:not([disabled])"
	secondaryKey  = ".sq-button.sqt--secondary:not([disabled])"
	onboardingURL = baseURL + "/wp-admin/admin.php?page=sequra#onboarding-deployments"
)

func targetTab(name string) string {
	return browsertest.Has(".sqp-menu-items-deployments .sqp-menu-item", name)
}

func envLabel(env string) string {
	return `.sq-radio-input:has([type="radio"][value="` + env + `"])`
}

func TestConnectionSettingsPage_FillForm(t *testing.T) {
	tests := []struct {
		name string
		form ConnectionForm
		want []string
	}{
		{
			name: "empty form touches nothing",
		},
		{
			name: "environment and credentials",
			form: ConnectionForm{
				Env: models.EnvLive,
				Credentials: []models.DeploymentTargetCredentials{
					{Name: "seQura", Username: "dummy", Password: "secret"},
				},
			},
			want: []string{
				"click " + envLabel(models.EnvLive),
				"click " + targetTab("seQura"),
				"fill " + usernameKey + "=dummy",
				"fill " + passwordKey + "=secret",
			},
		},
		{
			name: "username only",
			form: ConnectionForm{
				Credentials: []models.DeploymentTargetCredentials{{Username: "dummy"}},
			},
			want: []string{"fill " + usernameKey + "=dummy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, page := newFixture(t)
			page.Add(envLabel(models.EnvSandbox))
			page.Add(envLabel(models.EnvLive))
			page.Add(targetTab("seQura"))
			page.Add(usernameKey).Value = "kept"
			page.Add(passwordKey).Value = "kept"

			require.NoError(t, NewConnectionSettingsPage(f, nil).FillForm(tt.form))
			assert.Equal(t, tt.want, page.Actions)
		})
	}
}

func TestConnectionSettingsPage_ExpectFormToHaveValues(t *testing.T) {
	f, page := newFixture(t)
	page.Add(usernameKey).Value = "dummy"
	page.Add(passwordKey).Value = "secret"
	page.Add(`[type="radio"][value="sandbox"]`).Checked = true
	p := NewConnectionSettingsPage(f, nil)

	require.NoError(t, p.ExpectFormToHaveValues("dummy", "secret", models.EnvSandbox))

	err := p.ExpectFormToHaveValues("dummy", "secret", models.EnvLive)
	assert.ErrorIs(t, err, fixture.ErrAssertion)
	assert.Contains(t, err.Error(), "Live environment")
}

func TestConnectionSettingsPage_DisconnectAll(t *testing.T) {
	f, page := newFixture(t)
	disconnect := page.Add(browsertest.Role("button", "Disconnect"))
	disconnect.Count = 2
	page.Add(confirmKey).OnClick = func() {
		disconnect.Count--
		if disconnect.Count == 0 {
			page.CurrentURL = onboardingURL
		}
	}
	page.Add(loaderOn)
	page.Add(loaderOff)

	require.NoError(t, NewConnectionSettingsPage(f, nil).DisconnectAll())
	assert.Equal(t, 2, page.Count("click "+browsertest.Role("button", "Disconnect")))
	assert.Equal(t, 2, page.Count("click "+confirmKey))
	assert.Equal(t, 0, disconnect.Count)
}

func TestConnectionSettingsPage_DisconnectAll_NotSentToOnboarding(t *testing.T) {
	f, page := newFixture(t)

	err := NewConnectionSettingsPage(f, nil).DisconnectAll()
	assert.ErrorIs(t, err, browser.ErrTimeout)
	assert.Empty(t, page.Actions)
}

// deploymentTargetsModal scripts the manage form of a deployment target
// that is not connected yet: saving keeps its tab, cancelling removes it.
func deploymentTargetsModal(page *browsertest.Page, name string) *browsertest.Element {
	tab := page.Set(targetTab(name), &browsertest.Element{})
	page.Add(manageKey).OnClick = func() { tab.Count = 1 }
	page.Add(usernameKey)
	page.Add(passwordKey)
	page.Add(primaryKey)
	page.Add(secondaryKey).OnClick = func() { tab.Count = 0 }
	page.Add(loaderOn)
	page.Add(loaderOff)
	return tab
}

func TestConnectionSettingsPage_FillManageDeploymentTargetsForm(t *testing.T) {
	target := models.DeploymentTargetCredentials{Name: "svea", Username: "dummy_svea", Password: "secret"}

	t.Run("save", func(t *testing.T) {
		f, page := newFixture(t)
		tab := deploymentTargetsModal(page, target.Name)

		require.NoError(t, NewConnectionSettingsPage(f, nil).FillManageDeploymentTargetsForm(target, true))
		assert.Equal(t, 1, tab.Count)
		assert.Equal(t, 2, page.Count("click "+targetTab(target.Name)))
		assert.True(t, page.Did("click "+primaryKey))
		assert.False(t, page.Did("click "+secondaryKey))
		assert.Equal(t, "dummy_svea", page.Get(usernameKey).Value)
	})

	t.Run("cancel", func(t *testing.T) {
		f, page := newFixture(t)
		tab := deploymentTargetsModal(page, target.Name)

		require.NoError(t, NewConnectionSettingsPage(f, nil).FillManageDeploymentTargetsForm(target, false))
		assert.Equal(t, 0, tab.Count)
		assert.True(t, page.Did("click "+secondaryKey))
		assert.False(t, page.Did("click "+primaryKey))
	})

	t.Run("cancel keeps the tab", func(t *testing.T) {
		f, page := newFixture(t)
		deploymentTargetsModal(page, target.Name)
		page.Get(secondaryKey).OnClick = nil

		err := NewConnectionSettingsPage(f, nil).FillManageDeploymentTargetsForm(target, false)
		assert.ErrorIs(t, err, fixture.ErrAssertion)
		assert.Contains(t, err.Error(), `"svea" should not be listed`)
	})
}
