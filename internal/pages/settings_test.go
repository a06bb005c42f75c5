package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/browser/browsertest"
	"github.com/sequra/e2e-fixtures/internal/fixture"
)

const (
	saveKey   = ".sq-button.sqp-save:not([disabled])"
	loaderOn  = ".sq-page-loader:not(.sqs--hidden)"
	loaderOff = ".sq-page-loader.sqs--hidden"
)

type recordingBackOffice struct {
	backoffice.Unimplemented
	pages []string
}

func (b *recordingBackOffice) GotoSeQuraSettings(page string) error {
	b.pages = append(b.pages, page)
	return nil
}

func TestSettingsPage_Goto(t *testing.T) {
	f, _ := newFixture(t)
	bo := &recordingBackOffice{}

	require.NoError(t, NewGeneralSettingsPage(f, bo).Goto())
	require.NoError(t, NewAdvancedSettingsPage(f, bo).Goto())
	assert.Equal(t, []string{backoffice.PageGeneral, backoffice.PageAdvanced}, bo.pages)

	err := NewSettingsPage(f, nil, backoffice.PageWidget).Goto()
	assert.ErrorIs(t, err, fixture.ErrNotImplemented)
}

func TestSettingsPage_Save(t *testing.T) {
	f, page := newFixture(t)
	page.Add(saveKey)
	page.Add(loaderOn)
	page.Add(loaderOff)
	p := NewSettingsPage(f, nil, backoffice.PageGeneral)

	require.NoError(t, p.Save(DefaultSaveOptions()))
	assert.True(t, page.Did("click "+saveKey))
	assert.True(t, page.Did("wait-for "+loaderOn+" "+string(browser.StateAttached)))
	assert.True(t, page.Did("wait-for "+loaderOff+" "+string(browser.StateAttached)))
}

func TestSettingsPage_Save_LoaderNeverShows(t *testing.T) {
	f, page := newFixture(t)
	page.Add(saveKey)
	p := NewSettingsPage(f, nil, backoffice.PageGeneral)

	err := p.Save(DefaultSaveOptions())
	assert.ErrorIs(t, err, browser.ErrTimeout)

	require.NoError(t, p.Save(SaveOptions{}))
}

func TestSettingsPage_Save_Disabled(t *testing.T) {
	f, page := newFixture(t)
	p := NewSettingsPage(f, nil, backoffice.PageGeneral)

	require.NoError(t, p.Save(SaveOptions{SkipIfDisabled: true}))
	assert.False(t, page.Did("click "+saveKey))

	err := p.Save(DefaultSaveOptions())
	assert.ErrorIs(t, err, browser.ErrTimeout)
}

func TestSettingsPage_ExpectErrorMessageToBeVisible(t *testing.T) {
	f, page := newFixture(t)
	p := NewSettingsPage(f, nil, backoffice.PageGeneral)

	page.Add(".sqp-input-error")
	require.NoError(t, p.ExpectErrorMessageToBeVisible())

	page.Add(saveKey)
	err := p.ExpectErrorMessageToBeVisible()
	assert.ErrorIs(t, err, fixture.ErrAssertion)
	assert.Contains(t, err.Error(), "save button should be disabled")
}

func TestSettingsPage_Cancel(t *testing.T) {
	f, page := newFixture(t)
	p := NewSettingsPage(f, nil, backoffice.PageGeneral)

	assert.ErrorIs(t, p.Cancel(), browser.ErrTimeout)

	page.Add(".sq-button.sqp-cancel:not([disabled])")
	require.NoError(t, p.Cancel())
}

// The fake keeps each locator chain literal, so a heading toggle is keyed by
// the heading role followed by the parent step.
func headingToggle(page *browsertest.Page, heading string, checked bool) *browsertest.Element {
	parent := browsertest.Join(browsertest.Role("heading", heading), "xpath=..")
	input := page.Add(browsertest.Join(parent, ".sq-toggle", "input"))
	input.Checked = checked
	label := page.Add(browsertest.Join(parent, ".sq-toggle"))
	label.OnClick = func() { input.Checked = !input.Checked }
	return input
}

func TestSettingsPage_ToggleNextTo(t *testing.T) {
	f, page := newFixture(t)
	input := headingToggle(page, "Enable logs", false)
	p := NewSettingsPage(f, nil, backoffice.PageAdvanced)

	require.NoError(t, p.SetToggle(p.ToggleNextTo("Enable logs"), true, "Enable logs"))
	assert.True(t, input.Checked)
}
