// Package pwdriver implements the browser capabilities on top of playwright-go.
package pwdriver

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/sequra/e2e-fixtures/internal/browser"
)

// WrapPage adapts a Playwright page to browser.Page.
func WrapPage(p playwright.Page) browser.Page {
	return &page{p: p, expect: playwright.NewPlaywrightAssertions()}
}

// Unwrap returns the Playwright page behind a page created by WrapPage, or
// nil for any other implementation.
func Unwrap(p browser.Page) playwright.Page {
	if pg, ok := p.(*page); ok {
		return pg.p
	}
	return nil
}

type page struct {
	p      playwright.Page
	expect playwright.PlaywrightAssertions
}

func (pg *page) wrap(l playwright.Locator) browser.Locator {
	return &locator{l: l, expect: pg.expect}
}

func (pg *page) Locator(selector string, opts ...browser.LocatorOptions) browser.Locator {
	var o []playwright.PageLocatorOptions
	if text := hasText(opts); text != "" {
		o = append(o, playwright.PageLocatorOptions{HasText: text})
	}
	return pg.wrap(pg.p.Locator(selector, o...))
}

func (pg *page) FrameLocator(selector string) browser.FrameLocator {
	return &frame{f: pg.p.FrameLocator(selector), expect: pg.expect}
}

func (pg *page) GetByRole(role, name string) browser.Locator {
	return pg.wrap(pg.p.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{Name: name}))
}

func (pg *page) GetByText(text string) browser.Locator {
	return pg.wrap(pg.p.GetByText(text))
}

func (pg *page) URL() string {
	return pg.p.URL()
}

func (pg *page) Goto(url string) error {
	_, err := pg.p.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrapErr(err)
}

func (pg *page) Reload() error {
	_, err := pg.p.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrapErr(err)
}

func (pg *page) Wait(d time.Duration) {
	pg.p.WaitForTimeout(float64(d.Milliseconds()))
}

func (pg *page) WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error {
	return wrapErr(pg.p.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: ms(timeout),
	}))
}

func (pg *page) Press(key string) error {
	return wrapErr(pg.p.Keyboard().Press(key))
}

type frame struct {
	f      playwright.FrameLocator
	expect playwright.PlaywrightAssertions
}

func (fr *frame) wrap(l playwright.Locator) browser.Locator {
	return &locator{l: l, expect: fr.expect}
}

func (fr *frame) Locator(selector string, opts ...browser.LocatorOptions) browser.Locator {
	var o []playwright.FrameLocatorLocatorOptions
	if text := hasText(opts); text != "" {
		o = append(o, playwright.FrameLocatorLocatorOptions{HasText: text})
	}
	return fr.wrap(fr.f.Locator(selector, o...))
}

func (fr *frame) FrameLocator(selector string) browser.FrameLocator {
	return &frame{f: fr.f.FrameLocator(selector), expect: fr.expect}
}

func (fr *frame) GetByRole(role, name string) browser.Locator {
	return fr.wrap(fr.f.GetByRole(playwright.AriaRole(role), playwright.FrameLocatorGetByRoleOptions{Name: name}))
}

func (fr *frame) GetByText(text string) browser.Locator {
	return fr.wrap(fr.f.GetByText(text))
}

type locator struct {
	l      playwright.Locator
	expect playwright.PlaywrightAssertions
}

func (lc *locator) wrap(l playwright.Locator) browser.Locator {
	return &locator{l: l, expect: lc.expect}
}

func (lc *locator) Locator(selector string, opts ...browser.LocatorOptions) browser.Locator {
	var o []playwright.LocatorLocatorOptions
	if text := hasText(opts); text != "" {
		o = append(o, playwright.LocatorLocatorOptions{HasText: text})
	}
	return lc.wrap(lc.l.Locator(selector, o...))
}

func (lc *locator) FrameLocator(selector string) browser.FrameLocator {
	return &frame{f: lc.l.FrameLocator(selector), expect: lc.expect}
}

func (lc *locator) GetByRole(role, name string) browser.Locator {
	return lc.wrap(lc.l.GetByRole(playwright.AriaRole(role), playwright.LocatorGetByRoleOptions{Name: name}))
}

func (lc *locator) GetByText(text string) browser.Locator {
	return lc.wrap(lc.l.GetByText(text))
}

func (lc *locator) First() browser.Locator { return lc.wrap(lc.l.First()) }

func (lc *locator) Last() browser.Locator { return lc.wrap(lc.l.Last()) }

func (lc *locator) Nth(index int) browser.Locator { return lc.wrap(lc.l.Nth(index)) }

func (lc *locator) Filter(opts browser.LocatorOptions) browser.Locator {
	if opts.HasText == "" {
		return lc
	}
	return lc.wrap(lc.l.Filter(playwright.LocatorFilterOptions{HasText: opts.HasText}))
}

func (lc *locator) Click(opts ...browser.ClickOptions) error {
	var o playwright.LocatorClickOptions
	if len(opts) > 0 {
		o.Timeout = ms(opts[0].Timeout)
	}
	return wrapErr(lc.l.Click(o))
}

func (lc *locator) Fill(value string) error {
	return wrapErr(lc.l.Fill(value))
}

func (lc *locator) PressSequentially(text string, delay time.Duration) error {
	var o playwright.LocatorPressSequentiallyOptions
	if delay > 0 {
		o.Delay = playwright.Float(float64(delay.Milliseconds()))
	}
	return wrapErr(lc.l.PressSequentially(text, o))
}

func (lc *locator) Focus() error {
	return wrapErr(lc.l.Focus())
}

func (lc *locator) Blur() error {
	return wrapErr(lc.l.Blur())
}

func (lc *locator) SelectOption(values browser.SelectOptionValues) error {
	var v playwright.SelectOptionValues
	switch {
	case values.Index != nil:
		v.Indexes = &[]int{*values.Index}
	case values.Label != "":
		v.Labels = &[]string{values.Label}
	default:
		v.Values = &[]string{values.Value}
	}
	_, err := lc.l.SelectOption(v)
	return wrapErr(err)
}

func (lc *locator) Count() (int, error) {
	n, err := lc.l.Count()
	return n, wrapErr(err)
}

func (lc *locator) InputValue() (string, error) {
	v, err := lc.l.InputValue()
	return v, wrapErr(err)
}

func (lc *locator) IsChecked() (bool, error) {
	v, err := lc.l.IsChecked()
	return v, wrapErr(err)
}

func (lc *locator) WaitFor(opts browser.WaitForOptions) error {
	state := opts.State
	if state == "" {
		state = browser.StateVisible
	}
	return wrapErr(lc.l.WaitFor(playwright.LocatorWaitForOptions{
		State:   waitState(state),
		Timeout: ms(opts.Timeout),
	}))
}

func (lc *locator) ExpectVisible(visible bool, timeout time.Duration) error {
	return expectErr(lc.expect.Locator(lc.l).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
		Visible: playwright.Bool(visible),
		Timeout: ms(timeout),
	}))
}

func (lc *locator) ExpectCount(count int, timeout time.Duration) error {
	return expectErr(lc.expect.Locator(lc.l).ToHaveCount(count, playwright.LocatorAssertionsToHaveCountOptions{
		Timeout: ms(timeout),
	}))
}

func (lc *locator) ExpectValue(value string, timeout time.Duration) error {
	return expectErr(lc.expect.Locator(lc.l).ToHaveValue(value, playwright.LocatorAssertionsToHaveValueOptions{
		Timeout: ms(timeout),
	}))
}

func (lc *locator) ExpectChecked(checked bool, timeout time.Duration) error {
	return expectErr(lc.expect.Locator(lc.l).ToBeChecked(playwright.LocatorAssertionsToBeCheckedOptions{
		Checked: playwright.Bool(checked),
		Timeout: ms(timeout),
	}))
}

func hasText(opts []browser.LocatorOptions) string {
	if len(opts) == 0 {
		return ""
	}
	return opts[0].HasText
}

// ms converts a duration to Playwright milliseconds; zero means "use the
// driver default".
func ms(d time.Duration) *float64 {
	if d <= 0 {
		return nil
	}
	return playwright.Float(float64(d.Milliseconds()))
}

func waitState(s browser.WaitState) *playwright.WaitForSelectorState {
	switch s {
	case browser.StateAttached:
		return playwright.WaitForSelectorStateAttached
	case browser.StateDetached:
		return playwright.WaitForSelectorStateDetached
	case browser.StateHidden:
		return playwright.WaitForSelectorStateHidden
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", browser.ErrTimeout, err)
	}
	return err
}

func expectErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", browser.ErrExpectation, err)
}
