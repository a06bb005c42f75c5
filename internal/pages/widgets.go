package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/poll"
)

const (
	widgetTimeout = 30 * time.Second
	// DefaultMiniWidgetSeconds is how long mini widget checks look.
	DefaultMiniWidgetSeconds = 5
)

// Widgets is the set of promotional widget locators and checks shared by
// the storefront pages.
type Widgets struct {
	page browser.Page
}

// NewWidgets creates the widget checks over page.
func NewWidgets(page browser.Page) Widgets {
	return Widgets{page: page}
}

// WidgetSelector builds the CSS selector of a loaded widget placed after
// opts.LocationSel, matching the data-* attributes the widget script copies
// from the style dictionary. Empty style values only require the attribute.
func WidgetSelector(opts models.FrontEndWidgetOptions) (string, error) {
	styles, err := models.ParseWidgetConfig(opts.WidgetConfig)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s ~ .sequra-promotion-widget.sequra-promotion-widget--%s", opts.LocationSel, opts.Product)
	for _, s := range styles {
		if s.Value == "" {
			fmt.Fprintf(&b, "[data-%s]", s.Key)
			continue
		}
		fmt.Fprintf(&b, `[data-%s="%s"]`, s.Key, s.Value)
	}
	fmt.Fprintf(&b, `[data-amount="%d"][data-loaded="1"]`, opts.Amount)
	if opts.Campaign != "" {
		fmt.Fprintf(&b, `[data-campaign="%s"]`, opts.Campaign)
	}
	if opts.RegistrationAmount != nil {
		fmt.Fprintf(&b, `[data-registration-amount="%d"]`, *opts.RegistrationAmount)
	}
	return b.String(), nil
}

// AnyWidget locates every promotional widget.
func (w Widgets) AnyWidget() browser.Locator {
	return w.page.Locator(".sequra-promotion-widget")
}

// Widget locates the widget described by opts.
func (w Widgets) Widget(opts models.FrontEndWidgetOptions) (browser.Locator, error) {
	sel, err := WidgetSelector(opts)
	if err != nil {
		return nil, err
	}
	return w.page.Locator(sel), nil
}

// WidgetIframe locates the iframe rendered inside the widget.
func (w Widgets) WidgetIframe(opts models.FrontEndWidgetOptions) (browser.Locator, error) {
	widget, err := w.Widget(opts)
	if err != nil {
		return nil, err
	}
	return widget.Locator("iframe.Sequra__PromotionalWidget"), nil
}

// MiniWidget locates the mini widgets of a seQura product (pp3, sp1...),
// optionally narrowed to those containing text.
func (w Widgets) MiniWidget(product, text string) browser.Locator {
	sel := fmt.Sprintf(`.sequra-educational-popup.sequra-promotion-miniwidget[data-product="%s"]`, product)
	return w.page.Locator(sel, browser.LocatorOptions{HasText: text})
}

func (w Widgets) ExpectWidgetsNotToBeVisible() error {
	err := w.AnyWidget().ExpectCount(0, fixture.DefaultTimeout)
	return fixture.Assertf(err, "no widget should be shown")
}

// ExpectWidgetToBeVisible waits for the widget iframe. A zero timeout waits
// 30s.
func (w Widgets) ExpectWidgetToBeVisible(opts models.FrontEndWidgetOptions, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = widgetTimeout
	}
	iframe, err := w.WidgetIframe(opts)
	if err != nil {
		return err
	}
	err = iframe.WaitFor(browser.WaitForOptions{State: browser.StateVisible, Timeout: timeout})
	return fixture.Assertf(err, "%s widget should be visible", opts.Product)
}

func (w Widgets) ExpectWidgetNotToBeVisible(opts models.FrontEndWidgetOptions) error {
	widget, err := w.Widget(opts)
	if err != nil {
		return err
	}
	return fixture.Assertf(widget.ExpectCount(0, fixture.DefaultTimeout), "%s widget should not be shown", opts.Product)
}

// ExpectAnyVisibleMiniWidget looks for a mini widget once per second, up to
// seconds times.
func (w Widgets) ExpectAnyVisibleMiniWidget(product, text string, seconds int) error {
	if seconds <= 0 {
		seconds = DefaultMiniWidgetSeconds
	}
	return poll.Attempts(poll.Options{Attempts: seconds, Sleeper: w.page}, func(int) error {
		ok, err := fixture.Present(w.MiniWidget(product, text))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no visible mini widget for %s", fixture.ErrAssertion, product)
		}
		return nil
	})
}

// ExpectMiniWidgetsNotToBeVisible checks once per second, seconds times,
// that no mini widget shows up.
func (w Widgets) ExpectMiniWidgetsNotToBeVisible(product, text string, seconds int) error {
	if seconds <= 0 {
		seconds = DefaultMiniWidgetSeconds
	}
	for i := 0; i < seconds; i++ {
		w.page.Wait(poll.DefaultInterval)
		ok, err := fixture.Present(w.MiniWidget(product, text))
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: mini widget still visible for %s", fixture.ErrAssertion, product)
		}
	}
	return nil
}
