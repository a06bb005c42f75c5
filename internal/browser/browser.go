// Package browser declares the capabilities page objects need from a browser
// automation driver. Implementations live in subpackages: pwdriver drives a
// real browser through Playwright, browsertest scripts an in-memory page.
package browser

import (
	"errors"
	"regexp"
	"time"
)

var (
	// ErrTimeout is wrapped by every error caused by a wait running out of time.
	ErrTimeout = errors.New("timeout exceeded")
	// ErrExpectation is wrapped by every failed Expect* call.
	ErrExpectation = errors.New("expectation failed")
)

// WaitState is the element state a locator can wait for.
type WaitState string

// Wait states
const (
	StateAttached WaitState = "attached"
	StateDetached WaitState = "detached"
	StateVisible  WaitState = "visible"
	StateHidden   WaitState = "hidden"
)

// LocatorOptions narrows a locator to elements containing the given text.
type LocatorOptions struct {
	HasText string
}

// ClickOptions controls a click. A zero Timeout uses the driver default.
type ClickOptions struct {
	Timeout time.Duration
}

// WaitForOptions controls Locator.WaitFor. A zero State means visible and a
// zero Timeout uses the driver default.
type WaitForOptions struct {
	State   WaitState
	Timeout time.Duration
}

// SelectOptionValues picks options of a <select> by exactly one of the fields.
type SelectOptionValues struct {
	Value string
	Label string
	Index *int
}

// Index returns a pointer to i, for SelectOptionValues.Index.
func Index(i int) *int {
	return &i
}

// Scope is anything elements can be located from: a page, a frame or an
// element.
type Scope interface {
	Locator(selector string, opts ...LocatorOptions) Locator
	FrameLocator(selector string) FrameLocator
	GetByRole(role, name string) Locator
	GetByText(text string) Locator
}

// FrameLocator locates elements inside an iframe.
type FrameLocator interface {
	Scope
}

// Locator is a lazy reference to zero or more elements.
type Locator interface {
	Scope

	First() Locator
	Last() Locator
	Nth(index int) Locator
	Filter(opts LocatorOptions) Locator

	Click(opts ...ClickOptions) error
	Fill(value string) error
	PressSequentially(text string, delay time.Duration) error
	Focus() error
	Blur() error
	SelectOption(values SelectOptionValues) error

	Count() (int, error)
	InputValue() (string, error)
	IsChecked() (bool, error)
	WaitFor(opts WaitForOptions) error

	// Expectations retry until they hold or the timeout expires. A zero
	// timeout uses the driver default.
	ExpectVisible(visible bool, timeout time.Duration) error
	ExpectCount(count int, timeout time.Duration) error
	ExpectValue(value string, timeout time.Duration) error
	ExpectChecked(checked bool, timeout time.Duration) error
}

// Page is a browser tab.
type Page interface {
	Scope

	URL() string
	// Goto navigates and waits for DOMContentLoaded.
	Goto(url string) error
	Reload() error
	Wait(d time.Duration)
	WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error
	// Press sends a key press to the focused element.
	Press(key string) error
}
