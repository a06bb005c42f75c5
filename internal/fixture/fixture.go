// Package fixture holds what every page object and helper shares: the browser
// page, the store base URL and a logger.
package fixture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sequra/e2e-fixtures/internal/browser"
)

// Errors
var (
	// ErrNotImplemented is returned by operations a storefront integration
	// must provide and did not.
	ErrNotImplemented = errors.New("not implemented")
	// ErrAssertion wraps every failed expectation on the UI or on data.
	ErrAssertion = browser.ErrExpectation
	// ErrUnknownIdentifier is returned when a name is looked up in a static
	// table (webhook, shopper alias, merchant username) and is missing.
	ErrUnknownIdentifier = errors.New("unknown identifier")
)

// DefaultTimeout is used by expectations when the caller gives none.
const DefaultTimeout = 5 * time.Second

// Fixture is embedded by page objects.
type Fixture struct {
	Page    browser.Page
	BaseURL string
	Log     logrus.FieldLogger
	RunID   string
}

// New creates a fixture. A nil logger falls back to the standard logrus
// logger.
func New(page browser.Page, baseURL string, log logrus.FieldLogger) Fixture {
	if log == nil {
		log = logrus.StandardLogger()
	}
	runID := uuid.New().String()
	return Fixture{
		Page:    page,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Log:     log.WithField("run_id", runID),
		RunID:   runID,
	}
}

// Named returns a copy of the fixture whose logger carries the fixture name.
func (f Fixture) Named(name string) Fixture {
	f.Log = f.Log.WithField("fixture", name)
	return f
}

// URL joins path to the base URL.
func (f Fixture) URL(path string) string {
	if path == "" {
		return f.BaseURL
	}
	return f.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// Assertf builds an assertion error with a message describing the
// expectation. The cause stays in the chain, so a timeout can still be told
// apart from a mismatch.
func Assertf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, ErrAssertion) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrAssertion, err)
}

// NotImplemented returns an ErrNotImplemented naming the missing piece.
func NotImplemented(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotImplemented)
}

// Unknown returns an ErrUnknownIdentifier naming the kind and value.
func Unknown(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownIdentifier, kind, value)
}

// Exists waits up to timeout for loc to be attached and reports whether it
// showed up. Only a timeout counts as absence; other errors are returned.
func Exists(loc browser.Locator, timeout time.Duration) (bool, error) {
	return reaches(loc, browser.StateAttached, timeout)
}

// Visible is Exists for the visible state.
func Visible(loc browser.Locator, timeout time.Duration) (bool, error) {
	return reaches(loc, browser.StateVisible, timeout)
}

func reaches(loc browser.Locator, state browser.WaitState, timeout time.Duration) (bool, error) {
	err := loc.WaitFor(browser.WaitForOptions{State: state, Timeout: timeout})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, browser.ErrTimeout):
		return false, nil
	default:
		return false, err
	}
}

// Present reports whether loc currently matches at least one element,
// without waiting.
func Present(loc browser.Locator) (bool, error) {
	n, err := loc.Count()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
