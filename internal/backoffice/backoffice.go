// Package backoffice declares what a storefront integration must provide to
// reach the seQura settings inside its administration panel.
package backoffice

import (
	"github.com/sequra/e2e-fixtures/internal/fixture"
)

// Settings page hashes
const (
	PageGeneral        = "settings-general"
	PageWidget         = "settings-widget"
	PageConnection     = "settings-connection"
	PageOnboarding     = "onboarding-connect"
	PageAdvanced       = "advanced-debug"
	PagePaymentMethods = "payment-methods"
)

// LoginOptions controls Login.
type LoginOptions struct {
	Username string
	Password string
	// WaitUntilLoaded waits for the dashboard before returning.
	WaitUntilLoaded bool
}

// BackOffice is implemented per platform.
type BackOffice interface {
	Login(opts LoginOptions) error
	Logout() error
	// GotoSeQuraSettings opens the seQura settings at the given page hash.
	GotoSeQuraSettings(page string) error
}

// Unimplemented returns fixture.ErrNotImplemented from every method. Embed it
// to provide only part of BackOffice.
type Unimplemented struct{}

var _ BackOffice = Unimplemented{}

func (Unimplemented) Login(LoginOptions) error {
	return fixture.NotImplemented("backoffice login")
}

func (Unimplemented) Logout() error {
	return fixture.NotImplemented("backoffice logout")
}

func (Unimplemented) GotoSeQuraSettings(string) error {
	return fixture.NotImplemented("backoffice seQura settings navigation")
}
