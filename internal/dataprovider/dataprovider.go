// Package dataprovider serves the static test data used by the storefront
// suites: sample shoppers, merchant references, payment method titles,
// widget settings and webhook call lists.
package dataprovider

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// Merchant usernames with known fixture data
const (
	DefaultUsername = "dummy_automated_tests"
	ServiceUsername = "dummy_services_automated_tests"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type tables struct {
	Shoppers          map[string]models.Shopper                 `yaml:"shoppers"`
	MerchantRefs      map[string][]models.CountryMerchantRef    `yaml:"merchantRefs"`
	PaymentMethods    map[string][]models.CountryPaymentMethods `yaml:"paymentMethods"`
	DeploymentTargets []string                                  `yaml:"deploymentTargets"`
	WidgetOptions     models.WidgetOptions                      `yaml:"widgetOptions"`
	WebhookCalls      map[string][]models.WebhookCall           `yaml:"webhookCalls"`
}

// Provider answers lookups against the fixture tables. Returned values are
// copies; callers may modify them.
type Provider struct {
	t tables
}

// Load parses YAML fixture tables.
func Load(data []byte) (*Provider, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse fixture data: %w", err)
	}
	return &Provider{t: t}, nil
}

// New returns a provider over the embedded tables.
func New() *Provider {
	p, err := Load(fixturesYAML)
	if err != nil {
		panic(err)
	}
	return p
}

// Shopper returns the sample shopper for a locale alias
// (spain, france, italy, portugal, approve, cancel).
func (p *Provider) Shopper(alias string) (models.Shopper, error) {
	s, ok := p.t.Shoppers[alias]
	if !ok {
		return models.Shopper{}, fixture.Unknown("shopper", alias)
	}
	s.OTP = append([]string(nil), s.OTP...)
	return s, nil
}

// ShopperAliases lists the known shopper aliases, sorted.
func (p *Provider) ShopperAliases() []string {
	aliases := make([]string, 0, len(p.t.Shoppers))
	for k := range p.t.Shoppers {
		aliases = append(aliases, k)
	}
	sort.Strings(aliases)
	return aliases
}

// CountriesMerchantRefs returns the countries configured for a merchant
// username, in back office order.
func (p *Provider) CountriesMerchantRefs(username string) ([]models.CountryMerchantRef, error) {
	refs, ok := p.t.MerchantRefs[username]
	if !ok {
		return nil, fixture.Unknown("merchant username", username)
	}
	return append([]models.CountryMerchantRef(nil), refs...), nil
}

// MerchantRef returns the merchant reference of a country for a username.
func (p *Provider) MerchantRef(username, countryCode string) (string, error) {
	refs, err := p.CountriesMerchantRefs(username)
	if err != nil {
		return "", err
	}
	for _, r := range refs {
		if r.Code == countryCode {
			return r.MerchantRef, nil
		}
	}
	return "", fixture.Unknown("country for "+username, countryCode)
}

// CountriesPaymentMethods returns the payment method titles per country for
// a merchant reference. The first country is the one selected by default.
func (p *Provider) CountriesPaymentMethods(merchantRef string) ([]models.CountryPaymentMethods, error) {
	methods, ok := p.t.PaymentMethods[merchantRef]
	if !ok {
		return nil, fixture.Unknown("merchant reference", merchantRef)
	}
	out := make([]models.CountryPaymentMethods, len(methods))
	for i, m := range methods {
		out[i] = models.CountryPaymentMethods{
			Name:           m.Name,
			PaymentMethods: append([]string(nil), m.PaymentMethods...),
		}
	}
	return out, nil
}

// DeploymentTargets pairs every known deployment target with the given
// credentials.
func (p *Provider) DeploymentTargets(username, password string) []models.DeploymentTargetCredentials {
	out := make([]models.DeploymentTargetCredentials, 0, len(p.t.DeploymentTargets))
	for _, name := range p.t.DeploymentTargets {
		out = append(out, models.DeploymentTargetCredentials{Name: name, Username: username, Password: password})
	}
	return out
}

// WidgetOptions returns the default widget settings form values.
func (p *Provider) WidgetOptions() models.WidgetOptions {
	return p.t.WidgetOptions.Clone()
}

// ProductWidget describes the widget expected on the product page for a
// seQura product and amount, with the default settings.
func (p *Provider) ProductWidget(product string, amount int, registrationAmount *int) models.FrontEndWidgetOptions {
	w := p.t.WidgetOptions
	return models.FrontEndWidgetOptions{
		LocationSel:        w.Product.LocationSel,
		WidgetConfig:       w.WidgetConfig,
		Product:            product,
		Amount:             amount,
		RegistrationAmount: registrationAmount,
	}
}

// WebhookCalls returns a named list of webhook calls, e.g. "dummy" to load
// the default dummy configuration.
func (p *Provider) WebhookCalls(name string) ([]models.WebhookCall, error) {
	calls, ok := p.t.WebhookCalls[name]
	if !ok {
		return nil, fixture.Unknown("webhook call list", name)
	}
	out := make([]models.WebhookCall, len(calls))
	for i, c := range calls {
		out[i] = models.WebhookCall{Webhook: c.Webhook, Args: append([]models.WebhookArg(nil), c.Args...)}
	}
	return out, nil
}
