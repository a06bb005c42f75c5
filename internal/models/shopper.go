// Package models holds the value objects passed to page objects and helpers.
// They are built as literals or loaded from fixture tables and carry no
// behaviour beyond presence checks.
package models

import "fmt"

// CreditCard is the card used in the seQura checkout form.
type CreditCard struct {
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
	Exp    string `yaml:"exp"`
	CVC    string `yaml:"cvc"`
}

// Shopper is a sample customer for a given locale.
type Shopper struct {
	Email          string     `yaml:"email"`
	FirstName      string     `yaml:"firstName"`
	LastName       string     `yaml:"lastName"`
	Address1       string     `yaml:"address1"`
	Country        string     `yaml:"country"`
	State          string     `yaml:"state"`
	City           string     `yaml:"city"`
	Postcode       string     `yaml:"postcode"`
	Phone          string     `yaml:"phone"`
	DateOfBirth    string     `yaml:"dateOfBirth"`
	NIN            string     `yaml:"nin"`
	OTP            []string   `yaml:"otp"`
	CreditCard     CreditCard `yaml:"creditCard"`
	ShippingMethod string     `yaml:"shippingMethod,omitempty"`
}

// MissingFields returns the names of the fields consumed by the checkout
// form fillers that are empty. State and ShippingMethod are optional.
func (s Shopper) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	check("email", s.Email)
	check("firstName", s.FirstName)
	check("lastName", s.LastName)
	check("address1", s.Address1)
	check("country", s.Country)
	check("city", s.City)
	check("postcode", s.Postcode)
	check("phone", s.Phone)
	check("dateOfBirth", s.DateOfBirth)
	check("nin", s.NIN)
	check("creditCard.name", s.CreditCard.Name)
	check("creditCard.number", s.CreditCard.Number)
	check("creditCard.exp", s.CreditCard.Exp)
	check("creditCard.cvc", s.CreditCard.CVC)
	if len(s.OTP) == 0 {
		missing = append(missing, "otp")
	}
	for i, d := range s.OTP {
		check(fmt.Sprintf("otp[%d]", i), d)
	}
	return missing
}

// CountryMerchantRef maps a country to the merchant reference configured for
// it in the back office.
type CountryMerchantRef struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	MerchantRef string `yaml:"merchantRef"`
}

// CountryPaymentMethods lists the payment method titles shown for a country.
type CountryPaymentMethods struct {
	Name           string   `yaml:"name"`
	PaymentMethods []string `yaml:"paymentMethods"`
}

// DeploymentTargetCredentials pairs a deployment target with its login.
type DeploymentTargetCredentials struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Environment of a seQura connection.
const (
	EnvSandbox = "sandbox"
	EnvLive    = "live"
)

// LogEntry is one row of the advanced settings log viewer.
type LogEntry struct {
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}
