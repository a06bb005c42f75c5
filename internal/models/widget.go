package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// WidgetOptionsProductCustomLocation is an extra widget placement on the
// product page.
type WidgetOptionsProductCustomLocation struct {
	PaymentMethod string `yaml:"paymentMethod"`
	Display       bool   `yaml:"display"`
	LocationSel   string `yaml:"locationSel"`
	WidgetConfig  string `yaml:"widgetConfig"`
}

// WidgetOptionsProduct configures the widget on the product page. A nil
// Display leaves the toggle as it is and a nil CustomLocations leaves the
// existing locations in place.
type WidgetOptionsProduct struct {
	Display            *bool                                `yaml:"display"`
	PriceSel           string                               `yaml:"priceSel"`
	AltPriceSel        string                               `yaml:"altPriceSel"`
	AltPriceTriggerSel string                               `yaml:"altPriceTriggerSel"`
	LocationSel        string                               `yaml:"locationSel"`
	CustomLocations    []WidgetOptionsProductCustomLocation `yaml:"customLocations"`
}

// WidgetOptionsCart configures the cart mini widget.
type WidgetOptionsCart struct {
	Display       *bool  `yaml:"display"`
	PriceSel      string `yaml:"priceSel"`
	LocationSel   string `yaml:"locationSel"`
	PaymentMethod string `yaml:"paymentMethod"`
}

// WidgetOptionsProductListing configures the listing mini widget.
type WidgetOptionsProductListing struct {
	Display       *bool  `yaml:"display"`
	UseSelectors  bool   `yaml:"useSelectors"`
	PriceSel      string `yaml:"priceSel"`
	LocationSel   string `yaml:"locationSel"`
	PaymentMethod string `yaml:"paymentMethod"`
}

// WidgetOptions is the whole widget settings form. Empty strings and nil
// flags mean the field is left untouched.
type WidgetOptions struct {
	// WidgetConfig is the JSON style dictionary, serialized.
	WidgetConfig   string                      `yaml:"widgetConfig"`
	Product        WidgetOptionsProduct        `yaml:"product"`
	Cart           WidgetOptionsCart           `yaml:"cart"`
	ProductListing WidgetOptionsProductListing `yaml:"productListing"`
}

// Clone returns a copy of o that shares no pointers or slices with it.
func (o WidgetOptions) Clone() WidgetOptions {
	o.Product.Display = cloneBool(o.Product.Display)
	o.Cart.Display = cloneBool(o.Cart.Display)
	o.ProductListing.Display = cloneBool(o.ProductListing.Display)
	if o.Product.CustomLocations != nil {
		o.Product.CustomLocations = append(o.Product.CustomLocations[:0:0], o.Product.CustomLocations...)
	}
	return o
}

// Bool returns a pointer to v, for the optional flags of WidgetOptions.
func Bool(v bool) *bool {
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return Bool(*b)
}

// FrontEndWidgetOptions identifies a rendered widget on a storefront page.
type FrontEndWidgetOptions struct {
	LocationSel  string
	WidgetConfig string
	// Product is the seQura product code (pp3, sp1, i1...).
	Product string
	Amount  int
	// RegistrationAmount is matched only when not nil.
	RegistrationAmount *int
	Campaign           string
}

// WidgetStyle is one key of the widget style dictionary.
type WidgetStyle struct {
	Key   string
	Value string
}

// ParseWidgetConfig decodes the flat JSON style dictionary. Keys are returned
// sorted so that selectors built from them are stable.
func ParseWidgetConfig(config string) ([]WidgetStyle, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(config), &raw); err != nil {
		return nil, fmt.Errorf("invalid widget config: %w", err)
	}
	styles := make([]WidgetStyle, 0, len(raw))
	for k, v := range raw {
		var value string
		switch tv := v.(type) {
		case string:
			value = tv
		case nil:
		default:
			value = fmt.Sprint(tv)
		}
		styles = append(styles, WidgetStyle{Key: k, Value: value})
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i].Key < styles[j].Key })
	return styles, nil
}
