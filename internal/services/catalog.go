package services

import (
	"fmt"
	"sort"
)

// Product is a catalog entry. Prices are in cents.
type Product struct {
	Slug     string
	Name     string
	Category string
	Price    int
}

// Catalog is the fixed product list of the dummy store.
type Catalog map[string]Product

// DefaultCatalog returns the products the e2e scenarios buy.
func DefaultCatalog() Catalog {
	return Catalog{
		"sunglasses": {Slug: "sunglasses", Name: "Sunglasses", Category: "accessories", Price: 9000},
		"hoodie":     {Slug: "hoodie", Name: "Hoodie", Category: "clothing", Price: 4500},
		"beanie":     {Slug: "beanie", Name: "Beanie", Category: "accessories", Price: 1800},
	}
}

// InCategory lists the products of a category sorted by slug. An empty
// category lists the whole catalog.
func (c Catalog) InCategory(category string) []Product {
	var out []Product
	for _, p := range c {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// FormatPrice renders cents the way Spanish shops do, e.g. "90,00 €".
func FormatPrice(cents int) string {
	return fmt.Sprintf("%d,%02d €", cents/100, cents%100)
}
