package models

import "fmt"

// Product is a storefront catalog item
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
}

// AddToCartTestID is the test id of the product's add-to-cart control
func (p Product) AddToCartTestID() string {
	return "add-to-cart-" + p.ID
}

// RemoveTestID is the test id of the product's remove control
func (p Product) RemoveTestID() string {
	return "remove-" + p.ID
}

// FormatCents formats an amount in cents as dollars, e.g. "$29.99"
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
