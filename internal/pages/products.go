package pages

import (
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"
)

// CartProducts are the catalog items AddProductsToCart adds, in click order
var CartProducts = []string{
	"sauce-labs-backpack",
	"sauce-labs-bike-light",
	"sauce-labs-bolt-t-shirt",
	"sauce-labs-fleece-jacket",
}

// ProductsPage is the inventory screen and the shared cart header
type ProductsPage struct {
	binding *Binding

	Title         playwright.Locator
	CartLink      playwright.Locator
	CartBadge     playwright.Locator
	CartItems     playwright.Locator
	AddToCartKeys []playwright.Locator
}

// NewProductsPage resolves the inventory screen locators
func NewProductsPage(b *Binding) *ProductsPage {
	p := &ProductsPage{
		binding:   b,
		Title:     b.ByTestID("title"),
		CartLink:  b.ByTestID("shopping-cart-link"),
		CartBadge: b.ByTestID("shopping-cart-badge"),
		CartItems: b.ByTestID("item-quantity"),
	}
	for _, id := range CartProducts {
		p.AddToCartKeys = append(p.AddToCartKeys, b.ByTestID("add-to-cart-"+id))
	}
	return p
}

// AddProductsToCart waits for the listing, then adds each of CartProducts
func (p *ProductsPage) AddProductsToCart() error {
	if err := p.binding.check(); err != nil {
		return err
	}
	if err := p.Title.WaitFor(); err != nil {
		return fmt.Errorf("waiting for product listing: %w", err)
	}

	for i, button := range p.AddToCartKeys {
		if err := p.binding.click(button); err != nil {
			return fmt.Errorf("adding %s to cart: %w", CartProducts[i], err)
		}
	}
	return nil
}

// NavigateToCart follows the cart link
func (p *ProductsPage) NavigateToCart() error {
	if err := p.binding.click(p.CartLink); err != nil {
		return fmt.Errorf("opening cart: %w", err)
	}
	return nil
}

// VerifyCartItemsCount asserts the cart lists n items
func (p *ProductsPage) VerifyCartItemsCount(n int) error {
	return p.binding.count(p.CartItems, n)
}

// VerifyCartBadge asserts the cart badge shows n
func (p *ProductsPage) VerifyCartBadge(n int) error {
	return p.binding.containsText(p.CartBadge, strconv.Itoa(n))
}

// ExpectTitle asserts the secondary header contains text
func (p *ProductsPage) ExpectTitle(text string) error {
	return p.binding.containsText(p.Title, text)
}

// ExpectNotDisplayed asserts the product listing is not shown
func (p *ProductsPage) ExpectNotDisplayed() error {
	return p.binding.hidden(p.Title)
}
