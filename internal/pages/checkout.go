package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Texts shown once an order is placed
const (
	CompleteTitle  = "Checkout: Complete!"
	CompleteHeader = "Thank you for your order!"
)

// CheckoutPage covers the cart checkout button and the checkout steps
type CheckoutPage struct {
	binding *Binding

	CheckoutButton  playwright.Locator
	FirstNameInput  playwright.Locator
	LastNameInput   playwright.Locator
	PostalCodeInput playwright.Locator
	ContinueButton  playwright.Locator
	ErrorMessage    playwright.Locator
	TotalLabel      playwright.Locator
	FinishButton    playwright.Locator
	Title           playwright.Locator
	CompleteHeader  playwright.Locator
	PonyExpress     playwright.Locator
}

// NewCheckoutPage resolves the checkout locators
func NewCheckoutPage(b *Binding) *CheckoutPage {
	return &CheckoutPage{
		binding:         b,
		CheckoutButton:  b.ByTestID("checkout"),
		FirstNameInput:  b.ByTestID("firstName"),
		LastNameInput:   b.ByTestID("lastName"),
		PostalCodeInput: b.ByTestID("postalCode"),
		ContinueButton:  b.ByTestID("continue"),
		ErrorMessage:    b.ByTestID("error"),
		TotalLabel:      b.ByTestID("total-label"),
		FinishButton:    b.ByTestID("finish"),
		Title:           b.ByTestID("title"),
		CompleteHeader:  b.ByTestID("complete-header"),
		PonyExpress:     b.ByTestID("pony-express"),
	}
}

// ProceedToCheckout starts checkout from the cart and submits the
// customer information
func (p *CheckoutPage) ProceedToCheckout(firstName, lastName, postalCode string) error {
	if err := p.binding.click(p.CheckoutButton); err != nil {
		return fmt.Errorf("starting checkout: %w", err)
	}

	fields := []struct {
		name    string
		locator playwright.Locator
		value   string
	}{
		{"first name", p.FirstNameInput, firstName},
		{"last name", p.LastNameInput, lastName},
		{"postal code", p.PostalCodeInput, postalCode},
	}
	for _, field := range fields {
		if err := p.binding.fill(field.locator, field.value); err != nil {
			return fmt.Errorf("filling %s: %w", field.name, err)
		}
	}

	if err := p.binding.click(p.ContinueButton); err != nil {
		return fmt.Errorf("continuing checkout: %w", err)
	}
	return nil
}

// CompletePurchase finishes the order from the overview and asserts the
// confirmation is shown
func (p *CheckoutPage) CompletePurchase() error {
	if err := p.binding.visible(p.TotalLabel); err != nil {
		return fmt.Errorf("checkout overview: %w", err)
	}
	if err := p.binding.click(p.FinishButton); err != nil {
		return fmt.Errorf("finishing checkout: %w", err)
	}

	confirmation := []struct {
		name    string
		locator playwright.Locator
	}{
		{"title", p.Title},
		{"complete header", p.CompleteHeader},
		{"pony express", p.PonyExpress},
	}
	for _, indicator := range confirmation {
		if err := p.binding.visible(indicator.locator); err != nil {
			return fmt.Errorf("checkout confirmation %s: %w", indicator.name, err)
		}
	}
	return nil
}

// ExpectTotal asserts the total label contains text
func (p *CheckoutPage) ExpectTotal(text string) error {
	return p.binding.containsText(p.TotalLabel, text)
}

// ExpectError asserts the checkout error message is visible
func (p *CheckoutPage) ExpectError() error {
	return p.binding.visible(p.ErrorMessage)
}

// ExpectComplete asserts the confirmation texts
func (p *CheckoutPage) ExpectComplete() error {
	if err := p.binding.containsText(p.Title, CompleteTitle); err != nil {
		return err
	}
	return p.binding.containsText(p.CompleteHeader, CompleteHeader)
}
