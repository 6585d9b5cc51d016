// Package pages holds the Swag Labs page objects.
package pages

import (
	"errors"
	"sync/atomic"

	"github.com/playwright-community/playwright-go"
)

// ErrBindingReleased is returned by page object actions after the test
// that owned the page has ended
var ErrBindingReleased = errors.New("page binding released")

// Binding ties page objects to one browser page for the lifetime of one test
type Binding struct {
	page     playwright.Page
	expect   playwright.PlaywrightAssertions
	released atomic.Bool
}

// Bind creates a binding to page using expect for assertions
func Bind(page playwright.Page, expect playwright.PlaywrightAssertions) *Binding {
	return &Binding{page: page, expect: expect}
}

// Page returns the bound page
func (b *Binding) Page() (playwright.Page, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return b.page, nil
}

// ByTestID resolves a locator on the bound page by its test id attribute
func (b *Binding) ByTestID(id string) playwright.Locator {
	return b.page.GetByTestId(id)
}

// Release invalidates the binding. It is safe to call more than once.
func (b *Binding) Release() {
	b.released.Store(true)
}

// Released reports whether Release was called
func (b *Binding) Released() bool {
	return b.released.Load()
}

func (b *Binding) check() error {
	if b.released.Load() {
		return ErrBindingReleased
	}
	return nil
}

func (b *Binding) visible(locator playwright.Locator) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.expect.Locator(locator).ToBeVisible()
}

func (b *Binding) hidden(locator playwright.Locator) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.expect.Locator(locator).ToBeHidden()
}

func (b *Binding) containsText(locator playwright.Locator, text string) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.expect.Locator(locator).ToContainText(text)
}

func (b *Binding) count(locator playwright.Locator, n int) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.expect.Locator(locator).ToHaveCount(n)
}

func (b *Binding) click(locator playwright.Locator) error {
	if err := b.check(); err != nil {
		return err
	}
	return locator.Click()
}

func (b *Binding) fill(locator playwright.Locator, value string) error {
	if err := b.check(); err != nil {
		return err
	}
	return locator.Fill(value)
}
