package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// StorefrontTitle is the document title of every storefront page
const StorefrontTitle = "Swag Labs"

// LoginPage is the storefront login screen
type LoginPage struct {
	binding *Binding

	UsernameInput playwright.Locator
	PasswordInput playwright.Locator
	LoginButton   playwright.Locator
	ErrorMessage  playwright.Locator
}

// NewLoginPage resolves the login screen locators
func NewLoginPage(b *Binding) *LoginPage {
	return &LoginPage{
		binding:       b,
		UsernameInput: b.ByTestID("username"),
		PasswordInput: b.ByTestID("password"),
		LoginButton:   b.ByTestID("login-button"),
		ErrorMessage:  b.ByTestID("error"),
	}
}

// Open navigates to the storefront root and waits for the login screen
func (p *LoginPage) Open() error {
	page, err := p.binding.Page()
	if err != nil {
		return err
	}

	if _, err := page.Goto("/"); err != nil {
		return fmt.Errorf("opening login page: %w", err)
	}

	if err := p.binding.expect.Page(page).ToHaveTitle(StorefrontTitle); err != nil {
		return fmt.Errorf("opening login page: %w", err)
	}
	return nil
}

// Login fills the credentials and submits the form. The outcome is observed
// through the next screen or the error message.
func (p *LoginPage) Login(username, password string) error {
	if err := p.binding.fill(p.UsernameInput, username); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := p.binding.fill(p.PasswordInput, password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := p.binding.click(p.LoginButton); err != nil {
		return fmt.Errorf("submitting login: %w", err)
	}
	return nil
}

// ExpectError asserts the error message is visible
func (p *LoginPage) ExpectError() error {
	return p.binding.visible(p.ErrorMessage)
}

// ExpectErrorText asserts the error message contains text
func (p *LoginPage) ExpectErrorText(text string) error {
	return p.binding.containsText(p.ErrorMessage, text)
}
