// Package fixtures builds the per-test browser state shared by the
// storefront e2e tests.
package fixtures

import (
	"fmt"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/david-mangena/e-commerce-site/internal/config"
	"github.com/david-mangena/e-commerce-site/internal/pages"
)

// Browser is the process-wide Playwright driver and browser
type Browser struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
}

// Launch starts Playwright and a Chromium browser configured for the suite
func Launch(cfg *config.SuiteConfig) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	pw.Selectors.SetTestIdAttribute(cfg.TestIDAttribute)

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Browser{Playwright: pw, Browser: browser}, nil
}

// Close shuts the browser and the driver down
func (b *Browser) Close() error {
	var firstErr error
	if b.Browser != nil {
		if err := b.Browser.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close browser: %w", err)
		}
	}
	if b.Playwright != nil {
		if err := b.Playwright.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	}
	return firstErr
}

// Fixtures is the browser state of one test. Page objects are built on
// first use and shared within the test only.
type Fixtures struct {
	BrowserContext playwright.BrowserContext
	Page           playwright.Page
	Binding        *pages.Binding

	mu       sync.Mutex
	login    *pages.LoginPage
	products *pages.ProductsPage
	checkout *pages.CheckoutPage
}

// New opens an isolated browser context and page for t. Both are closed
// and the binding released when t ends.
func New(t testing.TB, browser *Browser, cfg *config.SuiteConfig) *Fixtures {
	t.Helper()

	ctx, err := browser.Browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(cfg.UIBaseURL),
	})
	require.NoError(t, err, "failed to create browser context")

	ctx.SetDefaultTimeout(config.Milliseconds(cfg.ActionTimeout))
	ctx.SetDefaultNavigationTimeout(config.Milliseconds(cfg.NavigationTimeout))

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		require.NoError(t, err, "failed to create page")
	}

	f := &Fixtures{
		BrowserContext: ctx,
		Page:           page,
		Binding:        pages.Bind(page, playwright.NewPlaywrightAssertions(config.Milliseconds(cfg.ExpectTimeout))),
	}

	t.Cleanup(func() {
		f.Binding.Release()
		if err := ctx.Close(); err != nil {
			t.Logf("Warning: failed to close browser context: %v", err)
		}
	})

	return f
}

// With creates the fixtures for t and passes them to fn
func With(t *testing.T, browser *Browser, cfg *config.SuiteConfig, fn func(t *testing.T, f *Fixtures)) {
	t.Helper()
	fn(t, New(t, browser, cfg))
}

// LoginPage returns the test's login page object
func (f *Fixtures) LoginPage() *pages.LoginPage {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.login == nil {
		f.login = pages.NewLoginPage(f.Binding)
	}
	return f.login
}

// ProductsPage returns the test's products page object
func (f *Fixtures) ProductsPage() *pages.ProductsPage {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.products == nil {
		f.products = pages.NewProductsPage(f.Binding)
	}
	return f.products
}

// CheckoutPage returns the test's checkout page object
func (f *Fixtures) CheckoutPage() *pages.CheckoutPage {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.checkout == nil {
		f.checkout = pages.NewCheckoutPage(f.Binding)
	}
	return f.checkout
}
