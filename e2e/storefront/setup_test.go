package storefront

import (
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/david-mangena/e-commerce-site/internal/config"
	"github.com/david-mangena/e-commerce-site/internal/fixtures"
	"github.com/david-mangena/e-commerce-site/internal/handlers"
	"github.com/david-mangena/e-commerce-site/internal/services"
)

var (
	cfg        *config.SuiteConfig
	browser    *fixtures.Browser
	browserErr error
)

// TestMain starts the sandbox storefront when needed and launches the
// browser shared by all tests
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	if _, err := config.LoadEnvFiles("../../.env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		return 1
	}

	var err error
	cfg, err = config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid suite configuration: %v\n", err)
		return 1
	}

	if cfg.UseSandbox {
		handler, err := handlers.NewStorefrontHandler(services.NewCartService(time.Second, nil), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create sandbox storefront: %v\n", err)
			return 1
		}
		server := httptest.NewServer(handler)
		defer server.Close()
		cfg.UIBaseURL = server.URL
	}

	// Browsers are installed with: go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
	browser, browserErr = fixtures.Launch(cfg)
	if browserErr == nil {
		defer browser.Close()
	}

	return m.Run()
}

// newFixtures returns the fixtures of one test, skipping it when no browser
// could be launched
func newFixtures(t *testing.T) *fixtures.Fixtures {
	t.Helper()
	if browserErr != nil {
		t.Skipf("browser unavailable: %v", browserErr)
	}
	return fixtures.New(t, browser, cfg)
}

// withExpectTimeout returns a copy of the suite configuration with a
// shorter assertion timeout, for tests expecting an assertion to fail
func withExpectTimeout(d time.Duration) *config.SuiteConfig {
	c := *cfg
	c.ExpectTimeout = d
	return &c
}
