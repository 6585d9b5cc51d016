package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultUIBaseURL is the public Swag Labs storefront
	DefaultUIBaseURL = "https://www.saucedemo.com"
	// DefaultAPIBaseURL is the public Restful Booker service
	DefaultAPIBaseURL = "https://restful-booker.herokuapp.com"
	// DefaultTestIDAttribute is the element attribute used by GetByTestId
	DefaultTestIDAttribute = "data-test"
)

// SuiteConfig holds the settings shared by the browser and API suites
type SuiteConfig struct {
	UIBaseURL         string
	APIBaseURL        string
	TestIDAttribute   string
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	ExpectTimeout     time.Duration
	TestTimeout       time.Duration
	RequestTimeout    time.Duration
	Headless          bool
	UseSandbox        bool
	BookerUsername    string
	BookerPassword    string
	LogRequests       bool
}

// LoadSuiteConfig loads the suite configuration from environment variables.
// The sandbox is used unless a base URL is set explicitly or E2E_SANDBOX=false.
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	uiBaseURL := getenv("UI_BASE_URL")
	apiBaseURL := getenv("API_BASE_URL")
	remote := uiBaseURL != "" || apiBaseURL != ""

	config := &SuiteConfig{
		UIBaseURL:       valueOrDefault(uiBaseURL, DefaultUIBaseURL),
		APIBaseURL:      valueOrDefault(apiBaseURL, DefaultAPIBaseURL),
		TestIDAttribute: valueOrDefault(getenv("TEST_ID_ATTRIBUTE"), DefaultTestIDAttribute),
		BookerUsername:  valueOrDefault(getenv("BOOKER_USERNAME"), "admin"),
		BookerPassword:  valueOrDefault(getenv("BOOKER_PASSWORD"), "password123"),
	}

	var err error
	if config.ActionTimeout, err = durationOrDefault(getenv, "ACTION_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if config.NavigationTimeout, err = durationOrDefault(getenv, "NAVIGATION_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if config.ExpectTimeout, err = durationOrDefault(getenv, "EXPECT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if config.TestTimeout, err = durationOrDefault(getenv, "TEST_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if config.RequestTimeout, err = durationOrDefault(getenv, "REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if config.Headless, err = boolOrDefault(getenv, "HEADLESS", true); err != nil {
		return nil, err
	}
	if config.UseSandbox, err = boolOrDefault(getenv, "E2E_SANDBOX", !remote); err != nil {
		return nil, err
	}
	if config.LogRequests, err = boolOrDefault(getenv, "LOG_REQUESTS", false); err != nil {
		return nil, err
	}

	// Validate base URLs
	for key, value := range map[string]string{"UI_BASE_URL": config.UIBaseURL, "API_BASE_URL": config.APIBaseURL} {
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%s must be an absolute URL, got %q", key, value)
		}
	}

	return config, nil
}

// Milliseconds converts a duration to the float milliseconds playwright expects
func Milliseconds(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// durationOrDefault parses a duration variable, rejecting malformed values
func durationOrDefault(getenv func(string) string, key string, defaultValue time.Duration) (time.Duration, error) {
	value := getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}

func boolOrDefault(getenv func(string) string, key string, defaultValue bool) (bool, error) {
	value := getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s is not a valid boolean: %w", key, err)
	}
	return b, nil
}
