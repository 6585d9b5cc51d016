package playwrightfake

import (
	"errors"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakes_SatisfyPlaywrightInterfaces(t *testing.T) {
	rec := NewRecorder()

	var browser playwright.Browser = NewBrowser(rec)
	ctx, err := browser.NewContext()
	require.NoError(t, err)

	page, err := ctx.NewPage()
	require.NoError(t, err)

	var locator playwright.Locator = page.GetByTestId("login-button")
	require.NoError(t, locator.Click())

	var expect playwright.PlaywrightAssertions = NewAssertions(rec)
	require.NoError(t, expect.Locator(locator).ToBeVisible())

	assert.Equal(t, []string{"new context", "new page", "click login-button", "visible login-button"}, rec.Calls())
}

func TestBrowser_RecordsCreatedContextsAndPages(t *testing.T) {
	rec := NewRecorder()
	browser := NewBrowser(rec)

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{BaseURL: playwright.String("http://localhost")})
	require.NoError(t, err)
	_, err = ctx.NewPage()
	require.NoError(t, err)

	require.Len(t, browser.CreatedContexts, 1)
	assert.Equal(t, "http://localhost", *browser.CreatedContexts[0].Options.BaseURL)
	assert.Len(t, browser.CreatedContexts[0].CreatedPages, 1)
}

func TestRecorder_FailOn(t *testing.T) {
	rec := NewRecorder()
	boom := errors.New("boom")
	rec.FailOn("fill username standard_user", boom)

	page := NewPage(rec)

	assert.ErrorIs(t, page.GetByTestId("username").Fill("standard_user"), boom)
	assert.NoError(t, page.GetByTestId("password").Fill("secret_sauce"))
}
