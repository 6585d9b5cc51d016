package playwrightfake

import (
	"github.com/playwright-community/playwright-go"
)

// Browser is a fake playwright.Browser
type Browser struct {
	pwBrowser
	rec             *Recorder
	CreatedContexts []*BrowserContext
	closed          bool
}

// NewBrowser creates a fake browser recording into rec
func NewBrowser(rec *Recorder) *Browser {
	return &Browser{rec: rec}
}

// NewContext creates a fake context remembering its options
func (b *Browser) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	if err := b.rec.record("new context"); err != nil {
		return nil, err
	}

	ctx := &BrowserContext{rec: b.rec}
	if len(options) > 0 {
		ctx.Options = options[0]
	}
	b.CreatedContexts = append(b.CreatedContexts, ctx)
	return ctx, nil
}

// Close marks the browser closed
func (b *Browser) Close(options ...playwright.BrowserCloseOptions) error {
	b.closed = true
	return b.rec.record("close browser")
}

// IsConnected reports whether Close has not been called
func (b *Browser) IsConnected() bool {
	return !b.closed
}

// BrowserContext is a fake playwright.BrowserContext
type BrowserContext struct {
	pwBrowserContext
	rec               *Recorder
	Options           playwright.BrowserNewContextOptions
	DefaultTimeout    float64
	NavigationTimeout float64
	CreatedPages      []*Page
	Closed            bool
}

// NewPage creates a fake page in this context
func (c *BrowserContext) NewPage() (playwright.Page, error) {
	if err := c.rec.record("new page"); err != nil {
		return nil, err
	}

	page := NewPage(c.rec)
	c.CreatedPages = append(c.CreatedPages, page)
	return page, nil
}

// SetDefaultTimeout records the action timeout
func (c *BrowserContext) SetDefaultTimeout(timeout float64) {
	c.DefaultTimeout = timeout
}

// SetDefaultNavigationTimeout records the navigation timeout
func (c *BrowserContext) SetDefaultNavigationTimeout(timeout float64) {
	c.NavigationTimeout = timeout
}

// Close marks the context closed
func (c *BrowserContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.Closed = true
	return c.rec.record("close context")
}

var (
	_ playwright.Browser        = (*Browser)(nil)
	_ playwright.BrowserContext = (*BrowserContext)(nil)
)
