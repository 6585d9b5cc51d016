// Package playwrightfake provides in-memory stand-ins for the playwright
// interfaces used by page objects and fixtures. Every interaction is
// recorded as a short call string such as "click login-button".
package playwrightfake

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Unexported aliases keep the embedded interfaces from adding exported
// fields that shadow interface methods of the same name
type (
	pwPage              = playwright.Page
	pwLocator           = playwright.Locator
	pwAssertions        = playwright.PlaywrightAssertions
	pwLocatorAssertions = playwright.LocatorAssertions
	pwPageAssertions    = playwright.PageAssertions
	pwBrowser           = playwright.Browser
	pwBrowserContext    = playwright.BrowserContext
)

// Recorder collects calls and injects failures
type Recorder struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{fail: make(map[string]error)}
}

// FailOn makes the call returning err instead of succeeding
func (r *Recorder) FailOn(call string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[call] = err
}

// Calls returns the recorded calls in order
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *Recorder) record(format string, args ...interface{}) error {
	call := fmt.Sprintf(format, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	return r.fail[call]
}

// Page is a fake playwright.Page
type Page struct {
	pwPage
	rec    *Recorder
	closed bool
}

// NewPage creates a fake page recording into rec
func NewPage(rec *Recorder) *Page {
	return &Page{rec: rec}
}

// GetByTestId returns a fake locator for the test id
func (p *Page) GetByTestId(testId interface{}) playwright.Locator {
	return &Locator{ID: fmt.Sprint(testId), rec: p.rec}
}

// Goto records the navigation
func (p *Page) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	return nil, p.rec.record("goto %s", url)
}

// Close marks the page closed
func (p *Page) Close(options ...playwright.PageCloseOptions) error {
	p.closed = true
	return p.rec.record("close page")
}

// IsClosed reports whether Close was called
func (p *Page) IsClosed() bool {
	return p.closed
}

// Locator is a fake playwright.Locator
type Locator struct {
	pwLocator
	ID  string
	rec *Recorder
}

// Click records a click
func (l *Locator) Click(options ...playwright.LocatorClickOptions) error {
	return l.rec.record("click %s", l.ID)
}

// Fill records a fill
func (l *Locator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	return l.rec.record("fill %s %s", l.ID, value)
}

// WaitFor records a wait
func (l *Locator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	return l.rec.record("wait %s", l.ID)
}

// Assertions is a fake playwright.PlaywrightAssertions
type Assertions struct {
	pwAssertions
	rec *Recorder
}

// NewAssertions creates fake assertions recording into rec
func NewAssertions(rec *Recorder) *Assertions {
	return &Assertions{rec: rec}
}

// Locator returns assertions on a fake locator
func (a *Assertions) Locator(locator playwright.Locator) playwright.LocatorAssertions {
	id := "?"
	if fake, ok := locator.(*Locator); ok {
		id = fake.ID
	}
	return &LocatorAssertions{id: id, rec: a.rec}
}

// Page returns assertions on a page
func (a *Assertions) Page(page playwright.Page) playwright.PageAssertions {
	return &PageAssertions{rec: a.rec}
}

// LocatorAssertions is a fake playwright.LocatorAssertions
type LocatorAssertions struct {
	pwLocatorAssertions
	id  string
	rec *Recorder
}

// ToBeVisible records a visibility assertion
func (a *LocatorAssertions) ToBeVisible(options ...playwright.LocatorAssertionsToBeVisibleOptions) error {
	return a.rec.record("visible %s", a.id)
}

// ToBeHidden records a hidden assertion
func (a *LocatorAssertions) ToBeHidden(options ...playwright.LocatorAssertionsToBeHiddenOptions) error {
	return a.rec.record("hidden %s", a.id)
}

// ToContainText records a text assertion
func (a *LocatorAssertions) ToContainText(expected interface{}, options ...playwright.LocatorAssertionsToContainTextOptions) error {
	return a.rec.record("text %s %v", a.id, expected)
}

// ToHaveCount records a count assertion
func (a *LocatorAssertions) ToHaveCount(count int, options ...playwright.LocatorAssertionsToHaveCountOptions) error {
	return a.rec.record("count %s %d", a.id, count)
}

// PageAssertions is a fake playwright.PageAssertions
type PageAssertions struct {
	pwPageAssertions
	rec *Recorder
}

// ToHaveTitle records a title assertion
func (a *PageAssertions) ToHaveTitle(titleOrRegExp interface{}, options ...playwright.PageAssertionsToHaveTitleOptions) error {
	return a.rec.record("title %v", titleOrRegExp)
}

var (
	_ playwright.Page                 = (*Page)(nil)
	_ playwright.Locator              = (*Locator)(nil)
	_ playwright.PlaywrightAssertions = (*Assertions)(nil)
	_ playwright.LocatorAssertions    = (*LocatorAssertions)(nil)
	_ playwright.PageAssertions       = (*PageAssertions)(nil)
)
