package dom

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// problematicHosts are sites whose form frameworks drop values unless
// the full keyboard event battery is dispatched alongside the write.
var problematicHosts = []string{
	"workday", "myworkdayjobs", "icims", "taleo", "successfactors",
}

// BrowserOptions configures the headless browser backend.
type BrowserOptions struct {
	// Timeout bounds navigation and initial render. Zero means 30s.
	Timeout time.Duration
	Verbose bool
}

// Browser is the chromedp Page backend driving a live page. Requires
// Chrome/Chromium to be installed on the system.
type Browser struct {
	url         string
	ctx         context.Context
	cancels     []context.CancelFunc
	verbose     bool
	extraEvents bool
}

// NewBrowser starts a headless browser, navigates to the URL, and waits
// for the page body plus a settling delay for dynamic content.
func NewBrowser(ctx context.Context, pageURL string, opts BrowserOptions) (*Browser, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", pageURL)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	navCtx, cancelNav := context.WithTimeout(browserCtx, timeout)
	defer cancelNav()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Let client-side rendering settle before the first snapshot.
		chromedp.Sleep(2*time.Second),
	)
	if err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("browser navigation failed: %w", err)
	}

	b := &Browser{
		url:         pageURL,
		ctx:         browserCtx,
		cancels:     []context.CancelFunc{cancelBrowser, cancelAlloc},
		verbose:     opts.Verbose,
		extraEvents: isProblematicHost(pageURL),
	}
	return b, nil
}

// isProblematicHost reports whether the URL's host needs the extended
// event battery on text writes.
func isProblematicHost(pageURL string) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range problematicHosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// Close tears down the browser contexts.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}

// URL returns the page URL the browser was opened on.
func (b *Browser) URL() string {
	return b.url
}

// Snapshot evaluates the in-page inventory script and decodes it.
func (b *Browser) Snapshot(ctx context.Context) (*Snapshot, error) {
	var payload struct {
		Fields   []Field   `json:"fields"`
		Controls []Control `json:"controls"`
	}
	if err := b.run(ctx, chromedp.Evaluate(snapshotScript, &payload)); err != nil {
		return nil, &SnapshotError{Message: "snapshot script failed", Cause: err}
	}
	if b.verbose {
		log.Printf("[BROWSER] Snapshot: %d fields, %d controls", len(payload.Fields), len(payload.Controls))
	}
	return &Snapshot{URL: b.url, Fields: payload.Fields, Controls: payload.Controls}, nil
}

// run executes chromedp actions against the page within the caller's
// context deadline.
func (b *Browser) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := b.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(b.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

// eval evaluates a write script that reports success as a boolean.
func (b *Browser) eval(ctx context.Context, ref Ref, script string) error {
	var ok bool
	if err := b.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return &WriteError{Ref: ref, Message: "script evaluation failed", Cause: err}
	}
	if !ok {
		return &WriteError{Ref: ref, Message: "element rejected the write"}
	}
	return nil
}

// jsString renders a Go string as a JS string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// SetValue writes through the native setter and dispatches the event
// battery; problematic hosts additionally get keyup/keydown/focusout.
func (b *Browser) SetValue(ctx context.Context, ref Ref, value string) error {
	script := fmt.Sprintf(setValueScript, jsString(string(ref)), jsString(value), b.extraEvents)
	return b.eval(ctx, ref, script)
}

// SelectOption selects the option with the given value.
func (b *Browser) SelectOption(ctx context.Context, ref Ref, optionValue string) error {
	script := fmt.Sprintf(selectOptionScript, jsString(string(ref)), jsString(optionValue))
	return b.eval(ctx, ref, script)
}

// SetChecked checks or unchecks a radio or checkbox.
func (b *Browser) SetChecked(ctx context.Context, ref Ref, checked bool) error {
	script := fmt.Sprintf(setCheckedScript, jsString(string(ref)), checked)
	return b.eval(ctx, ref, script)
}

// Click activates a control.
func (b *Browser) Click(ctx context.Context, ref Ref) error {
	script := fmt.Sprintf(clickScript, jsString(string(ref)))
	return b.eval(ctx, ref, script)
}

// Highlight marks a filled element; failures are reported but callers
// treat highlighting as best effort.
func (b *Browser) Highlight(ctx context.Context, ref Ref) error {
	script := fmt.Sprintf(highlightScript, jsString(string(ref)))
	return b.eval(ctx, ref, script)
}
