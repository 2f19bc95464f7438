// Package printer turns standalone HTML documents into PDF bytes.
//
// The generators never talk to a browser. They hand a finished document to
// a [Sink]; [Rod] is the production sink that prints through headless
// Chrome. Printing is one-shot: a failure is returned as an EXPORT_FAILED
// error and nothing is retried.
package printer

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/matzehuels/blocks/pkg/errors"
)

// DefaultSettle is how long the page is given to lay out fonts and images
// before printing.
const DefaultSettle = 500 * time.Millisecond

// Sink prints an HTML document to PDF.
type Sink interface {
	Print(ctx context.Context, title, html string) ([]byte, error)
}

// Option configures a Rod sink.
type Option func(*Rod)

// WithControlURL connects to an already running Chrome instead of
// launching one.
func WithControlURL(url string) Option {
	return func(r *Rod) { r.controlURL = url }
}

// WithSettle overrides DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(r *Rod) { r.settle = d }
}

// WithLogger sets the logger used for launch and print events.
func WithLogger(l *log.Logger) Option {
	return func(r *Rod) { r.logger = l }
}

// Rod prints with headless Chrome driven by go-rod. The browser is started
// lazily on first use and shared by later prints until Close.
type Rod struct {
	controlURL string
	settle     time.Duration
	logger     *log.Logger

	launch func() (url string, kill func(), err error)

	mu      sync.Mutex
	browser *rod.Browser
	kill    func()
}

// NewRod returns a sink; no browser is started until Print is called.
func NewRod(opts ...Option) *Rod {
	r := &Rod{settle: DefaultSettle, logger: log.Default(), launch: launchChrome}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func launchChrome() (string, func(), error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return "", nil, err
	}
	return u, l.Kill, nil
}

func (r *Rod) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	url := r.controlURL
	var kill func()
	if url == "" {
		u, k, err := r.launch()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "launch chrome")
		}
		url, kill = u, k
		r.logger.Debug("launched headless chrome", "url", url)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		// A browser we started but cannot drive would outlive the sink.
		if kill != nil {
			kill()
		}
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "connect to chrome")
	}
	r.kill = kill
	r.browser = b
	return b, nil
}

// Print loads html into a fresh tab, waits for the settle delay and prints
// it with CSS page sizes and backgrounds honoured.
func (r *Rod) Print(ctx context.Context, title, html string) ([]byte, error) {
	b, err := r.connect()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "open tab")
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "load %q", title)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "wait for %q", title)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.settle):
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "print %q", title)
	}
	defer stream.Close()

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "read pdf stream")
	}
	r.logger.Debug("printed document", "title", title, "bytes", len(pdf))
	return pdf, nil
}

// Close shuts the browser down, killing it if this sink launched it.
func (r *Rod) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.kill != nil {
		r.kill()
		r.kill = nil
	}
	return err
}

// PageCount validates pdf and returns its number of pages.
func PageCount(pdf []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeExportFailed, err, "read pdf")
	}
	return ctx.PageCount, nil
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, title, html string) ([]byte, error)

func (f SinkFunc) Print(ctx context.Context, title, html string) ([]byte, error) {
	return f(ctx, title, html)
}
