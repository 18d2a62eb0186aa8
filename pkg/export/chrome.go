package export

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// A4 paper in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromePrinter prints HTML to PDF with headless Chrome.
type ChromePrinter struct {
	// ExecPath overrides the Chrome binary; empty uses the default lookup.
	ExecPath string
	Timeout  time.Duration
}

// NewChromePrinter creates a ChromePrinter with a 60 second timeout.
func NewChromePrinter(execPath string) (printer *ChromePrinter) {
	printer = &ChromePrinter{
		ExecPath: execPath,
		Timeout:  60 * time.Second,
	}
	return printer
}

// PrintHTML renders a complete HTML document to A4 PDF bytes.
func (p *ChromePrinter) PrintHTML(ctx context.Context, html string) (pdf []byte, err error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)
	defer cancelChrome()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(chromeCtx, timeout)
	defer cancelRun()

	// Chrome loads the page from disk
	var tmpDir string
	tmpDir, err = os.MkdirTemp("", "cvforge-")
	if err != nil {
		err = errors.Wrap(err, "failed to create temp directory")
		return pdf, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	err = os.WriteFile(htmlPath, []byte(html), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write HTML file: %s", htmlPath)
		return pdf, err
	}

	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) (actionErr error) {
			pdf, _, actionErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return actionErr
		}),
	)
	if err != nil {
		err = errors.Wrap(err, "chrome failed to print PDF")
		return pdf, err
	}

	return pdf, err
}
