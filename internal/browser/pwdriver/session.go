package pwdriver

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/sequra/e2e-fixtures/internal/browser"
)

// Options controls how a browser session is launched.
type Options struct {
	// Browser is one of chromium, firefox or webkit.
	Browser  string
	Headless bool
	SlowMo   time.Duration
	// Timeout is the default for every action and wait of the session.
	Timeout time.Duration
}

// Session owns a Playwright driver, a browser and one browser context.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

// Install downloads the given browsers (chromium when none is given).
func Install(browsers ...string) error {
	if len(browsers) == 0 {
		browsers = []string{"chromium"}
	}
	if err := playwright.Install(&playwright.RunOptions{Browsers: browsers}); err != nil {
		return fmt.Errorf("failed to install browsers: %w", err)
	}
	return nil
}

// Launch starts Playwright and opens a fresh browser context.
func Launch(opts Options) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(float64(opts.SlowMo.Milliseconds()))
	}

	var bt playwright.BrowserType
	switch opts.Browser {
	case "", "chromium":
		bt = pw.Chromium
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		pw.Stop()
		return nil, fmt.Errorf("unsupported browser %q", opts.Browser)
	}

	b, err := bt.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", bt.Name(), err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	if opts.Timeout > 0 {
		ctx.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))
	}

	return &Session{pw: pw, browser: b, context: ctx}, nil
}

// NewPage opens a tab in the session's context.
func (s *Session) NewPage() (browser.Page, error) {
	p, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return WrapPage(p), nil
}

// Close releases the context, the browser and the driver; safe to call more
// than once.
func (s *Session) Close() error {
	var firstErr error
	if s.context != nil {
		if err := s.context.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.pw = nil
	}
	return firstErr
}
