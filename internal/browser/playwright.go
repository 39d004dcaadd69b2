package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless  bool
	UserAgent string
	Width     int
	Height    int
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
}

// NewPlaywright starts the driver and launches Chromium
func NewPlaywright(opts Options) (*PlaywrightManager, error) {
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 1280, 800
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser, opts: opts}, nil
}

// NewContext opens an isolated browser context carrying the given cookies
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(pm.opts.UserAgent),
		Viewport: &playwright.Size{
			Width:  pm.opts.Width,
			Height: pm.opts.Height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			_ = ctx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return ctx, nil
}

func (pm *PlaywrightManager) Close() error {
	if err := pm.browser.Close(); err != nil {
		_ = pm.pw.Stop()
		return err
	}
	return pm.pw.Stop()
}
