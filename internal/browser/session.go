package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-upwork-watcher/utils"

	"github.com/playwright-community/playwright-go"
)

// ErrFetch marks navigation, network and timeout failures while loading the listing page
var ErrFetch = errors.New("fetch failed")

type SessionConfig struct {
	CookiesPath       string
	SearchURL         string
	Headless          bool
	UserAgent         string
	NavigationTimeout time.Duration
	RenderWait        time.Duration
	ScrollSteps       int
}

// Session fetches the rendered listing page with a fresh cookie-authenticated browser each time
type Session struct {
	cfg      SessionConfig
	debugger *utils.Debugger
}

func NewSession(cfg SessionConfig, debugger *utils.Debugger) *Session {
	return &Session{cfg: cfg, debugger: debugger}
}

func (s *Session) Config() SessionConfig {
	return s.cfg
}

func (s *Session) Fetch(ctx context.Context) (string, error) {
	//cookies are re-read every cycle so a refreshed export is picked up without restart
	cookies, err := LoadCookies(s.cfg.CookiesPath)
	if err != nil {
		return "", err
	}
	log.Printf("🍪 Loaded %d cookies", len(cookies))

	if err := ctx.Err(); err != nil {
		return "", err
	}

	pm, err := NewPlaywright(Options{Headless: s.cfg.Headless, UserAgent: s.cfg.UserAgent})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("%w: could not create page: %v", ErrFetch, err)
	}

	log.Printf("🌐 Navigating to %s", s.cfg.SearchURL)
	resp, err := page.Goto(s.cfg.SearchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavigationTimeout.Milliseconds())),
	})
	if err != nil {
		return "", fmt.Errorf("%w: navigate %s: %v", ErrFetch, s.cfg.SearchURL, err)
	}
	if resp != nil && resp.Status() >= 400 {
		s.debugger.CaptureAndLog(page, "upwork-http-error", fmt.Sprintf("🚨 Upwork returned HTTP %d", resp.Status()))
		return "", fmt.Errorf("%w: %s returned HTTP %d", ErrFetch, s.cfg.SearchURL, resp.Status())
	}

	//wait for client-side rendering of job cards
	page.WaitForTimeout(float64(s.cfg.RenderWait.Milliseconds()))

	if title, _ := page.Title(); isChallenge(title) {
		s.debugger.CaptureAndLog(page, "upwork-cloudflare", "🚨 Upwork: Cloudflare challenge detected")
		log.Printf("🛡️ Challenge page detected (%q), cookies may be stale", title)
	}

	if s.cfg.ScrollSteps > 0 {
		if err := HumanScroll(page, s.cfg.ScrollSteps); err != nil {
			log.Printf("⚠️ Scroll failed: %v", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("%w: read page content: %v", ErrFetch, err)
	}

	s.debugger.SaveHTML("upwork_loggedin", html)
	log.Printf("✅ Fetched listing page (%d bytes)", len(html))
	return html, nil
}

func isChallenge(title string) bool {
	return strings.Contains(title, "Just a moment") ||
		strings.Contains(title, "Attention Required") ||
		strings.Contains(title, "Cloudflare")
}
