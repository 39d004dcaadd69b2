package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Debugger keeps the last rendered page around for selector debugging
type Debugger struct {
	outputDir string
	now       func() time.Time
}

// NewDebugger returns nil when dir is empty so callers can skip snapshots cheaply
func NewDebugger(dir string) *Debugger {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create debug directory: %v", err)
	}
	return &Debugger{outputDir: dir, now: time.Now}
}

// SaveHTML writes the rendered markup to <name>.html, overwriting the previous snapshot
func (d *Debugger) SaveHTML(name, html string) (string, error) {
	if d == nil {
		return "", nil
	}
	path := filepath.Join(d.outputDir, name+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		log.Printf("⚠️ Failed to save HTML snapshot: %v", err)
		return "", err
	}
	log.Printf("📝 HTML snapshot saved: %s", path)
	return path, nil
}

func (d *Debugger) CaptureAndLog(page playwright.Page, name, message string) error {
	if d == nil {
		return nil
	}
	timestamp := d.now().Format("2006-01-02_15-04-05")
	path := filepath.Join(d.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))
	log.Printf("📸 %s", message)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", path)
	return nil
}
