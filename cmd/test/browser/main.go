package main

import (
	"context"
	"fmt"
	"go-upwork-watcher/internal/browser"
	"go-upwork-watcher/internal/config"
	"go-upwork-watcher/internal/scraper/upwork"
	"go-upwork-watcher/utils"
	"log"
)

// Fetch the listing once with the configured cookies and print what the extractor sees.
// Nothing is sent or persisted.
func main() {
	fmt.Println("🌐 Testing browser session...")

	cfg, err := config.LoadUnvalidated(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	debugDir := cfg.DebugDir
	if debugDir == "" {
		debugDir = "logs"
	}

	session := browser.NewSession(browser.SessionConfig{
		CookiesPath:       cfg.CookiesPath,
		SearchURL:         cfg.SearchURL,
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		RenderWait:        cfg.RenderWait,
		ScrollSteps:       3,
	}, utils.NewDebugger(debugDir))

	html, err := session.Fetch(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch: %v", err)
	}

	jobs := upwork.NewExtractor(cfg.BaseURL).Extract(html)
	fmt.Printf("✅ Extracted %d jobs\n", len(jobs))
	for i, job := range jobs {
		fmt.Printf("  %2d. %s\n      %s\n", i+1, job.Title, job.Link)
	}
	fmt.Println("✨ Test complete!")
}
