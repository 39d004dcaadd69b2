package watcher

import (
	"fmt"

	"go-upwork-watcher/internal/browser"
	"go-upwork-watcher/internal/config"
	"go-upwork-watcher/internal/dedup"
	"go-upwork-watcher/internal/filter"
	"go-upwork-watcher/internal/scraper/upwork"
	"go-upwork-watcher/internal/telegram"
	"go-upwork-watcher/utils"
)

// FromConfig wires the browser session, extractor, store and Telegram bot described by cfg
func FromConfig(cfg *config.Config) (*Watcher, error) {
	policy, err := dedup.ParsePolicy(cfg.EmptyLinks)
	if err != nil {
		return nil, err
	}

	//no network I/O here, a bad token or unreachable API surfaces on the first send
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, cfg.TelegramTimeout)
	if err != nil {
		return nil, fmt.Errorf("init telegram: %w", err)
	}

	session := browser.NewSession(browser.SessionConfig{
		CookiesPath:       cfg.CookiesPath,
		SearchURL:         cfg.SearchURL,
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		RenderWait:        cfg.RenderWait,
		ScrollSteps:       cfg.ScrollSteps,
	}, utils.NewDebugger(cfg.DebugDir))

	w := New(
		session,
		upwork.NewExtractor(cfg.BaseURL),
		dedup.NewJobStore(cfg.StorePath, cfg.MaxRecords),
		bot,
		Options{
			PollInterval:       cfg.PollInterval,
			MessageDelay:       cfg.MessageDelay,
			EmptyLinks:         policy,
			AlertAfterFailures: cfg.AlertAfterFailures,
		},
	).WithAlerter(bot)

	if len(cfg.Keywords) > 0 || len(cfg.ExcludeKeywords) > 0 {
		w.WithFilter(filter.NewMatcher(cfg.Keywords, cfg.ExcludeKeywords))
	}
	return w, nil
}
