package main

import (
	"fmt"
	"go-upwork-watcher/internal/config"
	"log"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Telegram Token: %s...\n", cfg.TelegramToken[:min(10, len(cfg.TelegramToken))])
	fmt.Printf("   Telegram Chat ID: %d\n", cfg.TelegramChatID)
	fmt.Printf("   Search URL: %s\n", cfg.SearchURL)
	fmt.Printf("   Poll interval: %s, message delay: %s\n", cfg.PollInterval, cfg.MessageDelay)
	fmt.Printf("   Telegram timeout: %s, scroll steps: %d\n", cfg.TelegramTimeout, cfg.ScrollSteps)
	fmt.Printf("   Empty links: %s\n", cfg.EmptyLinks)
	fmt.Printf("   Keywords: %v (exclude %v)\n", cfg.Keywords, cfg.ExcludeKeywords)
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Store Path: %s\n", cfg.StorePath)
}
