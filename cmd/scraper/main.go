package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-upwork-watcher/internal/config"
	"go-upwork-watcher/internal/watcher"
)

// One-shot run: scrape once, overwrite the store with the snapshot, notify every job, exit.
func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Search: %s", cfg.SearchURL)

	w, err := watcher.FromConfig(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init watcher: %v", err)
	}
	log.Println("🤖 Telegram Bot initialized.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	log.Println("🚀 Starting one-shot scrape...")
	res, err := w.RunFull(ctx)
	if err != nil {
		log.Fatalf("❌ Error: %v", err)
	}
	log.Printf("🏁 Execution finished. %d jobs, %d sent, %d failed.", res.Extracted, res.Sent, res.Failed)
}
