package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-upwork-watcher/internal/config"
	"go-upwork-watcher/internal/watcher"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Search: %s, store: %s", cfg.SearchURL, cfg.StorePath)

	w, err := watcher.FromConfig(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init watcher: %v", err)
	}
	log.Println("🤖 Telegram Bot initialized.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ Watcher stopped: %v", err)
	}
	log.Println("👋 Bye.")
}
