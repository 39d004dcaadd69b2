package main

import (
	"flag"
	"log"

	"go-upwork-watcher/internal/config"
	"go-upwork-watcher/internal/dedup"
	"go-upwork-watcher/internal/server"
)

// Read-only status server over the seen-jobs store
func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config.yaml")
	flag.Parse()

	cfg, err := config.LoadUnvalidated(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	r := server.NewRouter(dedup.NewJobStore(cfg.StorePath, cfg.MaxRecords))

	log.Printf("Server listening on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
