package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alcademic/web/internal/api"
	"github.com/alcademic/web/internal/config"
	"github.com/alcademic/web/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	var (
		cfg     *config.Config
		watcher *config.Watcher
	)
	if _, err := os.Stat(cfgPath); err == nil {
		watcher, err = config.NewWatcher(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = watcher.Current()
	} else {
		log.Printf("No config file at %s, using defaults", cfgPath)
		cfg = config.Default()
		cfg.ApplyEnv()
	}

	client := api.NewClient(
		cfg.Catalog.BaseURL,
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
		cfg.Catalog.Fallback,
	)
	papers := api.NewCachedClient(client, 128, 30*time.Second)

	pageSize := func() int { return cfg.Catalog.PageSize }
	if watcher != nil {
		watcher.OnReload(func(next *config.Config) {
			client.Fallback.Store(next.Catalog.Fallback)
		})
		watcher.Start()
		defer watcher.Stop()
		pageSize = func() int { return watcher.Current().Catalog.PageSize }
	}

	srv := server.New(papers, pageSize)
	r := srv.SetupRouter()

	log.Printf("Starting server on %s (catalog %s, fallback=%t)",
		cfg.Server.Addr, cfg.Catalog.BaseURL, cfg.Catalog.Fallback)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
