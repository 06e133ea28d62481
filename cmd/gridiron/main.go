package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/api/rest"
	"github.com/fortuna/gridiron/internal/api/websocket"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/ingest/cfbd"
	"github.com/fortuna/gridiron/internal/ingest/espn"
	"github.com/fortuna/gridiron/internal/ingest/rankings"
	"github.com/fortuna/gridiron/internal/ingest/rss"
	"github.com/fortuna/gridiron/internal/notify"
	"github.com/fortuna/gridiron/internal/service"
	"github.com/fortuna/gridiron/internal/store"
)

const (
	serviceName    = "gridiron"
	serviceVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "optional config file path")
	flag.Parse()

	log.Printf("Starting %s v%s - College Football Analytics Service", serviceName, serviceVersion)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("✓ Configuration loaded")

	// WebSocket hub, wired into the cache so refreshes push updates
	hub := websocket.NewHub()

	cacheOpts := []cache.StoreOption{
		cache.WithRefreshHook(func(key string, entry *cache.Entry) {
			hub.Publish(websocket.Event{
				Type:    websocket.EventCacheRefresh,
				Key:     key,
				Payload: map[string]interface{}{"activity": entry.Activity, "ttl_seconds": entry.TTLSeconds},
			})
		}),
	}

	if cfg.Redis.Enabled {
		mirror, err := cache.NewRedisMirror(cfg.Redis.URL)
		if err != nil {
			log.Printf("⚠️  Redis mirror unavailable, continuing in-process only: %v", err)
		} else {
			defer mirror.Close()
			cacheOpts = append(cacheOpts, cache.WithMirror(mirror))
			log.Println("✓ Connected to Redis cache mirror")
		}
	}

	cacheStore := cache.NewStore(cacheOpts...)

	// Upstream clients
	cfbdClient := cfbd.New(cfg.CFBD.BaseURL, cfg.CFBD.APIKey, cfg.CFBD.Timeout)
	if cfbdClient.Configured() {
		log.Println("✓ CollegeFootballData client configured")
	} else {
		log.Println("⚠️  No CFBD API key, serving bundled sample data")
	}

	espnClient := espn.New(cfg.ESPN.BaseURL)
	rssFetcher := rss.NewFetcher(cfg.News.Feeds)

	var scraper *rankings.Client
	if cfg.Rankings.Enabled {
		scraper, err = rankings.NewClient(cfg.Rankings.PollURL)
		if err != nil {
			log.Printf("⚠️  Rankings scraper unavailable, serving bundled poll: %v", err)
		} else {
			defer scraper.Close()
			log.Println("✓ Rankings scraper ready")
		}
	}

	// Optional prediction history store
	var history service.HistoryStore
	if cfg.History.Enabled {
		db, err := store.NewDatabase(cfg.History.DSN)
		if err != nil {
			log.Printf("⚠️  History database unavailable, continuing without: %v", err)
		} else {
			defer db.Close()
			h := store.NewHistory(db)
			if err := h.EnsureSchema(context.Background()); err != nil {
				log.Printf("⚠️  History schema setup failed, continuing without: %v", err)
			} else {
				history = h
				log.Println("✓ Prediction history store ready")
			}
		}
	}

	// Optional strong-play alerts
	var notifier service.Notifier
	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Betting.AlertEdge)
		if err != nil {
			log.Printf("⚠️  Telegram alerts unavailable, continuing without: %v", err)
		} else {
			notifier = tg
		}
	}

	// Services
	scorer := analysis.NewScorer(cfg.Betting.KellyFraction, cfg.Betting.MaxStakePct, cfg.Betting.MinEdge)
	teamService := service.NewTeamService(cfbdClient, cacheStore)
	predictionService := service.NewPredictionService(cfbdClient, teamService, scorer, cacheStore, history, notifier, hub)
	scoreService := service.NewScoreService(espnClient, cacheStore)
	newsService := service.NewNewsService(espnClient, rssFetcher, cacheStore)
	ratingsService := service.NewRatingsService(cfbdClient, cacheStore)
	rankingsService := service.NewRankingsService(scraper, cacheStore)

	handler := rest.NewHandler(teamService, predictionService, scoreService, newsService, ratingsService, rankingsService, cacheStore)

	// REST API server
	restServer := rest.NewServer(cfg.Server.RESTPort, handler)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()
	log.Printf("✓ REST API server listening on :%s", cfg.Server.RESTPort)

	// WebSocket update server
	wsServer := websocket.NewServer(hub)
	go func() {
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("✓ WebSocket server listening on :%s", cfg.Server.WSPort)

	log.Printf("✓ Gridiron v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.Server.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/updates", cfg.Server.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down Gridiron gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Gridiron stopped")
}
