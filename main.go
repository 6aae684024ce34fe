package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/festival-ballot/ballot"
	"github.com/danielhkuo/festival-ballot/bin"
	"github.com/danielhkuo/festival-ballot/cache"
	"github.com/danielhkuo/festival-ballot/cliparse"
	"github.com/danielhkuo/festival-ballot/middleware"
	"github.com/danielhkuo/festival-ballot/router"
)

func main() {
	var err error

	// Load .env for local development; absence is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the local snapshot cache. It is a fallback tier only, so a
	// failure here degrades the app instead of stopping it.
	var snapshots ballot.SnapshotCache
	if store, err := cache.Open(cfg.CachePath); err != nil {
		slog.Warn("local snapshot cache unavailable", "error", err, "path", cfg.CachePath)
	} else {
		snapshots = store
		defer store.Close()
	}

	// Remote document store
	client := bin.NewClient(cfg.BinURL, cfg.BinID, cfg.APIKey, cfg.RequestTimeout)

	mgr := ballot.NewManager(client, snapshots, cfg.Deadline)

	// Initial sync, non-fatal by design
	if err := mgr.Refresh(context.Background()); err != nil {
		slog.Warn("initial load failed, starting from local state", "error", err)
	} else {
		slog.Info("document loaded from remote store")
	}

	// Create router
	mux := router.NewRouter(mgr, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
