package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/islandlog/islandlog/internal/api"
	"github.com/islandlog/islandlog/internal/config"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/remote"
	"github.com/islandlog/islandlog/internal/services"
	"github.com/islandlog/islandlog/internal/store"
	"github.com/islandlog/islandlog/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Island Study Log Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)
	log.Debug("auto_sync_interval=%ds", cfg.AutoSyncInterval)
	log.Debug("remote_timeout=%ds", cfg.RemoteTimeout)

	// Open database
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		st.Close()
	}()

	// All state mutations share one mutex: the engine is a single logical
	// writer over the persisted blobs.
	var mu sync.Mutex

	remoteClient := remote.New(time.Duration(cfg.RemoteTimeout) * time.Second)

	// A single sync worker keeps cloud saves serialized.
	syncPool := worker.NewPool(1, cfg.SyncQueueSize)

	progressService := services.NewProgressService(st, &mu)
	importService := services.NewImportService(st, &mu)
	syncService := services.NewSyncService(st, remoteClient, &mu)
	rewardService := services.NewRewardService(st, &mu)
	statsService := services.NewStatsService(st)
	libraryService := services.NewLibraryService(st, &mu)
	settingsService := services.NewSettingsService(st, &mu)

	srv := &api.Server{
		Store:           st,
		ProgressService: progressService,
		ImportService:   importService,
		SyncService:     syncService,
		RewardService:   rewardService,
		StatsService:    statsService,
		LibraryService:  libraryService,
		SettingsService: settingsService,
		SyncPool:        syncPool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	syncPool.Start(ctx)

	// Periodic cloud save. Skipped entirely when the learner has not
	// configured a remote endpoint or turned auto save off.
	if cfg.AutoSyncInterval > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.AutoSyncInterval) * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					enabled, err := syncService.Enabled(ctx)
					if err != nil {
						log.Warn("auto sync check failed: %v", err)
						continue
					}
					if !enabled {
						continue
					}
					syncPool.TrySubmit(&worker.CloudSaveJob{Sync: syncService})
				}
			}
		}()
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping background workers")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping sync pool")
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("Island Study Log Server Stopped")
	log.Info("===========================================")
}
