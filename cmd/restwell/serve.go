package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/restwell/restwell/internal/cache"
	"github.com/restwell/restwell/internal/config"
	"github.com/restwell/restwell/internal/history/postgres"
	"github.com/restwell/restwell/internal/insights"
	httpserver "github.com/restwell/restwell/internal/interfaces/http"
	"github.com/restwell/restwell/internal/interfaces/http/handlers"
	"github.com/restwell/restwell/internal/metrics"
)

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		log.Info().Str("path", configPath).Msg("config loaded")
	}

	if cfg.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required to serve")
	}
	store, err := postgres.Open(cfg.Store.DSN, cfg.Store.Timeout())
	if err != nil {
		return err
	}
	defer store.Close()

	var insightsCache *cache.InsightsCache
	if cfg.Cache.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		insightsCache, err = cache.Connect(ctx, cfg.Cache.Addr, cfg.Cache.TTL())
		cancel()
		if err != nil {
			return err
		}
		defer insightsCache.Close()
		log.Info().Str("addr", cfg.Cache.Addr).Msg("response cache enabled")
	}

	registry := metrics.NewRegistry()
	engine := insights.NewEngine(cfg.Engine)
	handlerSet := handlers.NewHandlers(store, engine, insightsCache, registry, cfg.HistoryDays)

	server, err := httpserver.NewServer(cfg.Server, handlerSet, registry)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()
	log.Info().Str("addr", server.Address()).Msg("insight API listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown requested")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
