package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/gameportal/internal/api"
	"github.com/mcoot/gameportal/internal/config"
	"github.com/mcoot/gameportal/internal/factory"
	"github.com/mcoot/gameportal/internal/portal"
	redisstorage "github.com/mcoot/gameportal/internal/storage/redis"
)

const cleanupInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	portalCfg := portal.DefaultConfig()
	portalCfg.Auth.BcryptCost = cfg.BcryptCost
	portalCfg.Auth.SeedDemoAccounts = cfg.SeedDemo
	portalCfg.History.Limit = cfg.HistoryLimit

	factoryCfg := factory.Config{
		Portal:      portalCfg,
		Logger:      logger,
		StorageType: cfg.StorageType,
		SQLitePath:  cfg.SQLitePath,
	}
	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.KeyPrefix = cfg.RedisKeyPrefix
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close error", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Portals:    app.Portals,
		HubManager: app.HubManager,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Client-ID"},
		AllowCredentials: false,
	}).Handler(router)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(handler, serverConfig, logger)
	server.OnShutdown(app.HubManager.Close)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		return server.Shutdown(context.Background())
	})

	g.Go(func() error {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				app.HubManager.CleanupEmptyHubs()
				if n := app.Portals.CleanupIdle(cfg.PortalIdleTimeout); n > 0 {
					logger.Info("evicted idle portals", slog.Int("count", n))
				}
			}
		}
	})

	logger.Info("server configured",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)
	return g.Wait()
}
