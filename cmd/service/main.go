package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"demo/marketplace/internal/config"
	"demo/marketplace/internal/httpapi"
	"demo/marketplace/internal/intake"
	"demo/marketplace/internal/logger"
	"demo/marketplace/internal/server"
	"demo/marketplace/internal/service"
	"demo/marketplace/internal/store"
)

func main() {
	configFile := flag.String("config", "", "path to config.yaml")
	envPath := flag.String("env", ".", "directory holding .env files")
	flag.Parse()

	cfg, err := config.Load(*configFile, *envPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Migrate {
		if err := store.Migrate(cfg.Database.URL); err != nil {
			zapLogger.Fatal("applying migrations", zap.Error(err))
		}
		zapLogger.Info("migrations applied")
	}

	pool, err := store.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	zapLogger.Info("database connected")

	repo := store.New(pool, store.Contracts{
		NFT:         cfg.Contracts.NFT,
		Marketplace: cfg.Contracts.Marketplace,
	}, zapLogger.Named("store"))
	svc := service.New(repo, zapLogger.Named("service"))

	handler := httpapi.NewHandler(svc, zapLogger, httpapi.Options{
		BodyLimit: cfg.Server.BodyLimit,
		ListLimit: cfg.Orders.ListLimit,
	})
	router := httpapi.NewRouter(handler, zapLogger.Named("http"), cfg.Server.RequestTimeout)

	srv := server.New(cfg.Addr(), router, server.Timeouts{
		Read:  cfg.Server.ReadTimeout,
		Write: cfg.Server.WriteTimeout,
		Idle:  cfg.Server.IdleTimeout,
	}, zapLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)

	if cfg.Kafka.Enabled {
		reader := intake.NewReader(intake.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.Group,
		})
		defer func() { _ = reader.Close() }()

		consumer := intake.NewConsumer(reader, svc, zapLogger.Named("intake"))
		zapLogger.Info("kafka intake enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
		g.Go(func() error { return consumer.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("received shutdown signal")

		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("service stopped with error", zap.Error(err))
		return
	}
	zapLogger.Info("server stopped gracefully")
}
