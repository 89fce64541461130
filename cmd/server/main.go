package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
	"github.com/Joechristian9/SituationalReport-sub000/internal/api/handler"
	"github.com/Joechristian9/SituationalReport-sub000/internal/api/router"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/database"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/events"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
	applogger "github.com/Joechristian9/SituationalReport-sub000/pkg/logger"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/metrics"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/redis"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/render"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config/config.yaml)")
	flag.Parse()

	// 1. configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrate database failed", zap.Error(err))
	}

	// 4. Redis is optional: without it logout cannot revoke tokens and login is not throttled
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and login rate limit disabled", zap.Error(err))
		rdb = nil
	}
	var blacklist service.TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}

	// 5. metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 6. lifecycle events
	var publisher events.Publisher = events.Nop{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(&cfg.Kafka, logger)
		logger.Info("publishing lifecycle events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 7. report storage and renderer
	store, err := storage.New(context.Background(), &cfg.Report, logger)
	if err != nil {
		logger.Fatal("init report storage failed", zap.Error(err))
	}
	renderer := render.NewPDF(cfg.Report.PaperSize)

	// 8. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, publisher, renderer, store, m, clockwork.NewRealClock(), logger)
	h := handler.NewHandler(svc)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Auth.EnsureBootstrapAdmin(bootCtx, cfg.Auth.BootstrapAdmin); err != nil {
		logger.Fatal("bootstrap admin failed", zap.Error(err))
	}
	bootCancel()

	// 9. router
	checks := []router.ReadinessCheck{{Name: "postgres", Check: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, router.ReadinessCheck{Name: "redis", Check: rdb.Ping})
	}
	engine := router.Setup(cfg, h, router.Deps{
		JWT:       jwtMgr,
		Redis:     rdb,
		Gatherer:  registry,
		Metrics:   m,
		Readiness: checks,
		Logger:    logger,
	})

	// 10. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // report rendering on end
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		logger.Error("close event publisher failed", zap.Error(err))
	}
	if closer, ok := store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Error("close report storage failed", zap.Error(err))
		}
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("close database failed", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
