package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"xrplutter/gateway/internal/config"
	"xrplutter/gateway/internal/handler"
	"xrplutter/gateway/internal/metrics"
	"xrplutter/gateway/internal/repository"
	"xrplutter/gateway/internal/service"
	"xrplutter/gateway/internal/xumm"
	jwtpkg "xrplutter/gateway/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Initialize TTL store (memory or Redis)
	store, err := repository.NewStore(cfg.Store)
	if err != nil {
		logger.Fatal("failed to initialize store", zap.Error(err))
	}
	logger.Info("store initialized",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("ttl_seconds", cfg.Store.TTLSeconds),
	)

	// 4. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.MaxTTLSeconds)*time.Second)

	// 5. Gate metrics
	gateMetrics := metrics.New(nil)

	// 6. Services and handlers
	sessionService := service.NewSessionService(store)
	xummClient := xumm.NewClient(cfg.Xumm)

	sessionHandler := handler.NewSessionHandler(sessionService)
	payloadHandler := handler.NewPayloadHandler(xummClient, sessionService, logger, gateMetrics)
	rpcHandler := handler.NewRPCHandler(cfg.XRPL, gateMetrics)

	// 7. Setup router
	router := handler.SetupRouter(cfg, logger, store, jwtManager, gateMetrics, sessionHandler, payloadHandler, rpcHandler)

	// 8. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 9. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
