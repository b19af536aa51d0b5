package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pos_service/config"
	"pos_service/internal/auth"
	"pos_service/internal/delivery"
	grpcHandler "pos_service/internal/delivery/grpc"
	"pos_service/internal/idgen"
	"pos_service/internal/latency"
	"pos_service/internal/repository"
	"pos_service/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	if logLevel != logrus.DebugLevel && logLevel != logrus.TraceLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Starting POS Service...")

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("POS Service stopped with error: %v", err)
	}
	logger.Info("POS Service shut down gracefully.")
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := repository.Open(ctx, cfg.StoreOptions(), logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	store := repository.NewKVStore(backend, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Errorf("Error closing store: %v", err)
		} else {
			logger.Info("Store closed.")
		}
	}()

	ids, err := idgen.New(cfg.IDStrategy, time.Now)
	if err != nil {
		return err
	}
	authn, err := newAuthenticator(cfg, logger)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, time.Now)

	containers := usecase.NewContainers(usecase.Deps{
		Store: store,
		Delay: latency.New(cfg.SimulateLatency),
		IDs:   ids,
		Now:   time.Now,
		Log:   logger,
	}, authn, tokens)
	logger.Info("Containers initialized.")

	var loaded atomic.Bool
	grpcServer := grpcHandler.NewServer(logger)
	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           delivery.NewRouter(containers, tokens, loaded.Load, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.GrpcPort, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		if err := containers.Load(gctx); err != nil {
			return fmt.Errorf("initial load failed: %w", err)
		}
		loaded.Store(true)
		grpcServer.SetServing(true)
		logger.Infof("Initial state loaded in %s", time.Since(start).Round(time.Millisecond))
		return nil
	})
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Warn("Shutdown signal received...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("HTTP server shutdown error: %v", err)
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newAuthenticator(cfg *config.Config, logger *logrus.Logger) (auth.Authenticator, error) {
	switch cfg.AuthMode {
	case auth.ModeCredentials:
		accounts, err := auth.LoadAccounts(cfg.UsersFile)
		if err != nil {
			return nil, err
		}
		logger.Infof("Authentication: %d accounts loaded from %s", len(accounts), cfg.UsersFile)
		return auth.NewCredentialAuthenticator(accounts, logger), nil
	default:
		logger.Warn("Authentication: demo mode, any non-empty credentials sign in as the admin user")
		return auth.DemoAuthenticator{}, nil
	}
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
