package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/TVShows/internal/cache"
	"github.com/Belphemur/TVShows/internal/client"
	"github.com/Belphemur/TVShows/internal/config"
	grpcserver "github.com/Belphemur/TVShows/internal/grpc"
	"github.com/Belphemur/TVShows/internal/metrics"
	"github.com/Belphemur/TVShows/internal/services"
	"github.com/Belphemur/TVShows/internal/sink"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("proxyConnectionString", cfg.ProxyConnectionString).
		Str("apiBaseUrl", cfg.APIBaseURL).
		Int("serverPort", cfg.Server.Port).
		Str("serverAddress", cfg.Server.Address).
		Str("snapshotProvider", cfg.Snapshot.Provider).
		Msg("Application started with configuration")

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to initialise Sentry, continuing without it")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	snapshotCache, err := cache.NewSnapshotCache(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create snapshot cache")
	}
	defer func() {
		if err := snapshotCache.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close snapshot cache")
		}
	}()

	httpClient := client.NewClient(cfg)
	defer httpClient.Close()

	loader := services.NewShowLoader(httpClient)
	grpcServer := grpcserver.NewGRPCServer(loader, sink.NewSnapshotSink(snapshotCache))

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal().Err(err).Str("address", address).Msg("Failed to create listener")
	}

	logger.Info().Str("address", address).Msg("Starting gRPC server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(listener); err != nil {
		logger.Fatal().Err(err).Msg("Failed to serve gRPC")
	}

	logger.Info().Msg("Server stopped gracefully")
}
