package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/georgeji/change-bridge/internal/capture"
	"github.com/georgeji/change-bridge/internal/grpc_server"
	"github.com/georgeji/change-bridge/internal/handler"
	"github.com/georgeji/change-bridge/internal/ingest"
	applogger "github.com/georgeji/change-bridge/internal/logger"
	"github.com/georgeji/change-bridge/internal/notifier"
	"github.com/georgeji/change-bridge/internal/repository"
	ledgersync "github.com/georgeji/change-bridge/internal/sync"
	pb "github.com/georgeji/change-bridge/proto"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bridge: ingest host events, serve the pull API and the change feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, logger := opts.cfg, opts.logger

	logger.Info("Starting change bridge",
		zap.String("version", cfg.App.Version),
		zap.String("http_addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
		zap.String("database", cfg.Database.Driver))

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := repository.Migrate(ctx, a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := a.flags.Start(ctx); err != nil {
		return fmt.Errorf("start flag manager: %w", err)
	}
	defer a.flags.Stop()

	if cfg.Notifier.Async.Enabled {
		a.notifier.StartDispatcher(cfg.Notifier.Async.Workers, cfg.Notifier.Async.QueueSize)
		defer a.notifier.StopDispatcher()
	}

	dispatcher := capture.NewDispatcher(a.queue, a.notifier, a.flags, a.resolver, cfg.Identity.Label, logger)

	if cfg.NATS.Enabled {
		nc, err := ingest.ConnectNATS(cfg.NATS, logger)
		if err != nil {
			return err
		}
		defer nc.Close()

		src := ingest.NewNATSSource(nc, cfg.NATS, dispatcher, logger)
		if err := src.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := src.Stop(stopCtx); err != nil {
				logger.Warn("Stop NATS source failed", zap.Error(err))
			}
		}()
	}

	if cfg.HostDB.Listen {
		if a.hostPool == nil {
			return errors.New("hostdb.listen requires hostdb.url")
		}
		pgSource := ingest.NewPgSource(a.hostPool, cfg.HostDB.Channel, dispatcher, logger)
		pgCtx, pgCancel := context.WithCancel(ctx)
		pgDone := make(chan struct{})
		go func() {
			defer close(pgDone)
			pgSource.Run(pgCtx)
		}()
		defer func() {
			pgCancel()
			select {
			case <-pgDone:
			case <-time.After(shutdownTimeout):
				logger.Warn("Host event listener did not stop in time")
			}
		}()
	}

	var subscribers handler.SubscriberCounter
	if cfg.GRPC.Enabled {
		feed := grpc_server.NewFeedServer(a.queue, cfg.App.Version, cfg.Feed.SubscriberBuffer, logger)
		defer feed.Close()
		subscribers = feed

		tailer := ledgersync.NewLedgerTailer(a.repo, cfg.Feed.PollInterval, logger)
		tailer.RegisterChangeHandler(feed.HandleChange)
		go func() {
			if err := tailer.Start(ctx); err != nil {
				logger.Error("Ledger tailer failed", zap.Error(err))
			}
		}()
		defer tailer.Stop()

		grpcServer := grpc.NewServer()
		pb.RegisterChangeFeedServer(grpcServer, feed)

		grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port))
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		go func() {
			logger.Info("gRPC server listening", zap.String("addr", grpcListener.Addr().String()))
			if err := grpcServer.Serve(grpcListener); err != nil {
				logger.Error("gRPC serve failed", zap.Error(err))
			}
		}()
		defer func() {
			// open streams end once the feed closes, so GracefulStop can return
			tailer.Stop()
			feed.Close()
			grpcServer.GracefulStop()
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(applogger.RequestID(), applogger.GinMiddleware(logger), applogger.Recovery(logger))
	handler.NewChangeHandler(a.queue, subscribers, logger).RegisterRoutes(router.Group(cfg.Server.BasePath))

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	a.notifier.NotifyLifecycleStatus(ctx, notifier.StatusActivated)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		logger.Error("HTTP server failed", zap.Error(err))
	}

	logger.Info("Shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.notifier.NotifyLifecycleStatus(shutdownCtx, notifier.StatusDeactivated)

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Servers stopped")
	return nil
}
