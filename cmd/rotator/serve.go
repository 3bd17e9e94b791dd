package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/internal/cli"
	httpAdapter "github.com/aretw0/rotator/pkg/adapters/http"
	redisAdapter "github.com/aretw0/rotator/pkg/adapters/redis"
	"github.com/aretw0/rotator/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the carousel as an HTTP server",
	Long: `Starts an HTTP server exposing the carousel via a REST API.
Commands (next, previous, goto, pause, resume, pointer and hover signals) are
validated against the embedded OpenAPI document. Changes are streamed over
Server-Sent Events at /events and optionally published to Redis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		metrics := observability.NewMetrics()
		a, err := loadApp(sigCtx, cmd, false)
		if err != nil {
			return err
		}
		streams := httpAdapter.NewStreamManager(a.logger)
		if err := a.start(metrics.Hooks(), streams.Hooks()); err != nil {
			return err
		}
		defer a.ctrl.Close()

		metrics.Observe(a.cfg.Name, a.ctrl.State())
		streams.Seed(a.ctrl.State())

		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			a.cfg.Server.Addr = addr
		}
		if addr, _ := cmd.Flags().GetString("redis"); cmd.Flags().Changed("redis") {
			a.cfg.Redis.Addr = addr
		}

		if a.cfg.Redis.Addr != "" {
			pub := redisAdapter.New(a.cfg.Redis.Addr, "", 0,
				redisAdapter.WithChannel(a.cfg.Redis.Channel),
				redisAdapter.WithLogger(a.logger),
			)
			defer pub.Close()

			pingCtx, cancel := context.WithTimeout(sigCtx, 2*time.Second)
			err := pub.Ping(pingCtx)
			cancel()
			if err != nil {
				return fmt.Errorf("redis unavailable at %s: %w", a.cfg.Redis.Addr, err)
			}
			detach := pub.Attach(a.ctrl, a.cfg.Name)
			defer detach()
			a.logger.Info("publishing changes", "redis", a.cfg.Redis.Addr, "channel", pub.Channel())
		}

		handler, err := httpAdapter.NewHandler(a.ctrl,
			httpAdapter.WithDeck(a.deck),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithInfo(a.cfg.Name, strings.TrimSpace(rotator.Version)),
			httpAdapter.WithLogger(a.logger),
		)
		if err != nil {
			return fmt.Errorf("error building handler: %w", err)
		}

		srv := &http.Server{
			Addr:    a.cfg.Server.Addr,
			Handler: handler,
			// Request contexts end with the signal so open event streams let go.
			BaseContext: func(net.Listener) context.Context { return sigCtx },
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("server listening", "addr", srv.Addr, "items", a.deck.Len())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case <-sigCtx.Done():
			a.logger.Info("shutting down server", "signal", sigCtx.Signal())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().String("redis", "", "Redis address for change publishing (overrides redis.addr)")
}
