package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/internal/presentation/tui"
	httpAdapter "github.com/aretw0/conform/pkg/adapters/http"
	"github.com/aretw0/conform/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation server",
	Long: `Starts conform as an HTTP server exposing validation, the schema store,
a server-sent event stream of validation results and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		store, closeStore, err := cli.OpenStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(reg)
		streams := httpAdapter.NewStreamManager()

		hooks := observability.ChainHooks(
			metrics.Hooks(),
			streams.Hooks(),
			observability.LoggingHooks(logger),
		)
		engine, err := cli.CreateEngine(cfg, store, logger, hooks)
		if err != nil {
			return err
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithGatherer(reg),
		}
		if cfg.Validation.StrictRules {
			opts = append(opts, httpAdapter.WithStrictRules())
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewHandler(engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout(), true)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting conform server", "addr", srv.Addr, "store", cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Conform server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on (overrides config)")
}
