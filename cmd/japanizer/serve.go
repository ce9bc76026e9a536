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

	"github.com/aretw0/japanizer"
	"github.com/aretw0/japanizer/internal/presentation/tui"
	httpAdapter "github.com/aretw0/japanizer/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the conversion pipeline and user preferences as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		app, err := newApp(cmd, cfg, japanizer.WithRegisterer(reg))
		if err != nil {
			return err
		}
		logger := app.Logger()

		server := &httpAdapter.Server{
			Converter:      app.Service(),
			Transliterator: app.Japanizer(),
			Preferences:    app.Preferences(),
			Logger:         logger,
		}
		if cfg.Metrics.Enabled {
			server.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           httpAdapter.NewHandler(server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, japanizer.Version)
		}

		app.Start()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting japanizer server", "addr", srv.Addr, "store", cfg.Store.Driver, "kanji", cfg.Kanji.Enabled)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			app.Close(context.Background())
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("error killing server", "error", err)
				}
			}
			if err := app.Close(ctx); err != nil {
				logger.Error("failed to release resources", "error", err)
			}
			logger.Info("japanizer server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides server.addr)")
}
