package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/midbel/barchart/dash"
	"github.com/midbel/barchart/internal/config"
	"github.com/midbel/barchart/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live dashboard",
	Long: `Serve the dashboard page and its panels.

A prerender pass fetches the first snapshot and hands it to the initial
render through the transfer cache. The board is then refreshed from the
BFF at the configured poll interval.

Example:
  dashboard serve -c dashboard.yaml -l :4000`,
	RunE: runServe,
}

var serveListen string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default is server.listen)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveListen != "" {
		settings.Server.Listen = serveListen
	}
	src, err := dash.NewHTTPSource(settings.BFF.URL, httpOptions())
	if err != nil {
		return err
	}
	cache, err := openCache(ctx, settings.Cache)
	if err != nil {
		return err
	}
	defer cache.Close()

	transfer := dash.Transfer{
		Source: src,
		Cache:  cache,
		TTL:    settings.Cache.TTL.Std(),
	}
	if _, err := transfer.Prerender(ctx); err != nil {
		logging.Warn().With(logging.ErrorField(err)).Msg("prerender failed")
	}

	board, err := dash.NewBoard(transfer, dash.Panels(layout()))
	if err != nil {
		return err
	}
	board.Mount(ctx)

	handler, err := dash.NewServer(board, settings.BFF.URL)
	if err != nil {
		return err
	}
	server := http.Server{
		Addr:              settings.Server.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go board.Run(ctx, settings.Server.Poll.Std())

	errc := make(chan error, 1)
	go func() {
		logging.Info().With(logging.Addr(server.Addr)).Msg("dashboard listening")
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Info().Msg("dashboard shutting down")
	return server.Shutdown(sctx)
}

func openCache(ctx context.Context, cfg config.CacheConfig) (dash.Cache, error) {
	switch cfg.Kind {
	case config.CacheRedis:
		opts := dash.RedisOptions{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			Prefix:   cfg.Prefix,
			Timeout:  5 * time.Second,
		}
		cache, err := dash.NewRedisCache(ctx, opts)
		if err != nil {
			return nil, err
		}
		logging.Info().With(logging.Addr(cfg.Addr), logging.Source("redis")).Msg("transfer cache ready")
		return cache, nil
	default:
		return dash.NewMemoryCache(), nil
	}
}
