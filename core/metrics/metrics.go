// Package metrics exposes the process Prometheus registry over HTTP.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m3rciful/shopbot/core/logger"
)

// Options configures the metrics listener.
type Options struct {
	Listen   string
	Path     string
	Gatherer prometheus.Gatherer
}

// Handler returns the mux exposing opts.Gatherer on opts.Path.
func Handler(opts Options) http.Handler {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle(opts.path(), promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (o Options) path() string {
	if o.Path == "" {
		return "/metrics"
	}
	return o.Path
}

// Serve blocks serving metrics until ctx is done. An empty Listen is a no-op.
func Serve(ctx context.Context, opts Options) error {
	if opts.Listen == "" {
		return nil
	}
	srv := &http.Server{
		Addr:              opts.Listen,
		Handler:           Handler(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info(ctx, logger.ComponentMetrics, "listen",
		slog.String("listen", opts.Listen),
		slog.String("path", opts.path()),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
