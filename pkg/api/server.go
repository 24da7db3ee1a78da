// Package api is the read-only diagnostics/metrics HTTP surface
// (SPEC_FULL.md §4.J). It runs alongside the line-oriented wire
// protocol server, never on the same listener, and exposes no mutating
// endpoint — every write to the store goes through pkg/worker's command
// loop only.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer builds the diagnostics router and starts listening on
// cfg.Bind. It returns once the listener is closed (normally via
// ctx cancellation triggering httpServer.Shutdown from the caller).
// metrics is shared with the rest of the process (pkg/di wires the same
// instance into the worker command loop) so /metrics reports the
// counters the hot path actually increments.
func StartServer(ctx context.Context, store StoreInspector, workers WorkerCounter, metrics *Metrics, cfg ServerConfig) error {
	server := NewServer(store, workers, metrics)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/explain", metrics.InstrumentHandler("GET", "/api/v1/explain", server.handleExplain))
	})

	httpServer := &http.Server{Addr: cfg.Bind, Handler: r}

	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("diagnostics endpoint listening on %s\n", cfg.Bind)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
