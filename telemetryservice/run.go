// Package telemetryservice wires and runs the deskwatch telemetry HTTP
// service.
package telemetryservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/deskwatch/deskwatch/internal/api"
	"github.com/deskwatch/deskwatch/internal/api/recovery"
	"github.com/deskwatch/deskwatch/internal/config"
	"github.com/deskwatch/deskwatch/internal/embeddings"
	"github.com/deskwatch/deskwatch/internal/factory"
	"github.com/deskwatch/deskwatch/internal/health"
	"github.com/deskwatch/deskwatch/internal/logger"
	"github.com/deskwatch/deskwatch/internal/services"
	"github.com/deskwatch/deskwatch/internal/store"
	"github.com/deskwatch/deskwatch/internal/vectorindex"
)

// Run starts the telemetry service HTTP server and blocks until shutdown or
// error.
func Run() error {
	log := logger.New("deskwatch-server")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("milvus_addr", cfg.MilvusAddr).
		Str("milvus_collection", cfg.MilvusCollection).
		Str("embed_model", cfg.EmbedModel).
		Msg("Telemetry service starting")

	ctx, stop := newServerContext()
	defer stop()

	st, idx, embProvider, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	router := buildRouter(st, idx, embProvider)

	svcHealth := startHealthCheckers(ctx, cfg, log, st, idx, embProvider)
	api.BindServiceHealth(svcHealth.IsHealthy)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs required components and fails fast when one is
// missing.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, vectorindex.Index, embeddings.Provider, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Metadata store unavailable")
		return nil, nil, nil, err
	}

	idx, err := factory.NewVectorIndex(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Vector index unavailable")
		return nil, nil, nil, err
	}

	embProvider := factory.NewEmbeddingProvider(ctx, cfg, log)
	if embProvider == nil {
		return nil, nil, nil, fmt.Errorf("embedding provider not configured")
	}
	return st, idx, embProvider, nil
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, idx vectorindex.Index, embProvider embeddings.Provider) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware, api.RequestID, api.RequestLog)

	usageSvc := services.NewUsageService(st, idx, embProvider)

	usage := api.NewUsageHandler(usageSvc)
	root.HandleFunc("/api/usage", usage.LogUsage).Methods("POST")

	search := api.NewSearchHandler(usageSvc)
	root.HandleFunc("/api/search", search.Search).Methods("GET")

	healthHandler := api.NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	root.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return root
}

// startHealthCheckers starts component checkers and the service-level
// aggregator. Components that do not expose a health ping are skipped.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, idx vectorindex.Index, embProvider embeddings.Provider) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	var checkers []health.Checker
	add := func(name string, c interface{}) {
		p, ok := c.(health.Pinger)
		if !ok {
			return
		}
		hc := health.NewPingChecker(name, p, log, probeTimeout)
		go hc.Start(ctx, interval)
		checkers = append(checkers, hc)
	}
	add("store", st)
	add("vector-index", idx)
	add("embedder", embProvider)

	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context bound to SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
