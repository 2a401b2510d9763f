package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/AmadorHeE/configsvc/internal/clientconfig"
	"github.com/AmadorHeE/configsvc/internal/logging"
	"github.com/AmadorHeE/configsvc/internal/telemetry"
	"github.com/AmadorHeE/configsvc/internal/web"
)

type GetReadinessResponse struct {
	Message string `json:"message"`
}

type APIServer struct {
	isShuttingDown atomic.Bool

	Config Config
	Logger *zap.Logger

	clientConfig *clientconfig.Handler
	server       *http.Server

	shutdownFuncs []func(context.Context) error
}

func NewAPIServer(ctx context.Context) (*APIServer, error) {
	// load config from environment variables
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	// initialize OpenTelemetry
	otelProvider, err := telemetry.NewProvider(ctx, config.Telemetry())
	if err != nil {
		return nil, err
	}
	otelProvider.Setup()

	// initialize base logger, mirrored into the OpenTelemetry log pipeline
	logger, err := logging.NewBaseLogger(otelProvider.LogCore(serviceName))
	if err != nil {
		return nil, errors.Join(err, otelProvider.Shutdown(ctx))
	}

	clientCfg, err := clientconfig.Load()
	if err != nil {
		return nil, errors.Join(err, otelProvider.Shutdown(ctx))
	}
	if err := clientCfg.Validate(); err != nil {
		// Not fatal: every request to /api/config reports it again.
		logger.Warn("client configuration incomplete", zap.Error(err))
	}

	a, err := newAPIServer(config, logger, clientCfg)
	if err != nil {
		return nil, errors.Join(err, otelProvider.Shutdown(ctx))
	}

	shutdownLogger := func(ctx context.Context) error {
		return logger.Sync()
	}
	a.shutdownFuncs = append(a.shutdownFuncs, shutdownLogger, otelProvider.Shutdown)

	return a, nil
}

func newAPIServer(config Config, logger *zap.Logger, clientCfg clientconfig.Config) (*APIServer, error) {
	clientConfig, err := clientconfig.NewHandler(clientCfg, clientconfig.NewZapReporter(logger))
	if err != nil {
		return nil, err
	}

	a := &APIServer{
		Config:       config,
		Logger:       logger,
		clientConfig: clientConfig,
	}
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: a.Handler(),
	}
	return a, nil
}

// Handler returns the instrumented route table.
func (a *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", web.MakeHandlerFunc(a.handleReadiness)) // Setup readiness endpoint
	mux.Handle("/api/config", a.clientConfig)                          // Any method reaches the same payload

	return otelhttp.NewHandler(mux, "http.server")
}

// Run serves until Shutdown. Request contexts derive from ctx, so cancelling
// it aborts in-flight requests.
func (a *APIServer) Run(ctx context.Context) error {
	a.server.BaseContext = func(_ net.Listener) context.Context {
		return ctx
	}

	return a.server.ListenAndServe()
}

// Marks the server as shutting down.
func (a *APIServer) InitiateShutdown() {
	a.isShuttingDown.Store(true)
}

// Shutdown the HTTP server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// ShutdownResources runs all registered shutdown functions and aggregates their errors.
func (a *APIServer) ShutdownResources(ctx context.Context) error {
	var err error
	for _, fn := range a.shutdownFuncs {
		err = errors.Join(err, fn(ctx))
	}
	a.shutdownFuncs = nil
	return err
}

func (a *APIServer) handleReadiness(w http.ResponseWriter, r *http.Request) error {
	if r.Method == http.MethodGet {
		return a.handleGetReadiness(w, r)
	}

	return web.APIError{
		Code:    http.StatusMethodNotAllowed,
		Message: fmt.Sprintf("method not allowed: %s", r.Method),
	}
}

func (a *APIServer) handleGetReadiness(w http.ResponseWriter, _ *http.Request) error {
	if !a.isShuttingDown.Load() {
		return web.WriteJSON(
			w,
			http.StatusOK,
			GetReadinessResponse{
				Message: "ok",
			},
		)
	}

	return web.APIError{
		Code:    http.StatusServiceUnavailable,
		Message: "the server is shutting down",
	}
}
