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

	"go.uber.org/zap"
)

const (
	_shutdownPeriod      = 15 * time.Second
	_shutdownHardPeriod  = 3 * time.Second
	_readinessDrainDelay = 5 * time.Second
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM) // It returns a context that is canceled when one of the specified signals is received
	defer stop()

	api, err := NewAPIServer(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start %s: %v\n", serviceName, err)
		os.Exit(1)
	}
	logger := api.Logger

	// By creating a separate context for ongoing requests, we can control their lifecycle during shutdown
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())

	go func() {
		logger.Info("Server starting", zap.Int("port", api.Config.Port), zap.String("env", api.Config.Env))
		if err := api.Run(ongoingCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done() // Block until a signal is received
	stop()           // Stop receiving any more signals

	api.InitiateShutdown() // Mark the server as shutting down
	logger.Info("Receiving shutdown signal, shutting down.")

	time.Sleep(_readinessDrainDelay) // Give time for readiness check to propagate
	logger.Info("Readiness check propagated, now waiting for ongoing requests to finish.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), _shutdownPeriod)
	defer cancel()

	err = api.Shutdown(shutdownCtx)
	stopOngoingGracefully() // Cancel ongoing requests context
	if err != nil {
		logger.Error("Failed to wait for ongoing requests to finish, waiting for forced cancellation")
		time.Sleep(_shutdownHardPeriod)
	}

	logger.Info("Server shut down gracefully.")

	resourcesCtx, cancelResources := context.WithTimeout(context.Background(), _shutdownHardPeriod)
	defer cancelResources()
	if err := api.ShutdownResources(resourcesCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to release resources: %v\n", err)
	}
}
