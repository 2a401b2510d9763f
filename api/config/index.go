// Package handler is the Vercel serverless entry for /api/config.
package handler

import (
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/AmadorHeE/configsvc/internal/clientconfig"
	"github.com/AmadorHeE/configsvc/internal/logging"
	"github.com/AmadorHeE/configsvc/internal/web"
)

var (
	once     sync.Once
	instance http.Handler
)

// setup runs on cold start. The environment is read here and never again for
// the lifetime of the instance.
func setup() {
	logger, err := logging.NewBaseLogger()
	if err != nil {
		logger = zap.NewNop()
	}

	cfg, err := clientconfig.Load()
	if err != nil {
		logger.Error("load client config", zap.Error(err))
		instance = failed()
		return
	}

	h, err := clientconfig.NewHandler(cfg, clientconfig.NewZapReporter(logger))
	if err != nil {
		logger.Error("build client config handler", zap.Error(err))
		instance = failed()
		return
	}
	instance = h
}

func failed() http.Handler {
	return web.MakeHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return web.APIError{
			Code:    http.StatusInternalServerError,
			Message: clientconfig.PublicErrorMessage,
		}
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	instance.ServeHTTP(w, r)
}
