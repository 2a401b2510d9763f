package clientconfig

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/AmadorHeE/configsvc/internal/logging"
)

// ErrorReporter receives the diagnostic for a request that could not be served.
type ErrorReporter interface {
	ReportError(ctx context.Context, err error)
}

type ZapReporter struct {
	logger *zap.Logger
}

func NewZapReporter(logger *zap.Logger) *ZapReporter {
	return &ZapReporter{logger: logger}
}

func (r *ZapReporter) ReportError(ctx context.Context, err error) {
	fields := []zap.Field{zap.Error(err)}

	var missing *MissingConfigError
	if errors.As(err, &missing) {
		fields = append(fields, zap.Strings("missing", missing.Vars))
	}

	logging.WithTrace(ctx, r.logger).Error("server configuration error", fields...)
}
