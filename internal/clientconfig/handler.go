package clientconfig

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AmadorHeE/configsvc/internal/web"
)

// PublicErrorMessage is all a caller learns about a misconfigured server.
const PublicErrorMessage = "Server configuration error. Required environment variables are missing."

const instrumentationName = "github.com/AmadorHeE/configsvc/internal/clientconfig"

var (
	outcomeOK      = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "ok")))
	outcomeMissing = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "missing_config")))
)

type Payload struct {
	SupabaseURL     string `json:"supabaseUrl"`
	SupabaseAnonKey string `json:"supabaseAnonKey"`
}

type options struct {
	meterProvider metric.MeterProvider
}

type Option func(*options)

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// Handler answers every request, whatever its method or body, with the
// configured payload or the configuration error envelope. It holds no
// mutable state and is safe for concurrent use.
type Handler struct {
	payload  Payload
	invalid  error
	reporter ErrorReporter
	requests metric.Int64Counter
	serve    http.HandlerFunc
}

func NewHandler(cfg Config, reporter ErrorReporter, opts ...Option) (*Handler, error) {
	o := options{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	requests, err := o.meterProvider.Meter(instrumentationName).Int64Counter(
		"clientconfig.requests",
		metric.WithDescription("Client configuration requests by outcome."),
	)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		payload: Payload{
			SupabaseURL:     cfg.SupabaseURL,
			SupabaseAnonKey: cfg.SupabaseAnonKey,
		},
		invalid:  cfg.Validate(),
		reporter: reporter,
		requests: requests,
	}
	h.serve = web.MakeHandlerFunc(h.handle)
	return h, nil
}

// Resolve returns the payload to serve. A misconfiguration is reported once
// per call and turned into a 500 web.APIError carrying PublicErrorMessage.
func (h *Handler) Resolve(ctx context.Context) (Payload, error) {
	if h.invalid != nil {
		h.reporter.ReportError(ctx, h.invalid)
		h.requests.Add(ctx, 1, outcomeMissing)
		return Payload{}, web.APIError{
			Code:    http.StatusInternalServerError,
			Message: PublicErrorMessage,
		}
	}

	h.requests.Add(ctx, 1, outcomeOK)
	return h.payload, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	payload, err := h.Resolve(r.Context())
	if err != nil {
		return err
	}
	return web.WriteJSON(w, http.StatusOK, payload)
}
