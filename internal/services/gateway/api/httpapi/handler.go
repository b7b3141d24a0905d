// Package httpapi serves the gateway REST surface and relays submissions to
// the form service.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	"github.com/louisbranch/formrelay/internal/platform/envelope"
	"github.com/louisbranch/formrelay/internal/platform/i18n"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/services/gateway/formclient"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// HealthMessage is the body of GET /api/health.
	HealthMessage = "form gateway is operational"

	maxBodyBytes = 1 << 20
)

// Submitter relays one submission. It never fails; see formclient.Client.
type Submitter interface {
	Submit(ctx context.Context, in formclient.Submission) formclient.Result
}

// ReadinessChecker reports whether the form service can take submissions.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// ReadinessFunc adapts a function to ReadinessChecker.
type ReadinessFunc func(ctx context.Context) error

// Ready implements ReadinessChecker.
func (fn ReadinessFunc) Ready(ctx context.Context) error { return fn(ctx) }

// Config wires a Handler.
type Config struct {
	Submitter Submitter
	Readiness ReadinessChecker
	Metrics   *Metrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	RateLimit      RateLimit
	Logger         *logging.Logger
}

// Handler serves the gateway routes.
type Handler struct {
	submitter      Submitter
	readiness      ReadinessChecker
	metrics        *Metrics
	metricsHandler http.Handler
	limiter        *rateLimiter
	logger         *logging.Logger
	clock          func() time.Time
}

// New creates a Handler from cfg.
func New(cfg Config) *Handler {
	return &Handler{
		submitter:      cfg.Submitter,
		readiness:      cfg.Readiness,
		metrics:        cfg.Metrics,
		metricsHandler: cfg.MetricsHandler,
		limiter:        newRateLimiter(cfg.RateLimit),
		logger:         cfg.Logger.OrDefault(),
		clock:          time.Now,
	}
}

// Routes returns the gateway router wrapped with tracing.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(h.requestID)
	r.Use(h.instrument)
	r.Use(h.recoverer)

	r.Route("/api", func(r chi.Router) {
		r.With(h.rateLimit).Post("/form", h.submitForm)
		r.Get("/health", h.health)
		r.Get("/ready", h.ready)
	})
	if h.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", h.metricsHandler)
	}
	return otelhttp.NewHandler(r, "gateway")
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	var in formclient.Submission
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&in); err != nil {
		h.logger.WarnContext(r.Context(), "decode form submission", logging.Error(err))
		h.writeEnvelope(w, http.StatusBadRequest, envelope.Error(decodeErrorMessage(err), h.clock()))
		return
	}

	ctx := i18n.OutgoingContext(r.Context(), i18n.ResolveTag(r))
	result := h.submitter.Submit(ctx, in)
	h.writeEnvelope(w, statusForOutcome(result.Outcome), result.Envelope)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, HealthMessage)
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if h.readiness == nil {
		h.writeEnvelope(w, http.StatusServiceUnavailable, envelope.Error("form service readiness is not configured", h.clock()))
		return
	}
	if err := h.readiness.Ready(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "form service not ready", logging.Error(err))
		h.writeEnvelope(w, http.StatusServiceUnavailable, envelope.Error("form service is not ready: "+err.Error(), h.clock()))
		return
	}
	h.writeEnvelope(w, http.StatusOK, envelope.OK("form service is ready", h.clock()))
}

// statusForOutcome maps an adapter outcome to the HTTP status code.
func statusForOutcome(outcome formclient.Outcome) int {
	switch outcome {
	case formclient.OutcomeAccepted:
		return http.StatusOK
	case formclient.OutcomeRejected:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeErrorMessage(err error) string {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Sprintf("invalid request body: larger than %d bytes", maxBytesErr.Limit)
	}
	if errors.Is(err, io.EOF) {
		return "invalid request body: empty"
	}
	return "invalid request body: " + err.Error()
}

// envelopeJSON keeps every field on the wire, including empty messages.
type envelopeJSON struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, code int, resp *formv1.SubmitFormResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(envelopeJSON{
		Status:    resp.GetStatus(),
		Message:   resp.GetMessage(),
		Timestamp: resp.GetTimestamp(),
	}); err != nil {
		h.logger.Error("write envelope", logging.Error(err))
	}
}
