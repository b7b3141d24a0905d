package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/formrelay/internal/platform/envelope"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/platform/requestctx"
)

// requestID propagates X-Request-ID, minting one when the caller sent none.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestctx.HeaderRequestID)
		if reqID == "" {
			reqID = requestctx.NewRequestID()
		}
		w.Header().Set(requestctx.HeaderRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), reqID)))
	})
}

// recoverer answers a panicking handler with a 500 ERROR envelope.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.logger.ErrorContext(r.Context(), "gateway handler panic",
				logging.Method(r.Method),
				logging.Path(r.URL.Path),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			h.writeEnvelope(w, http.StatusInternalServerError, envelope.Error(fmt.Sprintf("unexpected gateway error: %v", rec), h.clock()))
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit refuses submissions beyond the per-client budget.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(clientKey(r), h.clock()) {
			if h.metrics != nil {
				h.metrics.rateLimited.Inc()
			}
			h.logger.WarnContext(r.Context(), "submission rate limited", logging.Addr(r.RemoteAddr))
			w.Header().Set("Retry-After", "1")
			h.writeEnvelope(w, http.StatusTooManyRequests, envelope.Error("too many submissions, slow down", h.clock()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument logs each request and records route metrics.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		elapsed := time.Since(start)
		route := routePattern(r)
		if h.metrics != nil {
			h.metrics.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
			h.metrics.duration.WithLabelValues(route).Observe(elapsed.Seconds())
		}
		h.logger.InfoContext(r.Context(), "http request",
			logging.Method(r.Method),
			logging.Path(r.URL.Path),
			logging.Status(code),
			logging.Duration(elapsed.Milliseconds()),
		)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
