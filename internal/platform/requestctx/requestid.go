// Package requestctx carries per-request identity across HTTP and gRPC hops.
package requestctx

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderRequestID is the HTTP header carrying the request id.
	HeaderRequestID = "X-Request-ID"
	// MetadataRequestID is the gRPC metadata key carrying the request id.
	MetadataRequestID = "x-request-id"
)

type requestIDContextKey struct{}

// WithRequestID stores a request identifier in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, strings.TrimSpace(requestID))
}

// RequestIDFromContext returns the request identifier stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// NewRequestID mints a random request identifier.
func NewRequestID() string {
	return uuid.NewString()
}
