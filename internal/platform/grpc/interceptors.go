package grpc

import (
	"context"
	"runtime/debug"

	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/platform/requestctx"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDUnaryClientInterceptor copies the context request id into
// outgoing metadata.
func RequestIDUnaryClientInterceptor() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		if reqID := requestctx.RequestIDFromContext(ctx); reqID != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, requestctx.MetadataRequestID, reqID)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// RequestIDUnaryServerInterceptor stores the inbound request id in the
// handler context, minting one when the caller sent none.
func RequestIDUnaryServerInterceptor() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		return handler(requestctx.WithRequestID(ctx, incomingRequestID(ctx)), req)
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestctx.MetadataRequestID); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return requestctx.NewRequestID()
}

// RecoveryUnaryServerInterceptor turns handler panics into codes.Internal so
// a single bad call never takes the server down.
func RecoveryUnaryServerInterceptor(logger *logging.Logger) gogrpc.UnaryServerInterceptor {
	logger = logger.OrDefault()
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "grpc handler panic",
					logging.Method(info.FullMethod),
					"panic", r,
					"stack", string(debug.Stack()),
				)
				resp = nil
				err = status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}
