// Package server wires the gateway HTTP process and its form service client.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	platformgrpc "github.com/louisbranch/formrelay/internal/platform/grpc"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/platform/metrics"
	"github.com/louisbranch/formrelay/internal/platform/timeouts"
	"github.com/louisbranch/formrelay/internal/services/gateway/api/httpapi"
	"github.com/louisbranch/formrelay/internal/services/gateway/formclient"
	gogrpc "google.golang.org/grpc"
)

// Config holds the gateway runtime settings.
type Config struct {
	HTTPAddr          string
	FormAddr          string
	RateLimit         httpapi.RateLimit
	GRPCDialTimeout   time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Logger            *logging.Logger
}

// Server hosts the gateway HTTP surface.
//
// The form service connection is lazy: the gateway starts and answers
// /api/health while the form service is down, and submissions made in the
// meantime come back as transport-failure envelopes.
type Server struct {
	listener        net.Listener
	httpServer      *http.Server
	formConn        *gogrpc.ClientConn
	shutdownTimeout time.Duration
	logger          *logging.Logger
}

// NewServer builds a configured gateway server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	formAddr := strings.TrimSpace(config.FormAddr)
	if formAddr == "" {
		return nil, errors.New("form service address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}
	if config.GRPCDialTimeout <= 0 {
		config.GRPCDialTimeout = timeouts.GRPCDial
	}
	logger := config.Logger.OrDefault()

	formConn, err := platformgrpc.NewClient(formAddr)
	if err != nil {
		return nil, fmt.Errorf("create form service client: %w", err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, config.GRPCDialTimeout)
	if err := platformgrpc.WaitForHealth(waitCtx, formConn, "", nil); err != nil {
		logger.Warn("form service not ready at startup, continuing", logging.Addr(formAddr), logging.Error(err))
	}
	cancel()

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = formConn.Close()
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}

	registry := metrics.NewRegistry()
	handler := httpapi.New(httpapi.Config{
		Submitter: formclient.New(formv1.NewFormServiceClient(formConn), logger),
		Readiness: httpapi.ReadinessFunc(func(ctx context.Context) error {
			return platformgrpc.CheckHealth(ctx, formConn, "")
		}),
		Metrics:        httpapi.NewMetrics(registry.Registerer()),
		MetricsHandler: registry.Handler(),
		RateLimit:      config.RateLimit,
		Logger:         logger,
	})

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           handler.Routes(),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		formConn:        formConn,
		shutdownTimeout: config.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// Addr returns the bound HTTP address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a gateway server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(ctx, config)
	if err != nil {
		return fmt.Errorf("init gateway server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("serve gateway: %w", err)
	}
	return nil
}

// Serve runs the HTTP server until the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("gateway server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("gateway listening", logging.Addr(s.Addr()))
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.formConn != nil {
		if err := s.formConn.Close(); err != nil {
			s.logger.Error("close form gRPC connection", logging.Error(err))
		}
	}
}
