// Package server wires the form runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	platformgrpc "github.com/louisbranch/formrelay/internal/platform/grpc"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/platform/metrics"
	"github.com/louisbranch/formrelay/internal/platform/timeouts"
	formservice "github.com/louisbranch/formrelay/internal/services/form/api/grpc/form"
	"github.com/louisbranch/formrelay/internal/services/form/events"
	"github.com/louisbranch/formrelay/internal/services/form/storage/memory"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds the form server runtime settings.
type Config struct {
	// Addr is the gRPC listen address.
	Addr string
	// MetricsAddr serves /metrics when set.
	MetricsAddr string
	// NATSURL enables accepted-submission events when set.
	NATSURL     string
	NATSSubject string
	Logger      *logging.Logger
}

// Server hosts the form gRPC API and its in-memory store.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	metrics    *metrics.Server
	publisher  events.Publisher
	logger     *logging.Logger
}

// New creates a configured form server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithConfig(Config{Addr: fmt.Sprintf(":%d", port)})
}

// NewWithAddr creates a configured form server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	return NewWithConfig(Config{Addr: addr})
}

// NewWithConfig creates a form server from cfg. Each server owns a fresh
// store, so ids start at 1 per process.
func NewWithConfig(cfg Config) (*Server, error) {
	logger := cfg.Logger.OrDefault()

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	var publisher events.Publisher = events.Nop{}
	if url := strings.TrimSpace(cfg.NATSURL); url != "" {
		natsPublisher, err := events.NewNATSPublisher(events.NATSConfig{URL: url, Subject: cfg.NATSSubject}, logger)
		if err != nil {
			_ = listener.Close()
			return nil, err
		}
		publisher = natsPublisher
	}

	registry := metrics.NewRegistry()
	var metricsServer *metrics.Server
	if addr := strings.TrimSpace(cfg.MetricsAddr); addr != "" {
		metricsServer, err = metrics.Listen(addr, registry, timeouts.ReadHeader, timeouts.Shutdown)
		if err != nil {
			_ = listener.Close()
			_ = publisher.Close()
			return nil, err
		}
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			platformgrpc.RequestIDUnaryServerInterceptor(),
			platformgrpc.RecoveryUnaryServerInterceptor(logger),
		),
	)
	apiService := formservice.NewService(memory.New(),
		formservice.WithPublisher(publisher),
		formservice.WithMetrics(formservice.NewMetrics(registry.Registerer())),
		formservice.WithLogger(logger),
	)
	healthServer := health.NewServer()
	formv1.RegisterFormServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(formv1.FormService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		metrics:    metricsServer,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// MetricsAddr returns the metrics listener address, or "" when disabled.
func (s *Server) MetricsAddr() string {
	if s == nil || s.metrics == nil {
		return ""
	}
	return s.metrics.Addr()
}

// Run creates and serves a form server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := NewWithConfig(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server, and the metrics server when configured,
// until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	group, groupCtx := errgroup.WithContext(ctx)
	if s.metrics != nil {
		group.Go(func() error {
			return s.metrics.Serve(groupCtx)
		})
	}
	group.Go(func() error {
		return s.serveGRPC(groupCtx)
	})
	return group.Wait()
}

func (s *Server) serveGRPC(ctx context.Context) error {
	s.logger.Info("form server listening", logging.Addr(s.listener.Addr().String()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases form server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("close event publisher", logging.Error(err))
		}
	}
}
