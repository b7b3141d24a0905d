package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/formrelay/internal/platform/config"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/platform/otel"
	"github.com/louisbranch/formrelay/internal/platform/timeouts"
)

// Service identifiers for command startup telemetry and CLI naming consistency.
const (
	ServiceForm    = "form"
	ServiceGateway = "gateway"
	ServiceFormctl = "formctl"
)

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// NewLogger builds the service logger from FORMRELAY_LOG_* and installs it as
// the process default.
func NewLogger(service string) (*logging.Logger, error) {
	return NewLoggerTo(os.Stdout, service, "")
}

// NewLoggerTo is NewLogger writing to w. fallbackLevel replaces the default
// level when FORMRELAY_LOG_LEVEL is unset.
func NewLoggerTo(w io.Writer, service string, fallbackLevel string) (*logging.Logger, error) {
	var cfg logging.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if _, set := os.LookupEnv(config.EnvPrefix + "LOG_LEVEL"); !set && fallbackLevel != "" {
		cfg.Level = fallbackLevel
	}
	logger := logging.FromConfig(w, cfg, strings.TrimSpace(service))
	logging.SetDefault(logger)
	return logger, nil
}

// RunWithTelemetry configures observability and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures observability and executes a service run loop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = timeouts.Shutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logging.Default().Error("otel shutdown", logging.Service(service), logging.Error(err))
		}
	}()
	return run(ctx)
}
