// Package form parses form service flags and launches the service.
package form

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/formrelay/internal/platform/cmd"
	server "github.com/louisbranch/formrelay/internal/services/form/app"
	"github.com/louisbranch/formrelay/internal/services/form/events"
)

// Config holds form command configuration.
type Config struct {
	Port        int    `env:"FORM_PORT" envDefault:"8090"`
	MetricsAddr string `env:"FORM_METRICS_ADDR"`
	NATSURL     string `env:"FORM_NATS_URL"`
	NATSSubject string `env:"FORM_NATS_SUBJECT" envDefault:"formrelay.submissions.accepted"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The form gRPC server port")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Address serving /metrics (empty disables)")
	fs.StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "NATS URL for accepted-submission events (empty disables)")
	fs.StringVar(&cfg.NATSSubject, "nats-subject", cfg.NATSSubject, "NATS subject for accepted-submission events")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.NATSSubject == "" {
		cfg.NATSSubject = events.DefaultSubject
	}
	return cfg, nil
}

// Run starts the form gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceForm)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceForm, func(context.Context) error {
		return server.Run(ctx, server.Config{
			Addr:        fmt.Sprintf(":%d", cfg.Port),
			MetricsAddr: cfg.MetricsAddr,
			NATSURL:     cfg.NATSURL,
			NATSSubject: cfg.NATSSubject,
			Logger:      logger,
		})
	})
}
