// Package gateway parses gateway flags and launches the REST gateway.
package gateway

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/formrelay/internal/platform/cmd"
	"github.com/louisbranch/formrelay/internal/services/gateway/api/httpapi"
	server "github.com/louisbranch/formrelay/internal/services/gateway/app"
)

// Config holds gateway command configuration.
type Config struct {
	HTTPAddr       string  `env:"GATEWAY_HTTP_ADDR" envDefault:":8080"`
	FormAddr       string  `env:"FORM_ADDR" envDefault:"localhost:8090"`
	RateLimitRPS   float64 `env:"GATEWAY_RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"GATEWAY_RATE_LIMIT_BURST" envDefault:"20"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.FormAddr, "form-addr", cfg.FormAddr, "Form service gRPC address")
	fs.Float64Var(&cfg.RateLimitRPS, "rate-limit-rps", cfg.RateLimitRPS, "Per-client submissions per second (0 disables)")
	fs.IntVar(&cfg.RateLimitBurst, "rate-limit-burst", cfg.RateLimitBurst, "Per-client submission burst")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the gateway HTTP server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceGateway)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGateway, func(context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:  cfg.HTTPAddr,
			FormAddr:  cfg.FormAddr,
			RateLimit: httpapi.RateLimit{RPS: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			Logger:    logger,
		})
	})
}
