// Package main starts the REST gateway process lifecycle.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	gatewaycmd "github.com/louisbranch/formrelay/internal/cmd/gateway"
	"github.com/louisbranch/formrelay/internal/platform/config"
)

func main() {
	cfg, err := gatewaycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	config.ExitOnError(err, "parse flags")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = gatewaycmd.Run(ctx, cfg)
	stop()
	config.ExitOnError(err, "failed to serve")
}
