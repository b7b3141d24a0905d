// Package main starts the form gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	formcmd "github.com/louisbranch/formrelay/internal/cmd/form"
	"github.com/louisbranch/formrelay/internal/platform/config"
)

func main() {
	cfg, err := formcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	config.ExitOnError(err, "parse flags")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = formcmd.Run(ctx, cfg)
	stop()
	config.ExitOnError(err, "failed to serve")
}
