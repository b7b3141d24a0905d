// Package main runs the formctl command-line client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	formctlcmd "github.com/louisbranch/formrelay/internal/cmd/formctl"
	entrypoint "github.com/louisbranch/formrelay/internal/platform/cmd"
	"github.com/louisbranch/formrelay/internal/platform/config"
)

func main() {
	// Command output owns stdout; logs go to stderr and stay quiet by default.
	logger, err := entrypoint.NewLoggerTo(os.Stderr, entrypoint.ServiceFormctl, "warn")
	config.ExitOnError(err, "init logger")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = formctlcmd.Execute(ctx, os.Args[1:], logger)
	stop()
	config.ExitOnError(err, "formctl")
}
