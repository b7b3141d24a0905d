package config

import (
	"fmt"
	"io"
	"os"
)

var (
	exitWriter io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exitf prints a formatted fatal message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(exitWriter, format+"\n", args...)
	exitFunc(1)
}

// ExitOnError calls Exitf with the error when err is non-nil.
func ExitOnError(err error, context string) {
	if err == nil {
		return
	}
	if context == "" {
		Exitf("%v", err)
		return
	}
	Exitf("%s: %v", context, err)
}
