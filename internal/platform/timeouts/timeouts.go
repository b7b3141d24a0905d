// Package timeouts defines the timeout constants shared by the form service,
// the gateway and formctl.
package timeouts

import "time"

// GRPCDial caps the wait time when checking a gRPC peer's health at startup.
const GRPCDial = 2 * time.Second

// GRPCRequest caps one gateway-to-form-service call. The deadline is owned
// by the transport; the adapter never retries.
const GRPCRequest = 5 * time.Second

// HealthProbe caps a single readiness probe against the form service.
const HealthProbe = time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
