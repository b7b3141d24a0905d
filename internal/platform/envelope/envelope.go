// Package envelope builds the status/message/timestamp replies shared by the
// form service and the gateway.
package envelope

import (
	"time"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
)

// Envelope statuses.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// MetadataFailure is the response header the form service sets when an ERROR
// envelope comes from an internal failure rather than a validation rule.
const (
	MetadataFailure = "x-form-failure"
	FailureInternal = "internal"
)

// OK returns a successful envelope stamped with now.
func OK(message string, now time.Time) *formv1.SubmitFormResponse {
	return build(StatusOK, message, now)
}

// Error returns a failed envelope stamped with now.
func Error(message string, now time.Time) *formv1.SubmitFormResponse {
	return build(StatusError, message, now)
}

// IsOK reports whether resp carries the OK status.
func IsOK(resp *formv1.SubmitFormResponse) bool {
	return resp.GetStatus() == StatusOK
}

func build(status, message string, now time.Time) *formv1.SubmitFormResponse {
	return &formv1.SubmitFormResponse{
		Status:    status,
		Message:   message,
		Timestamp: now.UnixMilli(),
	}
}
