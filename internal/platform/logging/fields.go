package logging

import "log/slog"

// Field names shared across services.
const (
	FieldService      = "service"
	FieldRequestID    = "request_id"
	FieldSubmissionID = "submission_id"
	FieldOutcome      = "outcome"
	FieldRule         = "rule"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatus       = "status"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldAddr         = "addr"
)

// Service returns an attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// RequestID returns an attribute for the request id.
func RequestID(id string) slog.Attr {
	return slog.String(FieldRequestID, id)
}

// SubmissionID returns an attribute for an assigned submission id.
func SubmissionID(id int64) slog.Attr {
	return slog.Int64(FieldSubmissionID, id)
}

// Outcome returns an attribute for a submission outcome.
func Outcome(outcome string) slog.Attr {
	return slog.String(FieldOutcome, outcome)
}

// Rule returns an attribute for a violated validation rule.
func Rule(rule string) slog.Attr {
	return slog.String(FieldRule, rule)
}

// Method returns an attribute for an HTTP or RPC method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns an attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns an attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns an attribute for a duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Addr returns an attribute for a network address.
func Addr(addr string) slog.Attr {
	return slog.String(FieldAddr, addr)
}

// Error returns an attribute for an error. A nil error renders as empty.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}
