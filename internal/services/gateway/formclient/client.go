// Package formclient adapts gateway submissions to the form.v1 RPC and
// turns every outcome, transport failures included, into an envelope.
package formclient

import (
	"context"
	"fmt"
	"time"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	"github.com/louisbranch/formrelay/internal/platform/envelope"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Outcome classifies a submission result for the caller.
type Outcome string

const (
	// OutcomeAccepted means the service stored the submission.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeRejected means a validation rule failed.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means an internal, transport or local failure.
	OutcomeFailed Outcome = "failed"
)

// Submission is the gateway's JSON shape of a form submission.
type Submission struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int32  `json:"age"`
	Email     string `json:"email"`
}

// Result pairs the envelope returned to the caller with its outcome.
type Result struct {
	Envelope *formv1.SubmitFormResponse
	Outcome  Outcome
}

// Client submits forms through a form.v1 client.
type Client struct {
	rpc    formv1.FormServiceClient
	logger *logging.Logger
	clock  func() time.Time
}

// New creates a Client. A nil logger falls back to the default logger.
func New(rpc formv1.FormServiceClient, logger *logging.Logger) *Client {
	return &Client{rpc: rpc, logger: logger.OrDefault(), clock: time.Now}
}

// Submit performs one synchronous SubmitForm call. It never fails: errors
// come back as ERROR envelopes with OutcomeFailed.
func (c *Client) Submit(ctx context.Context, in Submission) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = c.failed(ctx, fmt.Sprintf("unexpected gateway error: %v", r), fmt.Errorf("panic: %v", r))
		}
	}()

	if c == nil || c.rpc == nil {
		return c.failed(ctx, "unexpected gateway error: form client is not configured", nil)
	}

	c.logger.InfoContext(ctx, "sending form submission",
		"first_name", in.FirstName,
		"last_name", in.LastName,
		"age", in.Age,
		"email", in.Email,
	)

	var header metadata.MD
	resp, err := c.rpc.SubmitForm(ctx, &formv1.SubmitFormRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Age:       in.Age,
		Email:     in.Email,
	}, grpc.Header(&header))
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return c.failed(ctx, "error communicating with form service: "+st.Message(), err)
		}
		return c.failed(ctx, "unexpected gateway error: "+err.Error(), err)
	}
	if resp == nil {
		return c.failed(ctx, "unexpected gateway error: empty response from form service", nil)
	}

	outcome := OutcomeRejected
	switch {
	case envelope.IsOK(resp):
		outcome = OutcomeAccepted
	case internalFailure(header):
		outcome = OutcomeFailed
	}
	c.logger.InfoContext(ctx, "form submission answered",
		logging.Outcome(string(outcome)),
		"status", resp.GetStatus(),
		"message", resp.GetMessage(),
	)
	return Result{Envelope: resp, Outcome: outcome}
}

func (c *Client) failed(ctx context.Context, message string, err error) Result {
	now := time.Now()
	if c != nil && c.clock != nil {
		now = c.clock()
	}
	logger := logging.Default()
	if c != nil {
		logger = c.logger.OrDefault()
	}
	logger.ErrorContext(ctx, "form submission failed", "message", message, logging.Error(err))
	return Result{Envelope: envelope.Error(message, now), Outcome: OutcomeFailed}
}

func internalFailure(header metadata.MD) bool {
	for _, value := range header.Get(envelope.MetadataFailure) {
		if value == envelope.FailureInternal {
			return true
		}
	}
	return false
}
