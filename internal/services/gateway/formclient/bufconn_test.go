package formclient

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	"github.com/louisbranch/formrelay/internal/platform/envelope"
	platformgrpc "github.com/louisbranch/formrelay/internal/platform/grpc"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	formservice "github.com/louisbranch/formrelay/internal/services/form/api/grpc/form"
	"github.com/louisbranch/formrelay/internal/services/form/storage"
	"github.com/louisbranch/formrelay/internal/services/form/storage/memory"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1 << 20

func startFormService(t *testing.T, store storage.SubmissionStore) *Client {
	t.Helper()

	listener := bufconn.Listen(bufSize)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(platformgrpc.RequestIDUnaryServerInterceptor()))
	formv1.RegisterFormServiceServer(server, formservice.NewService(store, formservice.WithLogger(logging.Discard())))
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(platformgrpc.RequestIDUnaryClientInterceptor()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return New(formv1.NewFormServiceClient(conn), logging.Discard())
}

func TestSubmitOverRPC_Scenarios(t *testing.T) {
	client := startFormService(t, memory.New())
	ctx := context.Background()

	testCases := []struct {
		name    string
		in      Submission
		outcome Outcome
		message string
	}{
		{
			name:    "scenario A blank first name",
			in:      Submission{FirstName: "", LastName: "Lopez", Age: 30, Email: "a@b.com"},
			outcome: OutcomeRejected,
			message: "first name is required",
		},
		{
			name:    "scenario B age out of range",
			in:      Submission{FirstName: "Ana", LastName: "Diaz", Age: 200, Email: "a@b.com"},
			outcome: OutcomeRejected,
			message: "age must be between 1 and 150",
		},
		{
			name:    "scenario C invalid email",
			in:      Submission{FirstName: "Ana", LastName: "Diaz", Age: 30, Email: "not-an-email"},
			outcome: OutcomeRejected,
			message: "email is not valid",
		},
		{
			name:    "scenario D first submission",
			in:      Submission{FirstName: "Ana", LastName: "Diaz", Age: 30, Email: "a@b.com"},
			outcome: OutcomeAccepted,
			message: "Form received and processed successfully. ID: 1",
		},
		{
			name:    "scenario D repeated submission",
			in:      Submission{FirstName: "Ana", LastName: "Diaz", Age: 30, Email: "a@b.com"},
			outcome: OutcomeAccepted,
			message: "Form received and processed successfully. ID: 2",
		},
	}

	// Cases run in order: the accepted ids depend on it.
	for _, tc := range testCases {
		result := client.Submit(ctx, tc.in)
		if result.Outcome != tc.outcome {
			t.Fatalf("%s: outcome = %q, want %q", tc.name, result.Outcome, tc.outcome)
		}
		if result.Envelope.GetMessage() != tc.message {
			t.Fatalf("%s: message = %q, want %q", tc.name, result.Envelope.GetMessage(), tc.message)
		}
		if result.Envelope.GetTimestamp() <= 0 {
			t.Fatalf("%s: expected timestamp", tc.name)
		}
	}
}

type brokenStore struct {
	*memory.Store
}

func (brokenStore) PutSubmission(context.Context, storage.Submission) error {
	return errors.New("map is read-only")
}

func TestSubmitOverRPC_InternalFailureIsFailed(t *testing.T) {
	client := startFormService(t, brokenStore{Store: memory.New()})

	result := client.Submit(context.Background(), Submission{FirstName: "Ana", LastName: "Diaz", Age: 30, Email: "a@b.com"})
	if result.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %q, want failed", result.Outcome)
	}
	if result.Envelope.GetStatus() != envelope.StatusError || !strings.HasPrefix(result.Envelope.GetMessage(), "internal server error: ") {
		t.Fatalf("unexpected envelope %+v", result.Envelope)
	}
}

func TestSubmitOverRPC_TransportFailure(t *testing.T) {
	listener := bufconn.Listen(bufSize)
	// Nothing serves on the listener; closing it makes every dial fail.
	_ = listener.Close()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	defer conn.Close()

	client := New(formv1.NewFormServiceClient(conn), logging.Discard())
	result := client.Submit(context.Background(), Submission{FirstName: "Ana", LastName: "Diaz", Age: 30, Email: "a@b.com"})
	if result.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %q, want failed", result.Outcome)
	}
	if result.Envelope.GetStatus() != envelope.StatusError {
		t.Fatalf("status = %q, want ERROR", result.Envelope.GetStatus())
	}
	if !strings.HasPrefix(result.Envelope.GetMessage(), "error communicating with form service: ") {
		t.Fatalf("message = %q", result.Envelope.GetMessage())
	}
	if strings.TrimPrefix(result.Envelope.GetMessage(), "error communicating with form service: ") == "" {
		t.Fatal("expected transport failure description in message")
	}
}
