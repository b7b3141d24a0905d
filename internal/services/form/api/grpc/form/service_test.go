package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	"github.com/louisbranch/formrelay/internal/platform/envelope"
	"github.com/louisbranch/formrelay/internal/platform/i18n"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/services/form/storage"
	"github.com/louisbranch/formrelay/internal/services/form/storage/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/text/language"
	"google.golang.org/grpc/metadata"
)

var fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store storage.SubmissionStore, opts ...Option) *Service {
	opts = append([]Option{
		WithLogger(logging.Discard()),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return NewService(store, opts...)
}

func validRequest() *formv1.SubmitFormRequest {
	return &formv1.SubmitFormRequest{FirstName: "Ana", LastName: "Ruiz", Age: 30, Email: "ana@x.io"}
}

func TestSubmitForm_Accepted(t *testing.T) {
	store := memory.New()
	svc := newTestService(store)

	resp, err := svc.SubmitForm(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if resp.GetStatus() != envelope.StatusOK {
		t.Fatalf("status = %q, want OK", resp.GetStatus())
	}
	if resp.GetMessage() != "Form received and processed successfully. ID: 1" {
		t.Fatalf("message = %q", resp.GetMessage())
	}
	if resp.GetTimestamp() != fixedNow.UnixMilli() {
		t.Fatalf("timestamp = %d, want %d", resp.GetTimestamp(), fixedNow.UnixMilli())
	}

	record, err := store.GetSubmission(context.Background(), 1)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if record.FirstName != "Ana" || record.LastName != "Ruiz" || record.Age != 30 || record.Email != "ana@x.io" {
		t.Fatalf("unexpected record %+v", record)
	}
	if !record.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("submitted at = %v", record.SubmittedAt)
	}
}

func TestSubmitForm_Rejected(t *testing.T) {
	testCases := []struct {
		name    string
		mut     func(*formv1.SubmitFormRequest)
		message string
	}{
		{name: "blank first name", mut: func(r *formv1.SubmitFormRequest) { r.FirstName = "   " }, message: "first name is required"},
		{name: "blank last name", mut: func(r *formv1.SubmitFormRequest) { r.LastName = "" }, message: "last name is required"},
		{name: "age zero", mut: func(r *formv1.SubmitFormRequest) { r.Age = 0 }, message: "age must be between 1 and 150"},
		{name: "age 151", mut: func(r *formv1.SubmitFormRequest) { r.Age = 151 }, message: "age must be between 1 and 150"},
		{name: "email without at", mut: func(r *formv1.SubmitFormRequest) { r.Email = "ana.x.io" }, message: "email is not valid"},
		{name: "first failing rule wins", mut: func(r *formv1.SubmitFormRequest) {
			r.FirstName = ""
			r.Age = 0
		}, message: "first name is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.New()
			svc := newTestService(store)
			req := validRequest()
			tc.mut(req)

			resp, err := svc.SubmitForm(context.Background(), req)
			if err != nil {
				t.Fatalf("submit form: %v", err)
			}
			if resp.GetStatus() != envelope.StatusError {
				t.Fatalf("status = %q, want ERROR", resp.GetStatus())
			}
			if resp.GetMessage() != tc.message {
				t.Fatalf("message = %q, want %q", resp.GetMessage(), tc.message)
			}
			if count, _ := store.CountSubmissions(context.Background()); count != 0 {
				t.Fatalf("expected no stored submissions, got %d", count)
			}
		})
	}
}

func TestSubmitForm_AgeBoundsAccepted(t *testing.T) {
	svc := newTestService(memory.New())
	for _, age := range []int32{1, 150} {
		req := validRequest()
		req.Age = age
		resp, _ := svc.SubmitForm(context.Background(), req)
		if !envelope.IsOK(resp) {
			t.Fatalf("age %d: expected OK, got %q", age, resp.GetMessage())
		}
	}
}

func TestSubmitForm_NilRequestFailsFirstRule(t *testing.T) {
	svc := newTestService(memory.New())
	resp, err := svc.SubmitForm(context.Background(), nil)
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if resp.GetStatus() != envelope.StatusError || resp.GetMessage() != "first name is required" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestSubmitForm_DuplicatePayloadsGetDistinctIDs(t *testing.T) {
	svc := newTestService(memory.New())
	first, _ := svc.SubmitForm(context.Background(), validRequest())
	second, _ := svc.SubmitForm(context.Background(), validRequest())
	if !strings.HasSuffix(first.GetMessage(), "ID: 1") || !strings.HasSuffix(second.GetMessage(), "ID: 2") {
		t.Fatalf("expected ids 1 and 2, got %q and %q", first.GetMessage(), second.GetMessage())
	}
}

func TestSubmitForm_LocalizedMessages(t *testing.T) {
	svc := newTestService(memory.New())
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(i18n.MetadataLocale, language.Spanish.String()))

	req := validRequest()
	req.Email = "nope"
	resp, _ := svc.SubmitForm(ctx, req)
	if resp.GetMessage() != "El email no es válido" {
		t.Fatalf("message = %q", resp.GetMessage())
	}

	resp, _ = svc.SubmitForm(ctx, validRequest())
	if !strings.HasSuffix(resp.GetMessage(), "ID: 1") || !envelope.IsOK(resp) {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

type failingStore struct {
	*memory.Store
	putErr   error
	panicMsg string
}

func (s *failingStore) PutSubmission(ctx context.Context, submission storage.Submission) error {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.putErr != nil {
		return s.putErr
	}
	return s.Store.PutSubmission(ctx, submission)
}

func TestSubmitForm_StoreErrorIsInternalError(t *testing.T) {
	store := &failingStore{Store: memory.New(), putErr: errors.New("disk on fire")}
	svc := newTestService(store)

	resp, err := svc.SubmitForm(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if resp.GetStatus() != envelope.StatusError {
		t.Fatalf("status = %q, want ERROR", resp.GetStatus())
	}
	if !strings.HasPrefix(resp.GetMessage(), "internal server error: ") || !strings.Contains(resp.GetMessage(), "disk on fire") {
		t.Fatalf("message = %q", resp.GetMessage())
	}
	if count, _ := store.CountSubmissions(context.Background()); count != 0 {
		t.Fatalf("expected no stored submissions, got %d", count)
	}
}

func TestSubmitForm_PanicIsRecovered(t *testing.T) {
	store := &failingStore{Store: memory.New(), panicMsg: "nil map"}
	svc := newTestService(store)

	resp, err := svc.SubmitForm(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if resp.GetStatus() != envelope.StatusError || !strings.Contains(resp.GetMessage(), "nil map") {
		t.Fatalf("unexpected envelope %+v", resp)
	}

	// The service keeps serving after a panic.
	store.panicMsg = ""
	resp, _ = svc.SubmitForm(context.Background(), validRequest())
	if !envelope.IsOK(resp) {
		t.Fatalf("expected OK after recovery, got %+v", resp)
	}
}

type countPanicStore struct {
	*memory.Store
}

func (s *countPanicStore) CountSubmissions(context.Context) (int, error) {
	panic("count exploded")
}

func TestSubmitForm_PanicAfterStoreKeepsOK(t *testing.T) {
	store := &countPanicStore{Store: memory.New()}
	svc := newTestService(store)

	resp, err := svc.SubmitForm(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if resp.GetStatus() != envelope.StatusOK || resp.GetMessage() != "Form received and processed successfully. ID: 1" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if _, err := store.GetSubmission(context.Background(), 1); err != nil {
		t.Fatalf("get submission: %v", err)
	}
}

func TestSubmitForm_LatePanicReportsStoredID(t *testing.T) {
	// The third clock read builds the OK envelope, after the record is stored.
	var calls int
	clock := func() time.Time {
		calls++
		if calls == 3 {
			panic("clock exploded")
		}
		return fixedNow
	}
	store := memory.New()
	svc := newTestService(store, WithClock(clock))

	resp, err := svc.SubmitForm(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if !envelope.IsOK(resp) || !strings.HasSuffix(resp.GetMessage(), "ID: 1") {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if count, _ := store.CountSubmissions(context.Background()); count != 1 {
		t.Fatalf("expected 1 stored submission, got %d", count)
	}
}

func TestSubmitForm_CanceledContextStillCompletes(t *testing.T) {
	store := memory.New()
	svc := newTestService(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.SubmitForm(ctx, validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if !envelope.IsOK(resp) || !strings.HasSuffix(resp.GetMessage(), "ID: 1") {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if _, err := store.GetSubmission(context.Background(), 1); err != nil {
		t.Fatalf("get submission: %v", err)
	}
}

func TestSubmitForm_MissingStoreIsInternalError(t *testing.T) {
	resp, err := newTestService(nil).SubmitForm(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if resp.GetStatus() != envelope.StatusError || !strings.HasPrefix(resp.GetMessage(), "internal server error: ") {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

type recordingPublisher struct {
	mu      sync.Mutex
	records []storage.Submission
	err     error
	panics  bool
}

func (p *recordingPublisher) PublishAccepted(_ context.Context, submission storage.Submission) error {
	if p.panics {
		panic("publisher exploded")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, submission)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestSubmitForm_PublishesAcceptedOnly(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newTestService(memory.New(), WithPublisher(publisher))

	bad := validRequest()
	bad.Age = 0
	_, _ = svc.SubmitForm(context.Background(), bad)
	_, _ = svc.SubmitForm(context.Background(), validRequest())

	if len(publisher.records) != 1 || publisher.records[0].ID != 1 {
		t.Fatalf("expected one published record with id 1, got %+v", publisher.records)
	}
}

func TestSubmitForm_PublishFailureKeepsOK(t *testing.T) {
	for name, publisher := range map[string]*recordingPublisher{
		"error": {err: errors.New("nats down")},
		"panic": {panics: true},
	} {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(memory.New(), WithPublisher(publisher))
			resp, _ := svc.SubmitForm(context.Background(), validRequest())
			if !envelope.IsOK(resp) {
				t.Fatalf("expected OK, got %+v", resp)
			}
		})
	}
}

func TestSubmitForm_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc := newTestService(memory.New(), WithMetrics(m))

	bad := validRequest()
	bad.Email = "x"
	_, _ = svc.SubmitForm(context.Background(), bad)
	_, _ = svc.SubmitForm(context.Background(), validRequest())
	_, _ = svc.SubmitForm(context.Background(), validRequest())

	if got := testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeAccepted, "")); got != 2 {
		t.Fatalf("accepted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeRejected, "email_invalid")); got != 1 {
		t.Fatalf("rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.stored); got != 2 {
		t.Fatalf("stored = %v, want 2", got)
	}
}

func TestSubmitForm_ConcurrentSubmissionsGetDistinctIDs(t *testing.T) {
	const n = 100

	store := memory.New()
	svc := newTestService(store)
	faker := gofakeit.New(7)

	requests := make([]*formv1.SubmitFormRequest, n)
	for i := range requests {
		requests[i] = &formv1.SubmitFormRequest{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Age:       int32(faker.Number(1, 150)),
			Email:     faker.Email(),
		}
	}

	messages := make(chan string, n)
	var wg sync.WaitGroup
	for _, req := range requests {
		wg.Add(1)
		go func(req *formv1.SubmitFormRequest) {
			defer wg.Done()
			resp, err := svc.SubmitForm(context.Background(), req)
			if err != nil || !envelope.IsOK(resp) {
				t.Errorf("submit form: %v %+v", err, resp)
				return
			}
			messages <- resp.GetMessage()
		}(req)
	}
	wg.Wait()
	close(messages)

	seen := make(map[string]bool, n)
	for msg := range messages {
		if seen[msg] {
			t.Fatalf("duplicate id in %q", msg)
		}
		seen[msg] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
	if count, _ := store.CountSubmissions(context.Background()); count != n {
		t.Fatalf("stored = %d, want %d", count, n)
	}
}
