package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	"github.com/louisbranch/formrelay/internal/platform/envelope"
	"github.com/louisbranch/formrelay/internal/platform/i18n"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/services/form/domain"
	"github.com/louisbranch/formrelay/internal/services/form/events"
	"github.com/louisbranch/formrelay/internal/services/form/storage"
	"golang.org/x/text/message"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the publisher notified after a submission is stored.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics sets the submission metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the clock used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// Service exposes form.v1 gRPC operations.
type Service struct {
	formv1.UnimplementedFormServiceServer
	store     storage.SubmissionStore
	publisher events.Publisher
	metrics   *Metrics
	logger    *logging.Logger
	clock     func() time.Time
}

// NewService creates a form service backed by submission storage.
func NewService(store storage.SubmissionStore, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: events.Nop{},
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.OrDefault()
	return s
}

// SubmitForm validates one submission and stores it when every rule passes.
// Every outcome, including internal failures, is reported as an envelope.
func (s *Service) SubmitForm(ctx context.Context, in *formv1.SubmitFormRequest) (resp *formv1.SubmitFormResponse, err error) {
	start := s.now()
	printer := i18n.Printer(i18n.TagFromIncomingContext(ctx))
	outcome, rule := OutcomeFailed, ""
	var storedID int64

	defer func() {
		if r := recover(); r != nil {
			err = nil
			if storedID > 0 {
				// The record exists, so the reply must still be OK.
				s.logger.ErrorContext(ctx, "form submission bookkeeping failed", logging.SubmissionID(storedID), "panic", r)
				resp = envelope.OK(s.acceptedMessage(printer, storedID), s.now())
				outcome, rule = OutcomeAccepted, ""
			} else {
				resp = s.internalError(ctx, printer, fmt.Errorf("panic: %v", r))
				outcome, rule = OutcomeFailed, ""
			}
		}
		s.metrics.observe(outcome, rule, s.now().Sub(start))
	}()

	s.logger.InfoContext(ctx, "form submission received",
		"first_name", in.GetFirstName(),
		"last_name", in.GetLastName(),
		"age", in.GetAge(),
		"email", in.GetEmail(),
	)

	result := domain.Validate(domain.Submission{
		FirstName: in.GetFirstName(),
		LastName:  in.GetLastName(),
		Age:       in.GetAge(),
		Email:     in.GetEmail(),
	})
	if !result.OK() {
		outcome, rule = OutcomeRejected, string(result.Rule)
		s.logger.WarnContext(ctx, "form submission rejected", logging.Rule(rule))
		return envelope.Error(printer.Sprintf(result.Rule.MessageKey()), s.now()), nil
	}

	// A call that reached the store runs to completion regardless of the
	// caller's deadline.
	work := context.WithoutCancel(ctx)
	record, err := s.save(work, result.Submission)
	if err != nil {
		return s.internalError(ctx, printer, err), nil
	}
	storedID = record.ID

	s.publish(work, record)
	s.recordStored(work)

	outcome = OutcomeAccepted
	resp = envelope.OK(s.acceptedMessage(printer, record.ID), s.now())
	s.logger.InfoContext(ctx, "form submission accepted",
		logging.SubmissionID(record.ID),
		logging.Outcome(outcome),
		"message", resp.GetMessage(),
	)
	return resp, nil
}

// acceptedMessage renders the success text, falling back to English when
// the printer fails.
func (s *Service) acceptedMessage(printer *message.Printer, id int64) (msg string) {
	formatted := strconv.FormatInt(id, 10)
	defer func() {
		if r := recover(); r != nil {
			msg = "Form received and processed successfully. ID: " + formatted
		}
	}()
	return printer.Sprintf("form.accepted", formatted)
}

// recordStored refreshes the stored gauge. It runs after the record is
// stored, so failures are logged and never change the reply.
func (s *Service) recordStored(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "count stored submissions", "panic", r)
		}
	}()
	count, err := s.store.CountSubmissions(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "count stored submissions", logging.Error(err))
		return
	}
	s.metrics.setStored(count)
}

// save assigns the next id and stores the submission under it. A failed
// store leaves the id unused.
func (s *Service) save(ctx context.Context, submission domain.Submission) (storage.Submission, error) {
	if s.store == nil {
		return storage.Submission{}, errors.New("submission store is not configured")
	}
	id, err := s.store.NextSubmissionID(ctx)
	if err != nil {
		return storage.Submission{}, fmt.Errorf("assign submission id: %w", err)
	}
	record := storage.Submission{
		ID:          id,
		FirstName:   submission.FirstName,
		LastName:    submission.LastName,
		Age:         submission.Age,
		Email:       submission.Email,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.PutSubmission(ctx, record); err != nil {
		return storage.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	return record, nil
}

// publish announces record. The submission is already stored, so failures
// here are logged and never change the reply.
func (s *Service) publish(ctx context.Context, record storage.Submission) {
	if s.publisher == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "publish submission accepted", logging.SubmissionID(record.ID), "panic", r)
		}
	}()
	if err := s.publisher.PublishAccepted(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "publish submission accepted", logging.SubmissionID(record.ID), logging.Error(err))
	}
}

// internalError logs err, flags the reply as an internal failure and builds
// the ERROR envelope.
func (s *Service) internalError(ctx context.Context, printer *message.Printer, err error) *formv1.SubmitFormResponse {
	s.logger.ErrorContext(ctx, "form submission failed", logging.Outcome(OutcomeFailed), logging.Error(err))
	// SetHeader fails outside a real RPC; the envelope is still returned.
	_ = grpc.SetHeader(ctx, metadata.Pairs(envelope.MetadataFailure, envelope.FailureInternal))
	return envelope.Error(printer.Sprintf("form.internal_error", err.Error()), s.now())
}

func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}
