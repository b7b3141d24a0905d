// Package events announces accepted submissions to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/louisbranch/formrelay/internal/services/form/storage"
)

// DefaultSubject is the subject accepted submissions are published on.
const DefaultSubject = "formrelay.submissions.accepted"

// SubmissionAccepted is the payload published for one accepted submission.
type SubmissionAccepted struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Age         int32     `json:"age"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewSubmissionAccepted builds the payload for a stored submission.
func NewSubmissionAccepted(submission storage.Submission) SubmissionAccepted {
	return SubmissionAccepted{
		ID:          submission.ID,
		FirstName:   submission.FirstName,
		LastName:    submission.LastName,
		Age:         submission.Age,
		Email:       submission.Email,
		SubmittedAt: submission.SubmittedAt.UTC(),
	}
}

// Publisher announces accepted submissions.
type Publisher interface {
	PublishAccepted(ctx context.Context, submission storage.Submission) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

// PublishAccepted implements Publisher.
func (Nop) PublishAccepted(context.Context, storage.Submission) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }
