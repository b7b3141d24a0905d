// Package storage defines the contracts for form service state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested submission is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a submission id is already taken.
	ErrAlreadyExists = errors.New("record already exists")
)

// Submission stores one accepted form submission.
type Submission struct {
	ID          int64
	FirstName   string
	LastName    string
	Age         int32
	Email       string
	SubmittedAt time.Time
}

// SubmissionStore assigns identifiers to and keeps accepted submissions.
type SubmissionStore interface {
	// NextSubmissionID returns a positive id never returned before.
	NextSubmissionID(ctx context.Context) (int64, error)
	PutSubmission(ctx context.Context, submission Submission) error
	GetSubmission(ctx context.Context, id int64) (Submission, error)
	CountSubmissions(ctx context.Context) (int, error)
}
