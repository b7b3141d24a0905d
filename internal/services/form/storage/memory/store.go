// Package memory provides the process-lifetime submission store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/louisbranch/formrelay/internal/services/form/storage"
)

// Store keeps submissions in a map guarded by a RWMutex. Ids come from an
// atomic counter so assignment never takes the map lock.
type Store struct {
	lastID atomic.Int64

	mu          sync.RWMutex
	submissions map[int64]storage.Submission
}

var _ storage.SubmissionStore = (*Store)(nil)

// New creates an empty store whose first id is 1.
func New() *Store {
	return &Store{submissions: make(map[int64]storage.Submission)}
}

// NextSubmissionID returns the next id. Ids are never reused, even when the
// caller never stores a submission under them.
func (s *Store) NextSubmissionID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.lastID.Add(1), nil
}

// PutSubmission stores submission under its id.
func (s *Store) PutSubmission(ctx context.Context, submission storage.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if submission.ID <= 0 {
		return fmt.Errorf("put submission: id must be positive, got %d", submission.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[submission.ID]; ok {
		return fmt.Errorf("put submission %d: %w", submission.ID, storage.ErrAlreadyExists)
	}
	s.submissions[submission.ID] = submission
	return nil
}

// GetSubmission returns the submission stored under id.
func (s *Store) GetSubmission(ctx context.Context, id int64) (storage.Submission, error) {
	if err := ctx.Err(); err != nil {
		return storage.Submission{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[id]
	if !ok {
		return storage.Submission{}, fmt.Errorf("get submission %d: %w", id, storage.ErrNotFound)
	}
	return submission, nil
}

// CountSubmissions returns how many submissions are stored.
func (s *Store) CountSubmissions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions), nil
}
