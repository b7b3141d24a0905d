package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/formrelay/internal/services/form/storage"
)

func TestNextSubmissionIDStartsAtOneAndIncrements(t *testing.T) {
	store := New()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := store.NextSubmissionID(ctx)
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if got != want {
			t.Fatalf("expected id %d, got %d", want, got)
		}
	}
}

func TestPutAndGetSubmission(t *testing.T) {
	store := New()
	ctx := context.Background()
	submittedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	record := storage.Submission{ID: 1, FirstName: "Ana", LastName: "Ruiz", Age: 30, Email: "ana@x.io", SubmittedAt: submittedAt}

	if err := store.PutSubmission(ctx, record); err != nil {
		t.Fatalf("put submission: %v", err)
	}
	got, err := store.GetSubmission(ctx, 1)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if got != record {
		t.Fatalf("expected %+v, got %+v", record, got)
	}
	count, err := store.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 submission, got %d", count)
	}
}

func TestPutSubmissionRejectsDuplicateAndInvalidIDs(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.PutSubmission(ctx, storage.Submission{ID: 1}); err != nil {
		t.Fatalf("put submission: %v", err)
	}
	if err := store.PutSubmission(ctx, storage.Submission{ID: 1}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := store.PutSubmission(ctx, storage.Submission{ID: 0}); err == nil {
		t.Fatal("expected error for non-positive id")
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	_, err := New().GetSubmission(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.NextSubmissionID(ctx); err == nil {
		t.Fatal("expected next id error")
	}
	if err := store.PutSubmission(ctx, storage.Submission{ID: 1}); err == nil {
		t.Fatal("expected put error")
	}
	// A canceled assignment must not consume an id.
	id, err := store.NextSubmissionID(context.Background())
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
}

func TestConcurrentAssignmentsAreUnique(t *testing.T) {
	const workers = 64
	const perWorker = 50

	store := New()
	ctx := context.Background()
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := store.NextSubmissionID(ctx)
				if err != nil {
					t.Errorf("next id: %v", err)
					return
				}
				if err := store.PutSubmission(ctx, storage.Submission{ID: id}); err != nil {
					t.Errorf("put submission %d: %v", id, err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers*perWorker)
	for id := range ids {
		if id <= 0 {
			t.Fatalf("expected positive id, got %d", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d ids, got %d", workers*perWorker, len(seen))
	}
	count, _ := store.CountSubmissions(ctx)
	if count != workers*perWorker {
		t.Fatalf("expected %d stored, got %d", workers*perWorker, count)
	}
}
