package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

type SubmissionRepository interface {
	// Create persists a new pending submission
	Create(ctx context.Context, submission *domain.Submission) error

	// Finalize writes the verdict of a pending submission. It fails with
	// errs.ErrSubmissionAlreadyFinalized if the record is no longer pending.
	Finalize(ctx context.Context, id uuid.UUID, verdict domain.Verdict) error

	// Get retrieves a submission by ID
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	// ListByUserAndProblem returns finalized submissions, newest first
	ListByUserAndProblem(ctx context.Context, userID, problemID string) ([]*domain.Submission, error)

	// ListStalePending returns pending submissions created before the given time
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*domain.Submission, error)
}

type ProblemRepository interface {
	// GetProblem loads a problem with all of its test cases ordered by position
	GetProblem(ctx context.Context, problemID string) (*domain.Problem, error)
}
