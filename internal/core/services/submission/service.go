package submission

import (
	"context"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

// ISubmissionService is the entry point for run, submit and history requests
type ISubmissionService interface {
	// Run evaluates code against the visible test cases without persisting anything
	Run(ctx context.Context, problemID, code, language string) (domain.Verdict, error)

	// Submit evaluates code against the hidden test cases and returns the finalized record
	Submit(ctx context.Context, userID, problemID, code, language string) (*domain.Submission, error)

	// History returns the caller's finalized submissions for a problem, newest first
	History(ctx context.Context, userID, problemID string) ([]*domain.Submission, error)

	// Languages lists the accepted language names
	Languages() []string
}

// ILifecycleManager is the only writer of submission records
type ILifecycleManager interface {
	// Create persists a pending submission with a fixed test case total
	Create(ctx context.Context, userID, problemID, code, language string, total int) (*domain.Submission, error)

	// Finalize applies a verdict exactly once
	Finalize(ctx context.Context, submission *domain.Submission, verdict domain.Verdict) (*domain.Submission, error)

	// Fail finalizes a submission whose evaluation could not complete
	Fail(ctx context.Context, submission *domain.Submission, cause error) (*domain.Submission, error)

	// SweepStale fails pending submissions older than the given age and reports how many were closed
	SweepStale(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}
