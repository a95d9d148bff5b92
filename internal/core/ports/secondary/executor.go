package secondary

import (
	"context"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

// BatchExecutor is the remote code execution engine
type BatchExecutor interface {
	// SubmitBatch enqueues every job in one call and returns one handle per job, in order
	SubmitBatch(ctx context.Context, jobs []domain.EvaluationJob) ([]domain.JobHandle, error)

	// FetchBatch returns the current state of every handle in one call
	FetchBatch(ctx context.Context, handles []domain.JobHandle) ([]domain.JobResult, error)
}
