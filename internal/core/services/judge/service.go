package judge

import (
	"context"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

// IDispatcher sends one batch of jobs to the execution engine
type IDispatcher interface {
	// Dispatch returns one handle per job in job order
	Dispatch(ctx context.Context, jobs []domain.EvaluationJob) ([]domain.JobHandle, error)
}

// IPoller waits for a dispatched batch to finish
type IPoller interface {
	// Poll returns results in handle order once every job is terminal
	Poll(ctx context.Context, handles []domain.JobHandle) ([]domain.JobResult, error)
}

// IPipeline runs dispatch, poll and aggregation for one evaluation
type IPipeline interface {
	Evaluate(ctx context.Context, jobs []domain.EvaluationJob) (domain.Verdict, error)
}
