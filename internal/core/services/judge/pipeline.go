package judge

import (
	"context"
	"fmt"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

var _ IPipeline = (*Pipeline)(nil)

// Pipeline runs dispatch, then poll, then aggregate. Nothing is aggregated from a partial batch.
type Pipeline struct {
	dispatcher IDispatcher
	poller     IPoller
	logger     primary.Logger
}

func NewPipeline(dispatcher IDispatcher, poller IPoller, logger primary.Logger) *Pipeline {
	return &Pipeline{
		dispatcher: dispatcher,
		poller:     poller,
		logger:     logger,
	}
}

func (p *Pipeline) Evaluate(ctx context.Context, jobs []domain.EvaluationJob) (domain.Verdict, error) {
	handles, err := p.dispatcher.Dispatch(ctx, jobs)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("failed to dispatch: %w", err)
	}

	results, err := p.poller.Poll(ctx, handles)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("failed to poll: %w", err)
	}

	verdict := Aggregate(results).WithResults(jobs, results)
	p.logger.Info("Evaluation finished",
		"status", verdict.Status,
		"passed", verdict.TestCasesPassed,
		"total", verdict.TestCasesTotal)
	return verdict, nil
}
