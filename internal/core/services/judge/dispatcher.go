package judge

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

var _ IDispatcher = (*Dispatcher)(nil)

type Dispatcher struct {
	executor secondary.BatchExecutor
	metrics  secondary.JudgeMetrics
	logger   primary.Logger
}

func NewDispatcher(executor secondary.BatchExecutor, metrics secondary.JudgeMetrics, logger primary.Logger) *Dispatcher {
	return &Dispatcher{
		executor: executor,
		metrics:  MetricsOrNop(metrics),
		logger:   logger,
	}
}

// Dispatch makes exactly one batch call. A short or malformed handle list is never truncated.
func (d *Dispatcher) Dispatch(ctx context.Context, jobs []domain.EvaluationJob) ([]domain.JobHandle, error) {
	if len(jobs) == 0 {
		return nil, errs.ErrNoTestCases
	}

	handles, err := d.executor.SubmitBatch(ctx, jobs)
	if err != nil {
		if !errors.Is(err, errs.ErrDispatchUnavailable) && !errors.Is(err, errs.ErrDispatchInconsistent) {
			err = fmt.Errorf("%w: %w", errs.ErrDispatchUnavailable, err)
		}
		d.logger.Error("Failed to dispatch batch", "jobs", len(jobs), "error", err)
		d.metrics.ObserveDispatch(len(jobs), err)
		return nil, err
	}

	if len(handles) != len(jobs) {
		err = fmt.Errorf("%w: got %d handles for %d jobs", errs.ErrDispatchInconsistent, len(handles), len(jobs))
		d.logger.Error("Dispatch returned wrong handle count", "jobs", len(jobs), "handles", len(handles))
		d.metrics.ObserveDispatch(len(jobs), err)
		return nil, err
	}
	for i, h := range handles {
		if h == "" {
			err = fmt.Errorf("%w: empty handle at index %d", errs.ErrDispatchInconsistent, i)
			d.logger.Error("Dispatch returned empty handle", "index", i)
			d.metrics.ObserveDispatch(len(jobs), err)
			return nil, err
		}
	}

	d.logger.Debug("Batch dispatched", "jobs", len(jobs))
	d.metrics.ObserveDispatch(len(jobs), nil)
	return handles, nil
}
