package judge

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

var _ IPoller = (*Poller)(nil)

type Poller struct {
	executor    secondary.BatchExecutor
	interval    time.Duration
	maxAttempts int
	metrics     secondary.JudgeMetrics
	logger      primary.Logger
}

func NewPoller(
	executor secondary.BatchExecutor,
	interval time.Duration,
	maxAttempts int,
	metrics secondary.JudgeMetrics,
	logger primary.Logger,
) *Poller {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Poller{
		executor:    executor,
		interval:    interval,
		maxAttempts: maxAttempts,
		metrics:     MetricsOrNop(metrics),
		logger:      logger,
	}
}

// Poll issues one batch status request per attempt. A failed or malformed status
// response uses up its attempt; the batch is never reported done while any job is pending.
// The whole loop, status requests included, runs under a deadline of interval * maxAttempts.
func (p *Poller) Poll(ctx context.Context, handles []domain.JobHandle) ([]domain.JobResult, error) {
	if len(handles) == 0 {
		return nil, errs.ErrNoTestCases
	}

	pollCtx := ctx
	if budget := p.Budget(); budget > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		results, err := p.executor.FetchBatch(pollCtx, handles)
		if pollCtx.Err() != nil {
			if err == nil {
				err = lastErr
			}
			return nil, p.expired(ctx, attempt, err)
		}
		if err == nil {
			results, err = orderByHandle(handles, results)
		}

		switch {
		case err != nil:
			lastErr = err
			p.logger.Warn("Failed to fetch batch status", "attempt", attempt, "error", err)
		case allTerminal(results):
			p.logger.Debug("Batch completed", "attempt", attempt, "jobs", len(results))
			p.metrics.ObservePoll(attempt, nil)
			return results, nil
		default:
			lastErr = nil
			p.logger.Debug("Batch still running", "attempt", attempt, "pending", countPending(results))
		}

		if attempt == p.maxAttempts {
			break
		}
		if err := sleep(pollCtx, p.interval); err != nil {
			return nil, p.expired(ctx, attempt, lastErr)
		}
	}

	err := fmt.Errorf("%w after %d attempts", errs.ErrJudgeTimeout, p.maxAttempts)
	if lastErr != nil {
		err = fmt.Errorf("%w after %d attempts: %w", errs.ErrJudgeTimeout, p.maxAttempts, lastErr)
	}
	p.logger.Error("Batch did not complete", "attempts", p.maxAttempts, "error", err)
	p.metrics.ObservePoll(p.maxAttempts, err)
	return nil, err
}

// Budget is the wall-clock limit of one Poll call
func (p *Poller) Budget() time.Duration {
	return p.interval * time.Duration(p.maxAttempts)
}

// expired reports a poll cut short by the caller or by the budget deadline
func (p *Poller) expired(ctx context.Context, attempt int, cause error) error {
	var err error
	switch {
	case ctx.Err() != nil:
		err = fmt.Errorf("%w: %w", errs.ErrJudgeTimeout, ctx.Err())
	case cause != nil:
		err = fmt.Errorf("%w: budget %s spent after %d attempts: %w: %w",
			errs.ErrJudgeTimeout, p.Budget(), attempt, context.DeadlineExceeded, cause)
	default:
		err = fmt.Errorf("%w: budget %s spent after %d attempts: %w",
			errs.ErrJudgeTimeout, p.Budget(), attempt, context.DeadlineExceeded)
	}
	p.logger.Error("Batch did not complete", "attempts", attempt, "error", err)
	p.metrics.ObservePoll(attempt, err)
	return err
}

// orderByHandle puts results back into dispatch order. Results are taken positionally
// only when none of them carries a token; a partly tokenized batch is inconsistent.
func orderByHandle(handles []domain.JobHandle, results []domain.JobResult) ([]domain.JobResult, error) {
	if len(results) != len(handles) {
		return nil, fmt.Errorf("%w: got %d results for %d handles", errs.ErrDispatchInconsistent, len(results), len(handles))
	}

	untokenized := 0
	for _, r := range results {
		if r.Handle == "" {
			untokenized++
		}
	}
	switch untokenized {
	case len(results):
		return results, nil
	case 0:
	default:
		return nil, fmt.Errorf("%w: %d of %d results have no token", errs.ErrDispatchInconsistent, untokenized, len(results))
	}

	byHandle := make(map[domain.JobHandle]domain.JobResult, len(results))
	for _, r := range results {
		byHandle[r.Handle] = r
	}

	ordered := make([]domain.JobResult, 0, len(handles))
	for _, h := range handles {
		r, ok := byHandle[h]
		if !ok {
			return nil, fmt.Errorf("%w: no result for handle %s", errs.ErrDispatchInconsistent, h)
		}
		ordered = append(ordered, r)
	}
	return ordered, nil
}

func allTerminal(results []domain.JobResult) bool {
	return countPending(results) == 0
}

func countPending(results []domain.JobResult) int {
	n := 0
	for _, r := range results {
		if !r.Status.IsTerminal() {
			n++
		}
	}
	return n
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
