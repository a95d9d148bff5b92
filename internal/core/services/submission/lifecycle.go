package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

var _ ILifecycleManager = (*LifecycleManager)(nil)

const (
	msgJudgeTimeout      = "Judging did not finish in time, please try again"
	msgEngineUnavailable = "Code execution service is unavailable, please try again"
	msgEngineBadResponse = "Code execution service returned an invalid response"
	msgAbandoned         = "Judging was interrupted, please submit again"
	msgInternal          = "Internal error while judging"
)

type LifecycleManager struct {
	repo      secondary.SubmissionRepository
	dbTimeout time.Duration
	logger    primary.Logger
}

func NewLifecycleManager(repo secondary.SubmissionRepository, dbTimeout time.Duration, logger primary.Logger) *LifecycleManager {
	if dbTimeout <= 0 {
		dbTimeout = 3 * time.Second
	}
	return &LifecycleManager{
		repo:      repo,
		dbTimeout: dbTimeout,
		logger:    logger,
	}
}

func (m *LifecycleManager) Create(ctx context.Context, userID, problemID, code, language string, total int) (*domain.Submission, error) {
	sub := domain.NewPendingSubmission(userID, problemID, code, language, total)

	dbCtx, cancel := context.WithTimeout(ctx, m.dbTimeout)
	defer cancel()
	if err := m.repo.Create(dbCtx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	m.logger.Info("Submission created", "submissionId", sub.ID, "userId", userID, "problemId", problemID, "total", total)
	return sub, nil
}

// Finalize runs on a context detached from the request so a client disconnect cannot leave the record pending
func (m *LifecycleManager) Finalize(ctx context.Context, sub *domain.Submission, verdict domain.Verdict) (*domain.Submission, error) {
	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.dbTimeout)
	defer cancel()

	if err := m.repo.Finalize(dbCtx, sub.ID, verdict); err != nil {
		m.logger.Error("Failed to finalize submission", "submissionId", sub.ID, "status", verdict.Status, "error", err)
		return nil, fmt.Errorf("failed to finalize submission: %w", err)
	}

	finalized := *sub
	finalized.Apply(verdict)
	m.logger.Info("Submission finalized",
		"submissionId", sub.ID,
		"status", verdict.Status,
		"passed", verdict.TestCasesPassed,
		"total", sub.TestCasesTotal)
	return &finalized, nil
}

func (m *LifecycleManager) Fail(ctx context.Context, sub *domain.Submission, cause error) (*domain.Submission, error) {
	m.logger.Warn("Evaluation failed", "submissionId", sub.ID, "error", cause)
	return m.Finalize(ctx, sub, FailureVerdict(sub.TestCasesTotal, cause))
}

func (m *LifecycleManager) SweepStale(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	stale, err := m.repo.ListStalePending(ctx, time.Now().UTC().Add(-olderThan), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale submissions: %w", err)
	}

	closed := 0
	for _, sub := range stale {
		verdict := domain.Verdict{
			Status:         domain.SubmissionStatusInternalError,
			TestCasesTotal: sub.TestCasesTotal,
			ErrorMessage:   msgAbandoned,
		}
		if _, err := m.Finalize(ctx, sub, verdict); err != nil {
			if errors.Is(err, errs.ErrSubmissionAlreadyFinalized) {
				continue
			}
			return closed, err
		}
		closed++
	}
	return closed, nil
}

// FailureVerdict turns a pipeline error into a terminal internal error with a user facing message
func FailureVerdict(total int, cause error) domain.Verdict {
	msg := msgInternal
	switch {
	case errors.Is(cause, errs.ErrJudgeTimeout):
		msg = msgJudgeTimeout
	case errors.Is(cause, errs.ErrDispatchInconsistent):
		msg = msgEngineBadResponse
	case errors.Is(cause, errs.ErrDispatchUnavailable):
		msg = msgEngineUnavailable
	}
	return domain.Verdict{
		Status:         domain.SubmissionStatusInternalError,
		TestCasesTotal: total,
		ErrorMessage:   msg,
	}
}
