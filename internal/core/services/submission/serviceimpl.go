package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/config"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/language"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

const (
	pathRun    = "run"
	pathSubmit = "submit"
)

type SubmissionService struct {
	languages language.ILanguageResolver
	problems  secondary.ProblemRepository
	repo      secondary.SubmissionRepository
	pipeline  judge.IPipeline
	lifecycle ILifecycleManager
	limiter   secondary.RateLimiter
	metrics   secondary.JudgeMetrics
	cfg       *config.SubmissionConfig
	logger    primary.Logger
}

func NewSubmissionService(
	languages language.ILanguageResolver,
	problems secondary.ProblemRepository,
	repo secondary.SubmissionRepository,
	pipeline judge.IPipeline,
	lifecycle ILifecycleManager,
	limiter secondary.RateLimiter,
	metrics secondary.JudgeMetrics,
	cfg *config.SubmissionConfig,
	logger primary.Logger,
) *SubmissionService {
	return &SubmissionService{
		languages: languages,
		problems:  problems,
		repo:      repo,
		pipeline:  pipeline,
		lifecycle: lifecycle,
		limiter:   limiter,
		metrics:   judge.MetricsOrNop(metrics),
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *SubmissionService) Run(ctx context.Context, problemID, code, language string) (domain.Verdict, error) {
	if err := validateInput(problemID, code, language, s.cfg.MaxCodeBytes); err != nil {
		return domain.Verdict{}, err
	}
	runtime, err := s.languages.Resolve(language)
	if err != nil {
		return domain.Verdict{}, err
	}

	problem, err := s.loadProblem(ctx, problemID)
	if err != nil {
		return domain.Verdict{}, err
	}
	visible := problem.VisibleTestCases()
	if len(visible) == 0 {
		return domain.Verdict{}, errs.ErrNoTestCases
	}

	start := time.Now()
	verdict, err := s.pipeline.Evaluate(ctx, domain.NewEvaluationJobs(code, runtime, visible))
	if err != nil {
		s.logger.Warn("Run failed", "problemId", problemID, "language", language, "error", err)
		s.metrics.ObserveVerdict(pathRun, string(domain.SubmissionStatusInternalError), time.Since(start))
		return domain.Verdict{}, err
	}
	s.metrics.ObserveVerdict(pathRun, string(verdict.Status), time.Since(start))
	return verdict, nil
}

// Submit persists a pending record before anything is dispatched and always leaves it finalized.
// Pipeline failures come back as an Internal Error submission, not as an error.
func (s *SubmissionService) Submit(ctx context.Context, userID, problemID, code, language string) (*domain.Submission, error) {
	if userID == "" {
		return nil, errs.ErrUnauthorized
	}
	if err := validateInput(problemID, code, language, s.cfg.MaxCodeBytes); err != nil {
		return nil, err
	}
	runtime, err := s.languages.Resolve(language)
	if err != nil {
		return nil, err
	}
	if err := s.checkRateLimit(ctx, userID); err != nil {
		return nil, err
	}

	problem, err := s.loadProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}
	hidden := problem.HiddenTestCases()
	if len(hidden) == 0 {
		return nil, errs.ErrNoTestCases
	}

	sub, err := s.lifecycle.Create(ctx, userID, problemID, code, language, len(hidden))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	verdict, err := s.pipeline.Evaluate(ctx, domain.NewEvaluationJobs(code, runtime, hidden))
	if err != nil {
		finalized, ferr := s.lifecycle.Fail(ctx, sub, err)
		s.metrics.ObserveVerdict(pathSubmit, string(domain.SubmissionStatusInternalError), time.Since(start))
		return s.settle(ctx, sub, finalized, ferr)
	}

	verdict.Results = nil
	finalized, err := s.lifecycle.Finalize(ctx, sub, verdict)
	s.metrics.ObserveVerdict(pathSubmit, string(verdict.Status), time.Since(start))
	return s.settle(ctx, sub, finalized, err)
}

// settle returns the stored record when the sweeper finalized it first
func (s *SubmissionService) settle(ctx context.Context, sub, finalized *domain.Submission, err error) (*domain.Submission, error) {
	if err == nil {
		return finalized, nil
	}
	if !errors.Is(err, errs.ErrSubmissionAlreadyFinalized) {
		return nil, err
	}

	s.logger.Warn("Submission was finalized elsewhere", "submissionId", sub.ID)
	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.DBTimeout)
	defer cancel()
	stored, gerr := s.repo.Get(dbCtx, sub.ID)
	if gerr != nil {
		return nil, fmt.Errorf("failed to load finalized submission: %w", gerr)
	}
	return stored, nil
}

func (s *SubmissionService) History(ctx context.Context, userID, problemID string) ([]*domain.Submission, error) {
	if userID == "" {
		return nil, errs.ErrUnauthorized
	}
	if problemID == "" {
		return nil, errs.ErrProblemRequired
	}
	submissions, err := s.repo.ListByUserAndProblem(ctx, userID, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return submissions, nil
}

func (s *SubmissionService) Languages() []string {
	return s.languages.Languages()
}

func (s *SubmissionService) loadProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}
	if problem == nil {
		return nil, errs.ErrProblemNotFound
	}
	return problem, nil
}

// checkRateLimit fails open: a limiter outage must not block judging
func (s *SubmissionService) checkRateLimit(ctx context.Context, userID string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, "submit:"+userID, s.cfg.RateLimitMax, s.cfg.RateLimitWindow)
	if err != nil {
		s.logger.Warn("Rate limiter unavailable", "userId", userID, "error", err)
		return nil
	}
	if !allowed {
		return errs.ErrRateLimited
	}
	return nil
}
