package submission

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/submission-judge/internal/config"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/language"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

type memorySubmissions struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.Submission

	createErr     error
	finalizeErr   error
	finalizeCalls int
	// finalizeCtxErr is ctx.Err() as seen inside Finalize
	finalizeCtxErr error
	// beforeFinalize runs ahead of the conditional update, outside the lock
	beforeFinalize func(id uuid.UUID)
}

func newMemorySubmissions() *memorySubmissions {
	return &memorySubmissions{records: make(map[uuid.UUID]*domain.Submission)}
}

func (m *memorySubmissions) Create(_ context.Context, sub *domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	cp := *sub
	m.records[sub.ID] = &cp
	return nil
}

func (m *memorySubmissions) Finalize(ctx context.Context, id uuid.UUID, verdict domain.Verdict) error {
	if m.beforeFinalize != nil {
		m.beforeFinalize(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeCalls++
	m.finalizeCtxErr = ctx.Err()
	if m.finalizeErr != nil {
		return m.finalizeErr
	}
	rec, ok := m.records[id]
	if !ok {
		return errs.ErrSubmissionNotFound
	}
	if rec.Status != domain.SubmissionStatusPending {
		return errs.ErrSubmissionAlreadyFinalized
	}
	rec.Apply(verdict)
	return nil
}

// forceStatus finalizes a record directly, as a concurrent writer would
func (m *memorySubmissions) forceStatus(id uuid.UUID, verdict domain.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[id]; ok {
		rec.Apply(verdict)
	}
}

func (m *memorySubmissions) Get(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, errs.ErrSubmissionNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memorySubmissions) ListByUserAndProblem(_ context.Context, userID, problemID string) ([]*domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Submission{}
	for _, rec := range m.records {
		if rec.UserID == userID && rec.ProblemID == problemID && rec.Status.IsFinal() {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memorySubmissions) ListStalePending(_ context.Context, before time.Time, limit int) ([]*domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Submission{}
	for _, rec := range m.records {
		if rec.Status == domain.SubmissionStatusPending && rec.CreatedAt.Before(before) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memorySubmissions) only(t *testing.T) *domain.Submission {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) != 1 {
		t.Fatalf("expected exactly one stored submission, got %d", len(m.records))
	}
	for _, rec := range m.records {
		cp := *rec
		return &cp
	}
	return nil
}

type fakeProblems struct {
	problems map[string]*domain.Problem
	calls    int
}

func (f *fakeProblems) GetProblem(_ context.Context, problemID string) (*domain.Problem, error) {
	f.calls++
	p, ok := f.problems[problemID]
	if !ok {
		return nil, errs.ErrProblemNotFound
	}
	return p, nil
}

type fakePipeline struct {
	verdict domain.Verdict
	err     error
	calls   int
	jobs    []domain.EvaluationJob
}

func (f *fakePipeline) Evaluate(_ context.Context, jobs []domain.EvaluationJob) (domain.Verdict, error) {
	f.calls++
	f.jobs = jobs
	return f.verdict, f.err
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

type verdictRecord struct {
	path   string
	status string
}

type recordingMetrics struct {
	judge.NopMetrics
	verdicts []verdictRecord
}

func (m *recordingMetrics) ObserveVerdict(path, status string, _ time.Duration) {
	m.verdicts = append(m.verdicts, verdictRecord{path: path, status: status})
}

func twoSumProblem() *domain.Problem {
	return &domain.Problem{
		ID:    "two-sum",
		Title: "Two Sum",
		TestCases: []*domain.TestCase{
			{ID: uuid.New(), ProblemID: "two-sum", Input: "1 2", ExpectedOutput: "3", Position: 0},
			{ID: uuid.New(), ProblemID: "two-sum", Input: "2 2", ExpectedOutput: "4", IsHidden: true, Position: 1},
			{ID: uuid.New(), ProblemID: "two-sum", Input: "5 5", ExpectedOutput: "10", IsHidden: true, Position: 2},
			{ID: uuid.New(), ProblemID: "two-sum", Input: "0 0", ExpectedOutput: "0", IsHidden: true, Position: 3},
		},
	}
}

type fixture struct {
	service  *SubmissionService
	repo     *memorySubmissions
	problems *fakeProblems
	pipeline *fakePipeline
	limiter  *fakeLimiter
	metrics  *recordingMetrics
}

func newFixture(t *testing.T, pipeline judge.IPipeline) *fixture {
	t.Helper()
	resolver, err := language.NewResolver(language.DefaultRuntimes)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	f := &fixture{
		repo:     newMemorySubmissions(),
		problems: &fakeProblems{problems: map[string]*domain.Problem{"two-sum": twoSumProblem()}},
		limiter:  &fakeLimiter{allowed: true},
		metrics:  &recordingMetrics{},
	}
	if pipeline == nil {
		f.pipeline = &fakePipeline{}
		pipeline = f.pipeline
	}

	logger := logging.NewNop()
	cfg := &config.SubmissionConfig{
		MaxCodeBytes:    1024,
		RateLimitMax:    5,
		RateLimitWindow: time.Minute,
		DBTimeout:       time.Second,
	}
	lifecycle := NewLifecycleManager(f.repo, cfg.DBTimeout, logger)
	f.service = NewSubmissionService(resolver, f.problems, f.repo, pipeline, lifecycle, f.limiter, f.metrics, cfg, logger)
	return f
}
