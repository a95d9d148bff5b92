package judge

import (
	"context"
	"sync"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

type fakeExecutor struct {
	mu sync.Mutex

	submitHandles []domain.JobHandle
	submitErr     error
	submitCalls   int
	submitted     []domain.EvaluationJob

	// fetches is consumed one entry per FetchBatch call; the last entry repeats
	fetches    []fetchReply
	fetchCalls int
}

type fetchReply struct {
	results []domain.JobResult
	err     error
}

func (f *fakeExecutor) SubmitBatch(_ context.Context, jobs []domain.EvaluationJob) ([]domain.JobHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	f.submitted = append(f.submitted, jobs...)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitHandles, nil
}

func (f *fakeExecutor) FetchBatch(_ context.Context, _ []domain.JobHandle) ([]domain.JobResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if len(f.fetches) == 0 {
		return nil, nil
	}
	idx := f.fetchCalls - 1
	if idx >= len(f.fetches) {
		idx = len(f.fetches) - 1
	}
	reply := f.fetches[idx]
	return reply.results, reply.err
}

type recordingMetrics struct {
	mu         sync.Mutex
	dispatches []error
	polls      []int
	pollErrs   []error
}

func (m *recordingMetrics) ObserveDispatch(_ int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatches = append(m.dispatches, err)
}

func (m *recordingMetrics) ObservePoll(attempts int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls = append(m.polls, attempts)
	m.pollErrs = append(m.pollErrs, err)
}

func (m *recordingMetrics) ObserveVerdict(string, string, time.Duration) {}

func accepted(handle string, seconds float64, memory int64) domain.JobResult {
	return domain.JobResult{Handle: domain.JobHandle(handle), Status: domain.JudgeStatusAccepted, Time: seconds, Memory: memory}
}

func withStatus(handle string, status domain.JudgeStatus) domain.JobResult {
	return domain.JobResult{Handle: domain.JobHandle(handle), Status: status}
}

func jobsOf(n int) []domain.EvaluationJob {
	jobs := make([]domain.EvaluationJob, n)
	for i := range jobs {
		jobs[i] = domain.EvaluationJob{SourceCode: "print(1)", RuntimeID: 71, Stdin: string(rune('a' + i)), ExpectedOutput: "1"}
	}
	return jobs
}
