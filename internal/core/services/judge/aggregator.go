package judge

import "gitlab.com/fcv-2025.net/submission-judge/internal/domain"

// Aggregate reduces per-case results into one verdict in a single pass.
// The earliest failing case decides the status and the error message.
// A compilation error means nothing ran, so it carries no passed count, runtime or memory.
func Aggregate(results []domain.JobResult) domain.Verdict {
	v := domain.Verdict{
		Status:         domain.SubmissionStatusAccepted,
		TestCasesTotal: len(results),
	}

	failed := false
	for _, r := range results {
		if r.Accepted() {
			v.TestCasesPassed++
			v.Runtime += r.Time
			if r.Memory > v.Memory {
				v.Memory = r.Memory
			}
			continue
		}
		if !failed {
			failed = true
			v.Status = r.Status.Label()
			v.ErrorMessage = r.ErrorText()
		}
	}

	if v.Status == domain.SubmissionStatusCompilationError {
		v.TestCasesPassed = 0
		v.Runtime = 0
		v.Memory = 0
	}
	return v
}
