package domain

// Verdict is the aggregated outcome of one evaluation.
// Runtime is the sum of accepted job times in seconds, Memory the peak of accepted jobs in kilobytes.
type Verdict struct {
	Status          SubmissionStatus `json:"status"`
	TestCasesPassed int              `json:"testCasesPassed"`
	TestCasesTotal  int              `json:"testCasesTotal"`
	Runtime         float64          `json:"runtime"`
	Memory          int64            `json:"memory"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	Results         []TestResult     `json:"testCases,omitempty"`
}

// TestResult is the per-case view returned on the run path
type TestResult struct {
	Stdin          string           `json:"stdin"`
	ExpectedOutput string           `json:"expectedOutput"`
	Stdout         string           `json:"stdout"`
	Status         SubmissionStatus `json:"status"`
	Time           float64          `json:"time"`
	Memory         int64            `json:"memory"`
}

// Accepted reports whether every test case passed
func (v Verdict) Accepted() bool {
	return v.Status == SubmissionStatusAccepted
}

// WithResults attaches per-case outcomes. jobs and results must share the dispatch order.
func (v Verdict) WithResults(jobs []EvaluationJob, results []JobResult) Verdict {
	out := make([]TestResult, 0, len(results))
	for i, r := range results {
		tr := TestResult{
			Stdout: r.Stdout,
			Status: r.Status.Label(),
			Time:   r.Time,
			Memory: r.Memory,
		}
		if i < len(jobs) {
			tr.Stdin = jobs[i].Stdin
			tr.ExpectedOutput = jobs[i].ExpectedOutput
		}
		out = append(out, tr)
	}
	v.Results = out
	return v
}
