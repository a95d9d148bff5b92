package domain

import "testing"

func TestPendingSubmissionApply(t *testing.T) {
	s := NewPendingSubmission("u1", "p1", "code", "go", 3)
	if s.Status != SubmissionStatusPending || s.Status.IsFinal() {
		t.Fatalf("new submission must be pending, got %q", s.Status)
	}

	s.Apply(Verdict{Status: SubmissionStatusWrongAnswer, TestCasesPassed: 2, TestCasesTotal: 99, Runtime: 0.3, Memory: 512, ErrorMessage: "diff"})
	if !s.Status.IsFinal() {
		t.Fatalf("expected final status, got %q", s.Status)
	}
	if s.TestCasesPassed != 2 || s.Runtime != 0.3 || s.Memory != 512 || s.ErrorMessage != "diff" {
		t.Fatalf("verdict not applied: %+v", s)
	}
	if s.TestCasesTotal != 3 {
		t.Fatalf("total must stay fixed, got %d", s.TestCasesTotal)
	}
}

func TestProblemSplitsTestCases(t *testing.T) {
	p := &Problem{TestCases: []*TestCase{
		{Input: "a"},
		{Input: "b", IsHidden: true},
		{Input: "c"},
	}}

	visible := p.VisibleTestCases()
	hidden := p.HiddenTestCases()
	if len(visible) != 2 || visible[0].Input != "a" || visible[1].Input != "c" {
		t.Fatalf("unexpected visible cases")
	}
	if len(hidden) != 1 || hidden[0].Input != "b" {
		t.Fatalf("unexpected hidden cases")
	}
}

func TestVerdictWithResults(t *testing.T) {
	jobs := []EvaluationJob{{Stdin: "1", ExpectedOutput: "2"}}
	results := []JobResult{{Status: JudgeStatusWrongAnswer, Stdout: "3", Time: 0.01, Memory: 64}}

	v := Verdict{Status: SubmissionStatusWrongAnswer}.WithResults(jobs, results)
	if len(v.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(v.Results))
	}
	got := v.Results[0]
	if got.Stdin != "1" || got.ExpectedOutput != "2" || got.Stdout != "3" || got.Status != SubmissionStatusWrongAnswer {
		t.Fatalf("unexpected result %+v", got)
	}
}
