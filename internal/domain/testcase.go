package domain

import "github.com/google/uuid"

// TestCase represents a test case for code execution
type TestCase struct {
	ID             uuid.UUID `db:"id"`
	ProblemID      string    `db:"problem_id"`
	Input          string    `db:"input"`
	ExpectedOutput string    `db:"expected_output"`
	IsHidden       bool      `db:"is_hidden"`
	Position       int       `db:"position"`
}

// Problem is the read-only view of a problem needed for grading
type Problem struct {
	ID        string      `db:"id"`
	Title     string      `db:"title"`
	TestCases []*TestCase `db:"-"`
}

// VisibleTestCases are the examples shown to the user and used by run
func (p *Problem) VisibleTestCases() []*TestCase {
	return p.filter(false)
}

// HiddenTestCases are the grading cases used by submit
func (p *Problem) HiddenTestCases() []*TestCase {
	return p.filter(true)
}

func (p *Problem) filter(hidden bool) []*TestCase {
	out := make([]*TestCase, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		if tc.IsHidden == hidden {
			out = append(out, tc)
		}
	}
	return out
}

type TestCasesTable struct {
	ID             string
	ProblemID      string
	Input          string
	ExpectedOutput string
	IsHidden       string
	Position       string
}

func GetTestCaseTable() TestCasesTable {
	return TestCasesTable{
		ID:             "id",
		ProblemID:      "problem_id",
		Input:          "input",
		ExpectedOutput: "expected_output",
		IsHidden:       "is_hidden",
		Position:       "position",
	}
}

func (t TestCasesTable) GetTableName() string {
	return "test_cases"
}

type ProblemsTable struct {
	ID    string
	Title string
}

func GetProblemTable() ProblemsTable {
	return ProblemsTable{
		ID:    "id",
		Title: "title",
	}
}

func (t ProblemsTable) GetTableName() string {
	return "problems"
}
