package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the human readable state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending           SubmissionStatus = "Pending"
	SubmissionStatusAccepted          SubmissionStatus = "Accepted"
	SubmissionStatusWrongAnswer       SubmissionStatus = "Wrong Answer"
	SubmissionStatusTimeLimitExceeded SubmissionStatus = "Time Limit Exceeded"
	SubmissionStatusCompilationError  SubmissionStatus = "Compilation Error"
	SubmissionStatusInternalError     SubmissionStatus = "Internal Error"
)

// IsFinal reports whether the status is a terminal verdict
func (s SubmissionStatus) IsFinal() bool {
	return s != "" && s != SubmissionStatusPending
}

// Submission is the durable record of a graded attempt
type Submission struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	UserID          string           `db:"user_id" json:"userId"`
	ProblemID       string           `db:"problem_id" json:"problemId"`
	Code            string           `db:"code" json:"code"`
	Language        string           `db:"language" json:"language"`
	Status          SubmissionStatus `db:"status" json:"status"`
	TestCasesPassed int              `db:"test_cases_passed" json:"testCasesPassed"`
	TestCasesTotal  int              `db:"test_cases_total" json:"testCasesTotal"`
	Runtime         float64          `db:"runtime" json:"runtime"`
	Memory          int64            `db:"memory" json:"memory"`
	ErrorMessage    string           `db:"error_message" json:"errorMessage,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updatedAt"`
}

// NewPendingSubmission creates a submission that has not been graded yet.
// The total is fixed here and never changes afterwards.
func NewPendingSubmission(userID, problemID, code, language string, total int) *Submission {
	now := time.Now().UTC()
	return &Submission{
		ID:             uuid.New(),
		UserID:         userID,
		ProblemID:      problemID,
		Code:           code,
		Language:       language,
		Status:         SubmissionStatusPending,
		TestCasesTotal: total,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Apply copies a verdict onto the record
func (s *Submission) Apply(v Verdict) {
	s.Status = v.Status
	s.TestCasesPassed = v.TestCasesPassed
	s.Runtime = v.Runtime
	s.Memory = v.Memory
	s.ErrorMessage = v.ErrorMessage
	s.UpdatedAt = time.Now().UTC()
}

type SubmissionsTable struct {
	ID              string
	UserID          string
	ProblemID       string
	Code            string
	Language        string
	Status          string
	TestCasesPassed string
	TestCasesTotal  string
	Runtime         string
	Memory          string
	ErrorMessage    string
	CreatedAt       string
	UpdatedAt       string
}

func GetSubmissionTable() SubmissionsTable {
	return SubmissionsTable{
		ID:              "id",
		UserID:          "user_id",
		ProblemID:       "problem_id",
		Code:            "code",
		Language:        "language",
		Status:          "status",
		TestCasesPassed: "test_cases_passed",
		TestCasesTotal:  "test_cases_total",
		Runtime:         "runtime",
		Memory:          "memory",
		ErrorMessage:    "error_message",
		CreatedAt:       "created_at",
		UpdatedAt:       "updated_at",
	}
}

func (t SubmissionsTable) GetTableName() string {
	return "submissions"
}

func (t SubmissionsTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ProblemID, t.Code, t.Language, t.Status,
		t.TestCasesPassed, t.TestCasesTotal, t.Runtime, t.Memory,
		t.ErrorMessage, t.CreatedAt, t.UpdatedAt,
	}
}
