package domain

import "fmt"

// RuntimeID is the execution engine's numeric identifier for a language runtime
type RuntimeID int

// JobHandle is the opaque token the execution engine returns for a dispatched job
type JobHandle string

// JudgeStatus is the execution engine's status id for a single job
type JudgeStatus int

const (
	JudgeStatusInQueue             JudgeStatus = 1
	JudgeStatusProcessing          JudgeStatus = 2
	JudgeStatusAccepted            JudgeStatus = 3
	JudgeStatusWrongAnswer         JudgeStatus = 4
	JudgeStatusTimeLimitExceeded   JudgeStatus = 5
	JudgeStatusCompilationError    JudgeStatus = 6
	JudgeStatusRuntimeErrorSIGSEGV JudgeStatus = 7
	JudgeStatusRuntimeErrorSIGXFSZ JudgeStatus = 8
	JudgeStatusRuntimeErrorSIGFPE  JudgeStatus = 9
	JudgeStatusRuntimeErrorSIGABRT JudgeStatus = 10
	JudgeStatusRuntimeErrorNZEC    JudgeStatus = 11
	JudgeStatusRuntimeErrorOther   JudgeStatus = 12
	JudgeStatusInternalError       JudgeStatus = 13
	JudgeStatusExecFormatError     JudgeStatus = 14
)

var judgeStatusLabels = map[JudgeStatus]SubmissionStatus{
	JudgeStatusAccepted:            SubmissionStatusAccepted,
	JudgeStatusWrongAnswer:         SubmissionStatusWrongAnswer,
	JudgeStatusTimeLimitExceeded:   SubmissionStatusTimeLimitExceeded,
	JudgeStatusCompilationError:    SubmissionStatusCompilationError,
	JudgeStatusRuntimeErrorSIGSEGV: "Runtime Error (SIGSEGV)",
	JudgeStatusRuntimeErrorSIGXFSZ: "Runtime Error (SIGXFSZ)",
	JudgeStatusRuntimeErrorSIGFPE:  "Runtime Error (SIGFPE)",
	JudgeStatusRuntimeErrorSIGABRT: "Runtime Error (SIGABRT)",
	JudgeStatusRuntimeErrorNZEC:    "Runtime Error (NZEC)",
	JudgeStatusRuntimeErrorOther:   "Runtime Error (Other)",
	JudgeStatusInternalError:       SubmissionStatusInternalError,
	JudgeStatusExecFormatError:     "Exec Format Error",
}

// IsTerminal reports whether the engine has finished with the job.
// Anything past Processing is final, including ids this service does not know.
func (s JudgeStatus) IsTerminal() bool {
	return s > JudgeStatusProcessing
}

// Label maps the engine status onto the submission status vocabulary.
// Unknown terminal ids are reported as an internal error.
func (s JudgeStatus) Label() SubmissionStatus {
	switch s {
	case JudgeStatusInQueue, JudgeStatusProcessing:
		return SubmissionStatusPending
	}
	if label, ok := judgeStatusLabels[s]; ok {
		return label
	}
	return SubmissionStatusInternalError
}

func (s JudgeStatus) String() string {
	return fmt.Sprintf("%d(%s)", int(s), s.Label())
}

// EvaluationJob is one unit of remote work: the submitted source against a single test case
type EvaluationJob struct {
	SourceCode     string
	RuntimeID      RuntimeID
	Stdin          string
	ExpectedOutput string
}

// NewEvaluationJobs builds one job per test case, in test case order
func NewEvaluationJobs(code string, runtime RuntimeID, testCases []*TestCase) []EvaluationJob {
	jobs := make([]EvaluationJob, 0, len(testCases))
	for _, tc := range testCases {
		jobs = append(jobs, EvaluationJob{
			SourceCode:     code,
			RuntimeID:      runtime,
			Stdin:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}
	return jobs
}

// JobResult is the engine's report for a single job.
// Time is in seconds and Memory in kilobytes.
type JobResult struct {
	Handle        JobHandle
	Status        JudgeStatus
	Stdout        string
	Stderr        string
	CompileOutput string
	Message       string
	Time          float64
	Memory        int64
}

// Accepted reports whether the job passed
func (r JobResult) Accepted() bool {
	return r.Status == JudgeStatusAccepted
}

// ErrorText picks the most specific diagnostic the engine produced
func (r JobResult) ErrorText() string {
	switch {
	case r.Stderr != "":
		return r.Stderr
	case r.CompileOutput != "":
		return r.CompileOutput
	case r.Message != "":
		return r.Message
	default:
		return "Unknown Error"
	}
}
