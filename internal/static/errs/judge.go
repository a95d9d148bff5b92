package errs

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input rejection. Nothing is dispatched or persisted for these.
var ErrValidation = errors.New("validation error")

var (
	ErrCodeRequired         = &ValidationError{Field: "code", Reason: "required"}
	ErrLanguageRequired     = &ValidationError{Field: "language", Reason: "required"}
	ErrLanguageNotSupported = &ValidationError{Field: "language", Reason: "not supported"}
	ErrProblemRequired      = &ValidationError{Field: "problemId", Reason: "required"}
	ErrCodeTooLarge         = &ValidationError{Field: "code", Reason: "too large"}
	ErrNoTestCases          = &ValidationError{Field: "problemId", Reason: "problem has no test cases"}
)

var (
	ErrProblemNotFound            = errors.New("problem not found")
	ErrUnauthorized               = errors.New("unauthorized")
	ErrRateLimited                = errors.New("submit too frequently")
	ErrDispatchUnavailable        = errors.New("execution engine unavailable")
	ErrDispatchInconsistent       = errors.New("execution engine returned inconsistent handles")
	ErrJudgeTimeout               = errors.New("judge timed out")
	ErrSubmissionNotFound         = errors.New("submission not found")
	ErrSubmissionAlreadyFinalized = errors.New("submission already finalized")
)

// ValidationError names the offending field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsValidation reports whether err is an input rejection
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
