package submission

import (
	"strings"

	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

func validateInput(problemID, code, language string, maxCodeBytes int) error {
	if strings.TrimSpace(problemID) == "" {
		return errs.ErrProblemRequired
	}
	if strings.TrimSpace(code) == "" {
		return errs.ErrCodeRequired
	}
	if strings.TrimSpace(language) == "" {
		return errs.ErrLanguageRequired
	}
	if maxCodeBytes > 0 && len(code) > maxCodeBytes {
		return errs.ErrCodeTooLarge
	}
	return nil
}
