package language

import "gitlab.com/fcv-2025.net/submission-judge/internal/domain"

// ILanguageResolver maps user facing language names onto engine runtime ids
type ILanguageResolver interface {
	// Resolve returns the runtime id for name, or errs.ErrLanguageNotSupported
	Resolve(name string) (domain.RuntimeID, error)

	// Languages lists the supported names in sorted order
	Languages() []string
}
