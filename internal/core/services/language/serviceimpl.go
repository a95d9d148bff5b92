package language

import (
	"fmt"
	"sort"
	"strings"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

var _ ILanguageResolver = (*Resolver)(nil)

// DefaultRuntimes is the built-in table used when no languages file is configured
var DefaultRuntimes = map[string]domain.RuntimeID{
	"c":          50,
	"cpp":        54,
	"c++":        54,
	"go":         60,
	"java":       62,
	"javascript": 63,
	"js":         63,
	"python":     71,
	"rust":       73,
}

// Resolver is an immutable lookup table, safe for concurrent use
type Resolver struct {
	runtimes map[string]domain.RuntimeID
	names    []string
}

// NewResolver copies the table, normalising keys to lower case
func NewResolver(runtimes map[string]domain.RuntimeID) (*Resolver, error) {
	if len(runtimes) == 0 {
		return nil, fmt.Errorf("language table is empty")
	}
	table := make(map[string]domain.RuntimeID, len(runtimes))
	names := make([]string, 0, len(runtimes))
	for name, id := range runtimes {
		key := normalize(name)
		if key == "" {
			return nil, fmt.Errorf("language name cannot be empty")
		}
		if id <= 0 {
			return nil, fmt.Errorf("language %q has invalid runtime id %d", name, id)
		}
		if _, dup := table[key]; dup {
			return nil, fmt.Errorf("language %q is defined twice", key)
		}
		table[key] = id
		names = append(names, key)
	}
	sort.Strings(names)
	return &Resolver{runtimes: table, names: names}, nil
}

func (r *Resolver) Resolve(name string) (domain.RuntimeID, error) {
	key := normalize(name)
	if key == "" {
		return 0, errs.ErrLanguageRequired
	}
	id, ok := r.runtimes[key]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, errs.ErrLanguageNotSupported)
	}
	return id, nil
}

func (r *Resolver) Languages() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
