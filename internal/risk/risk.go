package risk

import (
	"fmt"
	"regexp"
)

// DefaultPatterns match staged paths that commonly hold credentials.
// A match does not block the commit, it forces an explicit confirmation.
var DefaultPatterns = []string{
	`\.env$`,
	`\.secret$`,
	`credentials.*`,
	`.*_key$`,
	`secrets?\.(yml|yaml|json|toml)$`,
}

// Detector flags potentially risky files in the staged set
type Detector struct {
	patterns []*regexp.Regexp
}

// NewDetector creates a Detector with the default patterns plus any
// extra patterns. Invalid extra patterns are rejected.
func NewDetector(extraPatterns ...string) (*Detector, error) {
	all := make([]string, 0, len(DefaultPatterns)+len(extraPatterns))
	all = append(all, DefaultPatterns...)
	all = append(all, extraPatterns...)

	compiled := make([]*regexp.Regexp, 0, len(all))
	for _, p := range all {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid risk pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	return &Detector{patterns: compiled}, nil
}

// Detect returns the staged paths matching any risky pattern, in the
// order given. Each path is reported at most once.
func (d *Detector) Detect(files []string) []string {
	var risky []string
	for _, file := range files {
		for _, re := range d.patterns {
			if re.MatchString(file) {
				risky = append(risky, file)
				break
			}
		}
	}
	return risky
}
