package message

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gitllm/git-llm-commit/internal/apperr"
)

// Types are the commit types allowed by the Conventional Commits
// specification, in the order they are presented to the model.
var Types = []string{
	"feat",
	"fix",
	"docs",
	"style",
	"refactor",
	"perf",
	"test",
	"build",
	"ci",
	"chore",
	"revert",
}

var validTypes = func() map[string]bool {
	m := make(map[string]bool, len(Types))
	for _, t := range Types {
		m[t] = true
	}
	return m
}()

// Commit represents a structured Conventional Commit message
type Commit struct {
	Type        string // feat, fix, docs, ...
	Scope       string // optional
	Description string // subject line
	Body        string // optional
	Footer      string // optional, breaking changes or issue references
}

// Title returns the formatted commit title (first line)
func (c *Commit) Title() string {
	if c.Scope != "" {
		return fmt.Sprintf("%s(%s): %s", c.Type, c.Scope, c.Description)
	}
	return fmt.Sprintf("%s: %s", c.Type, c.Description)
}

// Message returns the complete formatted commit message
func (c *Commit) Message() string {
	parts := []string{c.Title()}

	if c.Body != "" {
		parts = append(parts, "", c.Body)
	}
	if c.Footer != "" {
		parts = append(parts, "", c.Footer)
	}

	return strings.Join(parts, "\n")
}

// Validate checks if the commit is valid
func (c *Commit) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("commit type is required")
	}
	if !validTypes[c.Type] {
		return fmt.Errorf("invalid commit type: %s", c.Type)
	}
	if c.Description == "" {
		return fmt.Errorf("commit description is required")
	}
	return nil
}

// Normalize cleans a raw model response into a plain commit message:
// surrounding markdown code fences (with or without a language tag) and
// surrounding whitespace and blank lines are removed. Normalize is
// idempotent. An empty result is an InvalidFormat failure.
func Normalize(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		// Drop the opening fence and its optional language tag
		lines = lines[1:]
		// Drop the matching closing fence if present
		if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
			lines = lines[:n-1]
		}
		s = strings.Join(lines, "\n")
		s = strings.TrimSpace(s)
	}

	// Single-line responses sometimes arrive wrapped in inline backticks
	if !strings.Contains(s, "\n") {
		s = strings.Trim(s, "`")
		s = strings.TrimSpace(s)
	}

	if s == "" {
		return "", apperr.New(apperr.KindInvalidFormat, "model response is empty after normalization")
	}
	return s, nil
}

// paragraphBreak separates body paragraphs (one or more blank lines)
var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

// footerStart matches the first line of a footer block: a git trailer
// ("Refs: #123", "Reviewed-by: name", "Closes #45") or a breaking
// change note.
var footerStart = regexp.MustCompile(`^(BREAKING[ -]CHANGE: |[A-Za-z][A-Za-z0-9-]*: |[A-Za-z][A-Za-z0-9-]* #)`)

func isFooterBlock(paragraph string) bool {
	first := strings.SplitN(paragraph, "\n", 2)[0]
	return footerStart.MatchString(first)
}

// Parse extracts a structured Commit from normalized message text. The
// first line is read as "type(scope): description"; a line without a
// conventional prefix becomes a feat description. The rest splits into
// blank-line-separated paragraphs forming the body; a trailing footer
// block (trailers or BREAKING CHANGE) is kept apart so Message can
// reproduce the original separator structure.
func Parse(text string) (*Commit, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, apperr.New(apperr.KindInvalidFormat, "empty commit message")
	}

	title := strings.TrimSpace(lines[0])
	commit := &Commit{}

	if idx := strings.Index(title, ":"); idx > 0 {
		prefix := title[:idx]
		commit.Description = strings.TrimSpace(title[idx+1:])

		// Check for scope: type(scope)
		if scopeStart := strings.Index(prefix, "("); scopeStart > 0 {
			if scopeEnd := strings.Index(prefix, ")"); scopeEnd > scopeStart {
				commit.Type = prefix[:scopeStart]
				commit.Scope = prefix[scopeStart+1 : scopeEnd]
			}
		} else {
			commit.Type = prefix
		}
	} else {
		// No conventional commit prefix, use as description
		commit.Type = "feat"
		commit.Description = title
	}

	if rest := strings.TrimSpace(strings.Join(lines[1:], "\n")); rest != "" {
		paragraphs := paragraphBreak.Split(rest, -1)
		for i := range paragraphs {
			paragraphs[i] = strings.TrimSpace(paragraphs[i])
		}
		if n := len(paragraphs); isFooterBlock(paragraphs[n-1]) {
			commit.Footer = paragraphs[n-1]
			paragraphs = paragraphs[:n-1]
		}
		commit.Body = strings.Join(paragraphs, "\n\n")
	}

	if err := commit.Validate(); err != nil {
		return nil, apperr.Newf(apperr.KindInvalidFormat, "failed to parse commit message: %w", err)
	}

	return commit, nil
}
