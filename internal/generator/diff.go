package generator

import (
	"strings"
	"unicode/utf8"

	"github.com/gitllm/git-llm-commit/internal/config"
)

// truncationMarker is appended when a diff is cut at the byte ceiling
const truncationMarker = "\n... [diff truncated]"

// DetailLevel describes how much detail the model is asked for,
// derived from the size of the change.
type DetailLevel string

const (
	DetailConcise  DetailLevel = "concise"
	DetailModerate DetailLevel = "moderate"
	DetailDetailed DetailLevel = "detailed"
)

// CountChangedLines counts added and removed lines in a git diff.
// File metadata lines (+++/---) are not counted.
func CountChangedLines(diff string) int {
	count := 0
	for _, line := range strings.Split(diff, "\n") {
		if (strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-")) &&
			!strings.HasPrefix(line, "+++") && !strings.HasPrefix(line, "---") {
			count++
		}
	}
	return count
}

// DetailFor maps a changed-line count onto a detail level
func DetailFor(changedLines int, cfg *config.CommitConfig) DetailLevel {
	switch {
	case changedLines <= cfg.SmallChangeThreshold:
		return DetailConcise
	case changedLines <= cfg.LargeChangeThreshold:
		return DetailModerate
	default:
		return DetailDetailed
	}
}

// MaxTokensFor maps a changed-line count onto a response token budget
func MaxTokensFor(changedLines int, cfg *config.CommitConfig) int {
	switch {
	case changedLines <= cfg.SmallChangeThreshold:
		return cfg.SmallChangeTokens
	case changedLines <= cfg.LargeChangeThreshold:
		return cfg.MediumChangeTokens
	default:
		return cfg.LargeChangeTokens
	}
}

// TruncateDiff limits a diff to maxBytes, cutting at a line boundary
// and appending a marker. It reports whether anything was cut.
// maxBytes <= 0 disables the cap.
func TruncateDiff(diff string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(diff) <= maxBytes {
		return diff, false
	}

	// Never cut through a multi-byte rune
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}

	head := diff[:cut]
	if idx := strings.LastIndex(head, "\n"); idx > 0 {
		head = head[:idx]
	}
	return head + truncationMarker, true
}
