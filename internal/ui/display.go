package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds statistics about a generation run
type ExecutionStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// ShowCommitMessage displays a formatted commit message
func ShowCommitMessage(message string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintln(output, "\nGenerated commit message:"); err != nil {
		return err
	}
	if _, err := cyan.Fprintln(output, "─────────────────────────────"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(output, message); err != nil {
		return err
	}
	_, err := cyan.Fprintln(output, "─────────────────────────────")
	return err
}

// ShowRiskyFiles lists staged files that look like they hold secrets
func ShowRiskyFiles(files []string, output io.Writer) error {
	yellow := color.New(color.FgYellow)

	if _, err := yellow.Fprintln(output, "\nPotentially risky files staged:"); err != nil {
		return err
	}
	for _, file := range files {
		if _, err := fmt.Fprintf(output, "  - %s\n", file); err != nil {
			return err
		}
	}
	return nil
}

// ShowStats prints token usage and timing for a run
func ShowStats(stats *ExecutionStats, output io.Writer) error {
	gray := color.New(color.FgHiBlack)

	if stats.TotalTokens > 0 {
		if _, err := gray.Fprintf(output, "\nTokens: %d prompt + %d completion = %d total\n",
			stats.PromptTokens, stats.CompletionTokens, stats.TotalTokens); err != nil {
			return err
		}
	}
	_, err := gray.Fprintf(output, "Took %s\n", stats.Duration().Round(time.Millisecond))
	return err
}
