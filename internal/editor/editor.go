package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Edit opens the message in the given editor command via a temporary
// file and returns the edited content. The editor is attached to the
// terminal so interactive editors (vim, nano) work.
func Edit(ctx context.Context, editorCmd, message string) (string, error) {
	if strings.TrimSpace(editorCmd) == "" {
		return "", fmt.Errorf("no editor configured")
	}

	tmp, err := os.CreateTemp("", "llm-commit-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(message); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	// GIT_EDITOR may be a command with arguments, run it through the shell
	cmd := exec.CommandContext(ctx, "sh", "-c", editorCmd+" "+shellQuote(tmpPath))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", editorCmd, err)
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to read edited message: %w", err)
	}

	return string(edited), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
