package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gitllm/git-llm-commit/internal/apperr"
)

// Executor defines the interface for git command execution
type Executor interface {
	// DiffCached returns the diff of staged changes
	DiffCached(ctx context.Context) (string, error)

	// StagedFiles returns the paths of all staged files
	StagedFiles(ctx context.Context) ([]string, error)

	// Status returns the current git status
	Status(ctx context.Context) (string, error)

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error

	// Editor returns the editor git would use for commit messages
	Editor(ctx context.Context) (string, error)

	// CurrentBranch returns the current branch name
	CurrentBranch(ctx context.Context) (string, error)
}

// DefaultExecutor is the default implementation of Executor, shelling
// out to the git binary.
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor rooted at workDir
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// StagedFiles returns the paths of all staged files
func (e *DefaultExecutor) StagedFiles(ctx context.Context) ([]string, error) {
	output, err := e.runGit(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}

	var files []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// Status returns the current git status
func (e *DefaultExecutor) Status(ctx context.Context) (string, error) {
	return e.runGit(ctx, "status")
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	if _, err := e.runGit(ctx, "commit", "-m", message); err != nil {
		return apperr.Wrap(apperr.KindCommitFailed, err)
	}
	return nil
}

// Editor returns the editor git would use for commit messages
func (e *DefaultExecutor) Editor(ctx context.Context) (string, error) {
	return e.runGit(ctx, "var", "GIT_EDITOR")
}

// CurrentBranch returns the current branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	return e.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}
