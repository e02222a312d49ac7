package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/gitllm/git-llm-commit/internal/apperr"
	"github.com/gitllm/git-llm-commit/internal/config"
	"github.com/gitllm/git-llm-commit/internal/git"
	"github.com/gitllm/git-llm-commit/internal/llm"
	"github.com/gitllm/git-llm-commit/internal/log"
	"github.com/gitllm/git-llm-commit/internal/message"
	"github.com/gitllm/git-llm-commit/pkg/lang"
)

// Request represents a request to generate a commit message
type Request struct {
	Language string // Output language
	Context  string // User-provided context (optional)
}

// Response represents the generated commit message
type Response struct {
	Commit           *message.Commit // Structured commit information
	Message          string          // Complete formatted commit message
	Truncated        bool            // Whether the diff was cut at the byte ceiling
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Options contains configuration for Generator
type Options struct {
	GitExecutor git.Executor         // Git executor for reading repository state
	LLMProvider llm.Provider         // LLM provider for generating messages
	Commit      *config.CommitConfig // Generation tuning, nil means defaults
}

// Validate validates the options and sets defaults
func (o *Options) Validate() error {
	if o.GitExecutor == nil {
		return fmt.Errorf("git executor is required")
	}
	if o.LLMProvider == nil {
		return fmt.Errorf("LLM provider is required")
	}
	if o.Commit == nil {
		o.Commit = config.DefaultCommitConfig()
	}
	return nil
}

// Generator runs the diff-to-commit-message pipeline: collect the
// staged diff, build the prompt, call the model once, normalize and
// parse the response.
type Generator struct {
	opts Options
}

// New creates a new Generator instance
func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Generator{opts: opts}, nil
}

// Generate produces a commit message for the currently staged changes
func (g *Generator) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Language == "" {
		req.Language = "en"
	}
	cfg := g.opts.Commit

	// Collect repository state before touching the network
	diff, err := g.opts.GitExecutor.DiffCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged changes: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		return nil, apperr.New(apperr.KindNoStagedChanges,
			"no staged changes found. Please stage your changes and try again")
	}

	status, err := g.opts.GitExecutor.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get git status: %w", err)
	}

	// An unborn HEAD (no commits yet) has no branch name; the prompt
	// just omits it.
	branch, _ := g.opts.GitExecutor.CurrentBranch(ctx)

	truncated := false
	if len(diff) > cfg.MaxDiffBytes && cfg.MaxDiffBytes > 0 {
		if cfg.FailOnLargeDiff {
			return nil, apperr.Newf(apperr.KindDiffTooLarge,
				"staged diff is %d bytes, over the %d byte limit (raise commit.max_diff_bytes or disable fail_on_large_diff)",
				len(diff), cfg.MaxDiffBytes)
		}
		diff, truncated = TruncateDiff(diff, cfg.MaxDiffBytes)
		log.Warn("staged diff truncated to %d bytes", cfg.MaxDiffBytes)
	}

	changedLines := CountChangedLines(diff)
	detail := DetailFor(changedLines, cfg)
	maxTokens := MaxTokensFor(changedLines, cfg)
	log.Debug("Diff: %d changed lines, detail=%s, max_tokens=%d, truncated=%v",
		changedLines, detail, maxTokens, truncated)

	systemPrompt := BuildSystemPrompt(cfg.DynamicLength, languageLabel(req.Language), req.Context, strings.Join(message.Types, ", "))
	userMessage := buildUserMessage(branch, status, diff, detail, changedLines)

	chatModel, err := g.opts.LLMProvider.CreateChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is nil (provider: %s)", g.opts.LLMProvider.Name())
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userMessage},
	}

	log.Debug("Sending request to %s (%s)", g.opts.LLMProvider.Name(), g.opts.LLMProvider.GetConfig().Model)

	resp, err := chatModel.Generate(ctx, messages,
		model.WithTemperature(float32(cfg.Temperature)),
		model.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return nil, llm.ClassifyError(err)
	}

	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, apperr.New(apperr.KindEmptyResponse, "received empty response from the completion service")
	}

	var promptTokens, completionTokens, totalTokens int
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		promptTokens = usage.PromptTokens
		completionTokens = usage.CompletionTokens
		totalTokens = usage.TotalTokens
	}
	log.DebugTokenUsage(promptTokens, completionTokens, totalTokens)

	normalized, err := message.Normalize(resp.Content)
	if err != nil {
		return nil, err
	}

	commit, err := message.Parse(normalized)
	if err != nil {
		return nil, err
	}

	return &Response{
		Commit:           commit,
		Message:          commit.Message(),
		Truncated:        truncated,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
	}, nil
}

// languageLabel spells out known language codes for the prompt, so the
// model sees "日本語 (ja)" rather than a bare code.
func languageLabel(code string) string {
	l := lang.Language(code)
	if l.IsValid() {
		return fmt.Sprintf("%s (%s)", l.DisplayName(), l)
	}
	return code
}

// buildUserMessage assembles the user prompt: branch and status
// overview first, then the diff itself, then sizing hints for the
// model.
func buildUserMessage(branch, status string, diff string, detail DetailLevel, changedLines int) string {
	var b strings.Builder
	b.WriteString("Please analyze the following staged changes and generate a commit message.\n\n")

	if branch != "" {
		fmt.Fprintf(&b, "Current branch: %s\n\n", branch)
	}

	b.WriteString("## Git Status Overview\n")
	b.WriteString("```\n")
	b.WriteString(status)
	b.WriteString("\n```\n\n")

	b.WriteString("## Staged Changes (Diff)\n")
	b.WriteString("```diff\n")
	b.WriteString(diff)
	b.WriteString("\n```\n\n")

	fmt.Fprintf(&b, "Generate a %s commit message following the Conventional Commits specification. ", detail)
	fmt.Fprintf(&b, "This is a %s change with %d lines modified.", detail, changedLines)

	return b.String()
}
