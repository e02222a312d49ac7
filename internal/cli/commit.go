package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitllm/git-llm-commit/internal/config"
	"github.com/gitllm/git-llm-commit/internal/editor"
	"github.com/gitllm/git-llm-commit/internal/generator"
	"github.com/gitllm/git-llm-commit/internal/git"
	"github.com/gitllm/git-llm-commit/internal/llm"
	"github.com/gitllm/git-llm-commit/internal/log"
	"github.com/gitllm/git-llm-commit/internal/message"
	"github.com/gitllm/git-llm-commit/internal/risk"
	"github.com/gitllm/git-llm-commit/internal/ui"
)

var (
	commitContext  string
	commitLanguage string
	commitAutoYes  bool
	commitPreview  bool
	dynamicLength  bool
)

func init() {
	rootCmd.Flags().StringVarP(&commitContext, "context", "c", "", "Additional context to help the model generate a better message")
	rootCmd.Flags().StringVarP(&commitLanguage, "language", "l", "", "Output language (en, zh, ja, etc.)")
	rootCmd.Flags().BoolVarP(&commitAutoYes, "yes", "y", false, "Commit without prompting for confirmation")
	rootCmd.Flags().BoolVarP(&commitPreview, "preview", "p", false, "Print the generated message without committing")
	rootCmd.Flags().BoolVar(&dynamicLength, "dynamic-length", false, "Allow multi-line messages sized to the change")
}

// commitGenerator is the part of generator.Generator the pipeline needs
type commitGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Response, error)
}

// pipelineOptions wires the pipeline's collaborators so tests can
// replace the git executor and the generator.
type pipelineOptions struct {
	Generator commitGenerator
	GitExec   git.Executor
	Risk      *risk.Detector // nil disables the risky-file gate
	Language  string
	Context   string
	Preview   bool
	AutoYes   bool
	Input     io.Reader
	Output    io.Writer
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log.DebugConfig("Configuration", cfg)

	modelConfig, err := cfg.GetModel(modelName)
	if err != nil {
		return fmt.Errorf("failed to get model config: %w", err)
	}
	log.Debug("Using model: %s (provider: %s)", modelConfig.Model, modelConfig.Provider)

	// A missing credential fails here, before anything else runs
	provider, err := llm.NewProviderFactory().Create(*modelConfig)
	if err != nil {
		return err
	}

	commitConfig := cfg.GetCommitConfig()
	if dynamicLength {
		// Command-line flag overrides config and environment
		commitConfig.DynamicLength = true
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	gitExec := git.NewExecutor(cwd)

	var detector *risk.Detector
	if riskCfg := cfg.GetRiskConfig(); !riskCfg.Disabled {
		detector, err = risk.NewDetector(riskCfg.Patterns...)
		if err != nil {
			return err
		}
	}

	gen, err := generator.New(generator.Options{
		GitExecutor: gitExec,
		LLMProvider: provider,
		Commit:      commitConfig,
	})
	if err != nil {
		return err
	}

	err = runPipeline(ctx, pipelineOptions{
		Generator: gen,
		GitExec:   gitExec,
		Risk:      detector,
		Language:  cfg.GetLanguage(commitLanguage),
		Context:   commitContext,
		Preview:   commitPreview,
		AutoYes:   commitAutoYes,
		Input:     os.Stdin,
		Output:    os.Stdout,
	})
	if err != nil {
		return err
	}

	log.DebugDuration("run", time.Since(startTime))
	return nil
}

// runPipeline executes the linear flow: risk gate, generate, confirm,
// apply. Preview mode stops after printing the message.
func runPipeline(ctx context.Context, opts pipelineOptions) error {
	startTime := time.Now()
	input := bufio.NewReader(opts.Input)

	// Risky-file gate runs before anything leaves the machine
	if opts.Risk != nil {
		files, err := opts.GitExec.StagedFiles(ctx)
		if err != nil {
			return fmt.Errorf("failed to get staged files: %w", err)
		}
		if risky := opts.Risk.Detect(files); len(risky) > 0 {
			if err := ui.ShowRiskyFiles(risky, opts.Output); err != nil {
				return err
			}
			confirmed, err := ui.Confirm("\nCommit anyway?", input, opts.Output)
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("commit aborted: risky files staged")
			}
		}
	}

	resp, err := opts.Generator.Generate(ctx, generator.Request{
		Language: opts.Language,
		Context:  opts.Context,
	})
	if err != nil {
		return err
	}
	commitMessage := resp.Message

	// Preview mode prints the bare message and stops
	if opts.Preview {
		_, err := fmt.Fprintln(opts.Output, commitMessage)
		return err
	}

	if err := ui.ShowCommitMessage(commitMessage, opts.Output); err != nil {
		return err
	}

	stats := &ui.ExecutionStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	}
	_ = ui.ShowStats(stats, opts.Output)

	if !opts.AutoYes {
		for {
			answer, err := ui.ConfirmCommit(input, opts.Output)
			if err != nil {
				return err
			}

			if answer == ui.AnswerNo {
				fmt.Fprintln(opts.Output, "Commit cancelled.")
				return nil
			}
			if answer == ui.AnswerYes {
				break
			}

			// Edit: open the message in git's editor and re-confirm
			editorCmd, err := opts.GitExec.Editor(ctx)
			if err != nil {
				return fmt.Errorf("failed to get git editor: %w", err)
			}
			edited, err := editor.Edit(ctx, editorCmd, commitMessage)
			if err != nil {
				return err
			}
			commitMessage, err = message.Normalize(edited)
			if err != nil {
				return err
			}
			if err := ui.ShowCommitMessage(commitMessage, opts.Output); err != nil {
				return err
			}
		}
	}

	if err := opts.GitExec.Commit(ctx, commitMessage); err != nil {
		return err
	}

	fmt.Fprintln(opts.Output, "\nCommit created successfully.")
	return nil
}
