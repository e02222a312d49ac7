package cli

import (
	"github.com/spf13/cobra"

	"github.com/gitllm/git-llm-commit/internal/log"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd generates a commit message for the staged changes when called
// without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "git-llm-commit",
	Short: "Generate Conventional Commit messages from staged changes using an LLM",
	Long: `git-llm-commit inspects your staged changes, sends the diff to an LLM,
and proposes a Conventional Commit message you can commit, edit or discard.

Stage your changes, then run:
  git llm-commit

With no config file, the OPENAI_API_KEY environment variable is used.
Run "git-llm-commit init" to create a config file for other providers.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runCommit,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ~/.llm-commit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model to use (overrides config)")
}
