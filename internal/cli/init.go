package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigTemplate = `# git-llm-commit configuration file

# Default language for generated messages (en, zh, ja, etc.)
language: en

# Default model to use (must match a key in the models section)
default_model: openai

# Model configurations
models:
  openai:
    provider: openai
    api_key: ${OPENAI_API_KEY}
    model: gpt-4-turbo
    # base_url: https://api.openai.com/v1  # optional, uses default

  # Deepseek
  # deepseek:
  #   provider: deepseek
  #   api_key: ${DEEPSEEK_API_KEY}
  #   model: deepseek-chat

  # Ollama (local, no API key needed)
  # ollama:
  #   provider: ollama
  #   model: llama3.2
  #   base_url: http://localhost:11434

  # Google Gemini
  # gemini:
  #   provider: gemini
  #   api_key: ${GOOGLE_API_KEY}
  #   model: gemini-2.0-flash

  # xAI Grok
  # grok:
  #   provider: grok
  #   api_key: ${XAI_API_KEY}
  #   model: grok-beta

# Message generation tuning
commit:
  # Allow multi-line messages sized to the change (default: subject line only)
  dynamic_length: false
  temperature: 0.7
  # Diffs over this many bytes are trimmed at a line boundary before
  # being sent to the model. Set fail_on_large_diff to refuse instead.
  max_diff_bytes: 65536
  fail_on_large_diff: false

# Staged-file risk gate
# risk:
#   disabled: false
#   patterns:
#     - '\.pem$'
`

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default configuration file (~/.llm-commit.yaml).

The config file is optional: with none present, the tool talks to
OpenAI using the OPENAI_API_KEY environment variable.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(homeDir, ".llm-commit.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Edit it to configure your provider and API key.")
	return nil
}
