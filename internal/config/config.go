package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables understood without any config file. They match
// the zero-setup behavior of running against OpenAI directly.
const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenRouterKey = "OPENROUTER_API_KEY"
	EnvModel         = "LLM_COMMIT_MODEL"
	EnvTemperature   = "LLM_COMMIT_TEMPERATURE"
	EnvDynamicLength = "LLM_COMMIT_DYNAMIC_LENGTH"
	EnvLanguage      = "LLM_COMMIT_LANG"
)

const (
	defaultModel       = "gpt-4-turbo"
	openRouterBaseURL  = "https://openrouter.ai/api/v1"
	defaultTemperature = 0.7
)

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// Config represents the application configuration
type Config struct {
	DefaultModel string                 `yaml:"default_model" mapstructure:"default_model"`
	Models       map[string]ModelConfig `yaml:"models" mapstructure:"models"`
	Language     string                 `yaml:"language" mapstructure:"language"`
	Commit       *CommitConfig          `yaml:"commit" mapstructure:"commit"`
	Risk         *RiskConfig            `yaml:"risk" mapstructure:"risk"`
}

// ModelConfig represents a single model configuration
type ModelConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// Validate validates the model configuration
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s", m.Provider)
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// CommitConfig tunes message generation and the oversized-diff policy
type CommitConfig struct {
	// DynamicLength allows multi-line messages sized to the change.
	// When false, the model is asked for a single subject line.
	DynamicLength bool    `yaml:"dynamic_length" mapstructure:"dynamic_length"`
	Temperature   float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxDiffBytes caps the diff sent to the model. Diffs over the cap
	// are trimmed at a line boundary, or rejected when FailOnLargeDiff
	// is set.
	MaxDiffBytes    int  `yaml:"max_diff_bytes" mapstructure:"max_diff_bytes"`
	FailOnLargeDiff bool `yaml:"fail_on_large_diff" mapstructure:"fail_on_large_diff"`

	// Changed-line thresholds selecting the detail level and the
	// response token budget.
	SmallChangeThreshold int `yaml:"small_change_threshold" mapstructure:"small_change_threshold"`
	LargeChangeThreshold int `yaml:"large_change_threshold" mapstructure:"large_change_threshold"`
	SmallChangeTokens    int `yaml:"small_change_tokens" mapstructure:"small_change_tokens"`
	MediumChangeTokens   int `yaml:"medium_change_tokens" mapstructure:"medium_change_tokens"`
	LargeChangeTokens    int `yaml:"large_change_tokens" mapstructure:"large_change_tokens"`
}

// DefaultCommitConfig returns the default commit configuration
func DefaultCommitConfig() *CommitConfig {
	return &CommitConfig{
		DynamicLength:        false,
		Temperature:          defaultTemperature,
		MaxDiffBytes:         64 * 1024,
		FailOnLargeDiff:      false,
		SmallChangeThreshold: 50,
		LargeChangeThreshold: 200,
		SmallChangeTokens:    100,
		MediumChangeTokens:   200,
		LargeChangeTokens:    400,
	}
}

// Validate validates the commit configuration
func (c *CommitConfig) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxDiffBytes < 0 {
		return fmt.Errorf("max_diff_bytes must be non-negative")
	}
	if c.LargeChangeThreshold < c.SmallChangeThreshold {
		return fmt.Errorf("large_change_threshold must be greater than or equal to small_change_threshold")
	}
	return nil
}

// RiskConfig configures the staged-file risk gate
type RiskConfig struct {
	// Disabled turns the risky-file check off entirely
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`

	// Patterns are extra regular expressions matched against staged
	// paths, in addition to the built-in set.
	Patterns []string `yaml:"patterns" mapstructure:"patterns"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no models configured")
	}

	if c.DefaultModel != "" {
		if _, ok := c.Models[c.DefaultModel]; !ok {
			return fmt.Errorf("default model '%s' not found in models configuration", c.DefaultModel)
		}
	}

	for name, model := range c.Models {
		if err := model.Validate(); err != nil {
			return fmt.Errorf("invalid model '%s': %w", name, err)
		}
	}

	if c.Commit != nil {
		if err := c.Commit.Validate(); err != nil {
			return fmt.Errorf("invalid commit configuration: %w", err)
		}
	}

	return nil
}

// GetModel returns the model configuration by name
// Priority: parameter > env variable (LLM_COMMIT_MODEL) > default_model
func (c *Config) GetModel(modelName string) (*ModelConfig, error) {
	if modelName == "" {
		modelName = os.Getenv(EnvModel)
	}
	if modelName == "" {
		modelName = c.DefaultModel
	}
	if modelName == "" {
		return nil, fmt.Errorf("no model specified and no default model configured")
	}

	model, ok := c.Models[modelName]
	if !ok {
		return nil, fmt.Errorf("model '%s' not found in configuration", modelName)
	}

	// Expand environment variables in API key
	model.APIKey = expandEnv(model.APIKey)

	return &model, nil
}

// GetLanguage returns the language to use
// Priority: parameter > env variable (LLM_COMMIT_LANG) > config file > default (en)
func (c *Config) GetLanguage(langParam string) string {
	if langParam != "" {
		return langParam
	}
	if envLang := os.Getenv(EnvLanguage); envLang != "" {
		return envLang
	}
	if c.Language != "" {
		return c.Language
	}
	return "en"
}

// GetCommitConfig returns the commit configuration with defaults applied
func (c *Config) GetCommitConfig() *CommitConfig {
	if c.Commit == nil {
		return DefaultCommitConfig()
	}
	defaults := DefaultCommitConfig()
	if c.Commit.Temperature <= 0 {
		c.Commit.Temperature = defaults.Temperature
	}
	if c.Commit.MaxDiffBytes <= 0 {
		c.Commit.MaxDiffBytes = defaults.MaxDiffBytes
	}
	if c.Commit.SmallChangeThreshold <= 0 {
		c.Commit.SmallChangeThreshold = defaults.SmallChangeThreshold
	}
	if c.Commit.LargeChangeThreshold <= 0 {
		c.Commit.LargeChangeThreshold = defaults.LargeChangeThreshold
	}
	if c.Commit.SmallChangeTokens <= 0 {
		c.Commit.SmallChangeTokens = defaults.SmallChangeTokens
	}
	if c.Commit.MediumChangeTokens <= 0 {
		c.Commit.MediumChangeTokens = defaults.MediumChangeTokens
	}
	if c.Commit.LargeChangeTokens <= 0 {
		c.Commit.LargeChangeTokens = defaults.LargeChangeTokens
	}
	return c.Commit
}

// GetRiskConfig returns the risk configuration with defaults applied
func (c *Config) GetRiskConfig() *RiskConfig {
	if c.Risk == nil {
		return &RiskConfig{}
	}
	return c.Risk
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// FromEnv synthesizes a configuration from environment variables alone,
// so the tool works with zero setup when OPENAI_API_KEY is set. When
// OPENROUTER_API_KEY is present, requests are routed through OpenRouter
// with the model name prefixed "openai/".
func FromEnv() *Config {
	model := os.Getenv(EnvModel)
	if model == "" {
		model = defaultModel
	}

	mc := ModelConfig{
		Provider: "openai",
		Model:    model,
		APIKey:   "${" + EnvOpenAIKey + "}",
	}
	if os.Getenv(EnvOpenRouterKey) != "" {
		mc.APIKey = "${" + EnvOpenRouterKey + "}"
		mc.BaseURL = openRouterBaseURL
		mc.Model = "openai/" + model
	}

	commit := DefaultCommitConfig()
	if raw := os.Getenv(EnvTemperature); raw != "" {
		if temp, err := strconv.ParseFloat(raw, 64); err == nil {
			commit.Temperature = temp
		}
	}
	commit.DynamicLength = strings.EqualFold(os.Getenv(EnvDynamicLength), "true")

	return &Config{
		DefaultModel: "default",
		Models:       map[string]ModelConfig{"default": mc},
		Commit:       commit,
	}
}

// Load loads configuration with the following priority:
// 1. Custom path if provided
// 2. Current directory .llm-commit.yaml
// 3. Home directory ~/.llm-commit.yaml
// 4. Environment variables (OPENAI_API_KEY et al.)
//
// A config file that exists but cannot be parsed is an error, not a
// fall-through: silently proceeding on the env-synthesized config
// would swap provider and credentials behind the user's back.
func Load(customPath string) (*Config, error) {
	// If custom path is provided, use it exclusively
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	paths := []string{".llm-commit.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".llm-commit.yaml"))
	}

	for _, path := range paths {
		cfg, err := LoadFromFile(path)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	return FromEnv(), nil
}
