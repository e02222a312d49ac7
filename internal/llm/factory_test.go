package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitllm/git-llm-commit/internal/apperr"
	"github.com/gitllm/git-llm-commit/internal/config"
)

func TestProviderFactory_Create(t *testing.T) {
	factory := NewProviderFactory()

	tests := []struct {
		name     string
		cfg      config.ModelConfig
		provider string
	}{
		{
			name:     "openai",
			cfg:      config.ModelConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o"},
			provider: "openai",
		},
		{
			name:     "deepseek",
			cfg:      config.ModelConfig{Provider: "deepseek", APIKey: "sk-test", Model: "deepseek-chat"},
			provider: "deepseek",
		},
		{
			name:     "ollama without key",
			cfg:      config.ModelConfig{Provider: "ollama", Model: "llama3.2"},
			provider: "ollama",
		},
		{
			name:     "gemini",
			cfg:      config.ModelConfig{Provider: "gemini", APIKey: "key", Model: "gemini-2.0-flash"},
			provider: "gemini",
		},
		{
			name:     "grok",
			cfg:      config.ModelConfig{Provider: "grok", APIKey: "xai-key", Model: "grok-beta"},
			provider: "grok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := factory.Create(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, provider.Name())
		})
	}
}

func TestProviderFactory_Create_MissingCredential(t *testing.T) {
	factory := NewProviderFactory()

	for _, providerName := range []string{"openai", "deepseek", "gemini", "grok"} {
		t.Run(providerName, func(t *testing.T) {
			_, err := factory.Create(config.ModelConfig{Provider: providerName, Model: "m"})
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindAuthenticationFailed))
		})
	}
}

func TestProviderFactory_Create_UnsupportedProvider(t *testing.T) {
	factory := NewProviderFactory()

	_, err := factory.Create(config.ModelConfig{Provider: "cohere", APIKey: "k", Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestProviderDefaults(t *testing.T) {
	deepseek := NewDeepseekProvider(config.ModelConfig{Provider: "deepseek", APIKey: "k", Model: "m"})
	assert.Equal(t, DeepseekDefaultBaseURL, deepseek.GetConfig().BaseURL)

	ollama := NewOllamaProvider(config.ModelConfig{Provider: "ollama", Model: "m"})
	assert.Equal(t, OllamaDefaultBaseURL, ollama.GetConfig().BaseURL)
	assert.Equal(t, "ollama", ollama.GetConfig().APIKey)

	grok := NewGrokProvider(config.ModelConfig{Provider: "grok", APIKey: "k", Model: "m"})
	assert.Equal(t, GrokDefaultBaseURL, grok.GetConfig().BaseURL)

	// Explicit base URL wins
	custom := NewDeepseekProvider(config.ModelConfig{Provider: "deepseek", APIKey: "k", Model: "m", BaseURL: "http://proxy:8080"})
	assert.Equal(t, "http://proxy:8080", custom.GetConfig().BaseURL)
}
