package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/gitllm/git-llm-commit/internal/config"
)

// Default base URLs for the OpenAI-compatible providers
const (
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	OllamaDefaultBaseURL   = "http://localhost:11434/v1"
	GrokDefaultBaseURL     = "https://api.x.ai/v1"
)

// compatProvider implements Provider for any service speaking the
// OpenAI chat-completions protocol. OpenAI itself, Deepseek, Ollama,
// Grok and OpenRouter all go through here; only the name and base URL
// differ.
type compatProvider struct {
	name string
	cfg  config.ModelConfig
}

// Name returns the provider name
func (p *compatProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *compatProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel speaking the OpenAI protocol
func (p *compatProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}

// NewOpenAIProvider creates a provider for the OpenAI API
func NewOpenAIProvider(cfg config.ModelConfig) Provider {
	return &compatProvider{name: "openai", cfg: cfg}
}

// NewDeepseekProvider creates a provider for the Deepseek API
func NewDeepseekProvider(cfg config.ModelConfig) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DeepseekDefaultBaseURL
	}
	return &compatProvider{name: "deepseek", cfg: cfg}
}

// NewOllamaProvider creates a provider for a local Ollama instance.
// Ollama does not check credentials, so a placeholder key is used.
func NewOllamaProvider(cfg config.ModelConfig) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaDefaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return &compatProvider{name: "ollama", cfg: cfg}
}

// NewGrokProvider creates a provider for xAI Grok
func NewGrokProvider(cfg config.ModelConfig) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GrokDefaultBaseURL
	}
	return &compatProvider{name: "grok", cfg: cfg}
}
