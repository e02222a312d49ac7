package llm

import (
	"fmt"

	"github.com/gitllm/git-llm-commit/internal/apperr"
	"github.com/gitllm/git-llm-commit/internal/config"
)

// ProviderFactory creates LLM providers based on configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new ProviderFactory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// Create creates a Provider based on the model configuration. A missing
// credential fails here, before any request is attempted.
func (f *ProviderFactory) Create(cfg config.ModelConfig) (Provider, error) {
	// Ollama runs locally and needs no key
	if cfg.APIKey == "" && cfg.Provider != "ollama" {
		return nil, apperr.Newf(apperr.KindAuthenticationFailed,
			"no API key configured for provider %s (set %s or add api_key to the config file)",
			cfg.Provider, config.EnvOpenAIKey)
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg), nil
	case "deepseek":
		return NewDeepseekProvider(cfg), nil
	case "ollama":
		return NewOllamaProvider(cfg), nil
	case "gemini":
		return NewGeminiProvider(cfg), nil
	case "grok":
		return NewGrokProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// CreateFromConfig creates a Provider from application config by model name
func (f *ProviderFactory) CreateFromConfig(appCfg *config.Config, modelName string) (Provider, error) {
	modelCfg, err := appCfg.GetModel(modelName)
	if err != nil {
		return nil, err
	}
	return f.Create(*modelCfg)
}
