package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/gitllm/git-llm-commit/internal/config"
)

// geminiProvider implements Provider for Google Gemini, which speaks
// its own protocol rather than the OpenAI one.
type geminiProvider struct {
	cfg config.ModelConfig
}

// NewGeminiProvider creates a provider for the Gemini API
func NewGeminiProvider(cfg config.ModelConfig) Provider {
	return &geminiProvider{cfg: cfg}
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel backed by a genai client
func (p *geminiProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  p.cfg.Model,
	})
}
