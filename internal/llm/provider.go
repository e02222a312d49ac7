package llm

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/gitllm/git-llm-commit/internal/config"
)

// Provider builds a ChatModel for one configured completion service.
// Construction is deferred to CreateChatModel so that configuration
// errors surface before any network client exists.
type Provider interface {
	// Name identifies the provider ("openai", "gemini", ...)
	Name() string

	// GetConfig returns the model configuration backing this provider
	GetConfig() config.ModelConfig

	// CreateChatModel builds the Eino ChatModel used for generation
	CreateChatModel(ctx context.Context) (model.ChatModel, error)
}
