package provider

import (
	"context"
	"errors"

	"github.com/supportdesk/aisha/config"
	"github.com/supportdesk/aisha/models"
	openai_provider "github.com/supportdesk/aisha/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
)

// Provider is the interface the chat pipeline depends on: an opaque text
// completion over an ordered message list, and text embedding.
type Provider interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, errors.New("llm.openai.api_key not set")
		}
		return openai_provider.NewOpenAIClient(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.BaseURL,
			cfg.OpenAI.CompletionModel,
			cfg.OpenAI.EmbeddingModel,
			cfg.OpenAI.Temperature,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Timeout,
		), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
