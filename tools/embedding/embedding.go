package embedding

import (
	"context"
	"fmt"

	"github.com/supportdesk/aisha/provider"
)

// Embedding wraps the provider's embedding endpoint and pins the vector width
// the session stores were sized for.
type Embedding struct {
	provider provider.Provider
	dims     int
}

func NewEmbedding(provider provider.Provider, dims int) *Embedding {
	return &Embedding{
		provider: provider,
		dims:     dims,
	}
}

// Dims returns the configured vector width.
func (e Embedding) Dims() int { return e.dims }

// Embed computes the embedding of a single text.
func (e Embedding) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("provider returned no vectors")
	}
	return vecs[0], nil
}

func (e Embedding) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vecs, err := e.provider.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, err
	}
	for _, v := range vecs {
		if e.dims > 0 && len(v) != e.dims {
			return nil, fmt.Errorf("embedding width %d does not match configured %d", len(v), e.dims)
		}
	}

	return vecs, nil
}
