package embedding

import (
	"fmt"

	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
	"github.com/nguyentantai21042004/segment-flow/pkg/executor"
)

// New builds the Embedder selected by cfg.Embedding.Provider. client is only
// used by the gemini provider and may be nil otherwise.
func New(cfg *config.Config, client gemini.Client, exec executor.Executor) (Embedder, error) {
	switch cfg.Embedding.Provider {
	case config.EmbeddingGemini:
		if client == nil {
			return nil, fmt.Errorf("gemini embedder: %w", gemini.ErrNoAPIKeys)
		}
		return NewGemini(client, cfg.Gemini.EmbeddingModel), nil
	case config.EmbeddingHTTP:
		return NewHTTP(cfg.Embedding.URL), nil
	case config.EmbeddingCommand:
		return NewCommand(exec, cfg.Embedding.Command, cfg.Embedding.Args...), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}
