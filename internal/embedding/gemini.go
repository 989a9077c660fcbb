package embedding

import (
	"context"

	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
)

type geminiEmbedder struct {
	client gemini.Client
	model  string
}

func NewGemini(client gemini.Client, model string) Embedder {
	return &geminiEmbedder{client: client, model: model}
}

func (g *geminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return g.client.Embed(ctx, g.model, texts)
}
