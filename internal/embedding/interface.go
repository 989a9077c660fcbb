package embedding

import "context"

// Embedder turns texts into fixed-length vectors, one per input and in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
