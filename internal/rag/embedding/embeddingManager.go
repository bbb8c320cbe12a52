package embedding

import "context"

// Embedder converts text into fixed-length vectors. Dimension is fixed at
// construction; all vectors produced by one embedder share it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int32
}
