package vectorDB

import (
	"context"

	"github.com/tkonda/AgentAPI/internal/domain/docModel"
)

// Index is the contract the document subsystem needs from a vector store:
// bootstrap, batch insertion, similarity search and targeted deletion.
// Dimensionality is fixed when the collection is created.
type Index interface {
	EnsureCollection(ctx context.Context, collectionName string, dimension uint64) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []docModel.DocChunk, vectors [][]float32) error
	Search(ctx context.Context, collectionName string, vector []float32, limit uint64) ([]docModel.ScoredChunk, error)
	DeleteByIds(ctx context.Context, collectionName string, ids []string) error
}
