package rag

import (
	"context"
	"time"

	"github.com/tkonda/AgentAPI/internal/metrics"
	"github.com/tkonda/AgentAPI/internal/rag/embedding"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

// Retriever answers "which chunks are relevant to this query". It never
// returns an error: provider or index failures degrade to an empty result
// and the caller decides how to present that.
type Retriever struct {
	vector     vectorDB.Index
	embedder   embedding.Embedder
	collection string
	topK       uint64
	compressor *Compressor
	logger     *logger_i.Logger
}

func NewRetriever(vector vectorDB.Index, embedder embedding.Embedder, collection string, topK uint64, compressor *Compressor) *Retriever {
	return &Retriever{
		vector:     vector,
		embedder:   embedder,
		collection: collection,
		topK:       topK,
		compressor: compressor,
		logger:     logger_i.NewLogger("Retriever"),
	}
}

// Retrieve embeds the query and returns up to topK chunk texts ordered by
// similarity, most similar first.
func (r *Retriever) Retrieve(ctx context.Context, query string) []string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.logger.Error("Query embedding failed", "error", err)
		return nil
	}

	hits, err := r.vector.Search(ctx, r.collection, vector, r.topK)
	if err != nil {
		r.logger.Error("Vector search failed", "error", err)
		return nil
	}

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		text := hit.Text
		if r.compressor != nil {
			text = r.compressor.Compress(ctx, query, text)
		}
		texts = append(texts, text)
	}
	return texts
}
