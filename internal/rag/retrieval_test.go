package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tkonda/AgentAPI/internal/domain/docModel"
	"github.com/tkonda/AgentAPI/internal/rag"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB/memoryDB"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = s.vector
	}
	return vectors, s.err
}

func (s *stubEmbedder) Dimension() int32 { return int32(len(s.vector)) }

func seedIndex(t *testing.T) *memoryDB.Store {
	t.Helper()
	index := memoryDB.New()
	ctx := context.Background()
	if err := index.EnsureCollection(ctx, "docs", 2); err != nil {
		t.Fatal(err)
	}
	err := index.UpsertBatch(ctx, "docs",
		[]docModel.DocChunk{
			{ChunkId: "1", Text: "close match", SourceFile: "a.txt"},
			{ChunkId: "2", Text: "far match", SourceFile: "a.txt"},
		},
		[][]float32{{1, 0}, {0, 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return index
}

func TestRetrieve_ReturnsOrderedTexts(t *testing.T) {
	index := seedIndex(t)
	r := rag.NewRetriever(index, &stubEmbedder{vector: []float32{1, 0}}, "docs", 5, nil)

	got := r.Retrieve(context.Background(), "query")
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	if got[0] != "close match" {
		t.Errorf("first chunk got %q, want most similar first", got[0])
	}
}

func TestRetrieve_EmbeddingFailureReturnsNil(t *testing.T) {
	index := seedIndex(t)
	r := rag.NewRetriever(index, &stubEmbedder{err: errors.New("quota")}, "docs", 5, nil)

	if got := r.Retrieve(context.Background(), "query"); got != nil {
		t.Errorf("expected nil on embedding failure, got %v", got)
	}
}

func TestRetrieve_SearchFailureReturnsNil(t *testing.T) {
	// Unknown collection makes the index search fail.
	r := rag.NewRetriever(memoryDB.New(), &stubEmbedder{vector: []float32{1, 0}}, "missing", 5, nil)

	if got := r.Retrieve(context.Background(), "query"); got != nil {
		t.Errorf("expected nil on search failure, got %v", got)
	}
}
