package docstore_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tkonda/AgentAPI/internal/rag/docstore"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB/memoryDB"
)

type stubEmbedder struct {
	embedErr error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (s *stubEmbedder) Dimension() int32 { return 3 }

func writeTestDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test doc: %v", err)
	}
	return path
}

func newTestStore(t *testing.T, embedder *stubEmbedder) (*docstore.Store, *memoryDB.Store) {
	t.Helper()
	index := memoryDB.New()
	s, err := docstore.New(context.Background(), index, embedder, "test-docs", 1000, 200)
	if err != nil {
		t.Fatalf("docstore.New failed: %v", err)
	}
	return s, index
}

func TestIngest_Success(t *testing.T) {
	s, index := newTestStore(t, &stubEmbedder{})
	path := writeTestDoc(t, "The quarterly revenue grew by twelve percent.")

	msg := s.Ingest(context.Background(), path, "report.txt")
	if !strings.HasPrefix(msg, "Successfully ingested") {
		t.Fatalf("Ingest got %q, want success message", msg)
	}

	docs := s.List()
	if len(docs) != 1 || docs[0] != "report.txt" {
		t.Errorf("List got %v, want [report.txt]", docs)
	}

	hits, err := index.Search(context.Background(), "test-docs", []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Error("expected indexed chunks after ingestion")
	}
}

func TestIngest_FileNotFound(t *testing.T) {
	s, _ := newTestStore(t, &stubEmbedder{})

	msg := s.Ingest(context.Background(), "/nonexistent/ghost.txt", "ghost.txt")
	want := "Error: File '/nonexistent/ghost.txt' not found."
	if msg != want {
		t.Errorf("Ingest got %q, want %q", msg, want)
	}
}

func TestIngest_DuplicateIsIdempotent(t *testing.T) {
	s, index := newTestStore(t, &stubEmbedder{})
	path := writeTestDoc(t, "Some document content.")

	first := s.Ingest(context.Background(), path, "report.txt")
	if !strings.HasPrefix(first, "Successfully ingested") {
		t.Fatalf("first Ingest got %q", first)
	}

	hitsBefore, _ := index.Search(context.Background(), "test-docs", []float32{1, 0, 0}, 100)

	second := s.Ingest(context.Background(), path, "report.txt")
	if second != "'report.txt' is already uploaded." {
		t.Errorf("duplicate Ingest got %q, want already-uploaded message", second)
	}

	hitsAfter, _ := index.Search(context.Background(), "test-docs", []float32{1, 0, 0}, 100)
	if len(hitsAfter) != len(hitsBefore) {
		t.Errorf("duplicate ingest changed index size: %d -> %d", len(hitsBefore), len(hitsAfter))
	}
	if got := len(s.List()); got != 1 {
		t.Errorf("List length got %d, want 1", got)
	}
}

func TestIngest_ConcurrentSameFilename(t *testing.T) {
	s, _ := newTestStore(t, &stubEmbedder{})
	path := writeTestDoc(t, "Contested document content.")

	const attempts = 8
	results := make([]string, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = s.Ingest(context.Background(), path, "contested.txt")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, msg := range results {
		if strings.HasPrefix(msg, "Successfully ingested") {
			successes++
		} else if msg != "'contested.txt' is already uploaded." {
			t.Errorf("unexpected result: %q", msg)
		}
	}
	if successes != 1 {
		t.Errorf("got %d successful ingests, want exactly 1", successes)
	}
}

func TestIngest_EmbeddingFailureRollsBack(t *testing.T) {
	s, _ := newTestStore(t, &stubEmbedder{embedErr: errors.New("quota exceeded")})
	path := writeTestDoc(t, "Content that will fail to embed.")

	msg := s.Ingest(context.Background(), path, "report.txt")
	if !strings.HasPrefix(msg, "Error: could not index") {
		t.Fatalf("Ingest got %q, want indexing error", msg)
	}
	if got := len(s.List()); got != 0 {
		t.Errorf("failed ingest must not leave a record, List length got %d", got)
	}
}

func TestDelete_RemovesRecordAndVectors(t *testing.T) {
	s, index := newTestStore(t, &stubEmbedder{})
	path := writeTestDoc(t, "Document to be deleted.")

	if msg := s.Ingest(context.Background(), path, "report.txt"); !strings.HasPrefix(msg, "Successfully") {
		t.Fatalf("setup ingest failed: %q", msg)
	}

	msg := s.Delete(context.Background(), "report.txt")
	if !strings.HasPrefix(msg, "Deleted 'report.txt'") {
		t.Errorf("Delete got %q, want deletion message", msg)
	}

	if got := len(s.List()); got != 0 {
		t.Errorf("List length got %d after delete, want 0", got)
	}
	hits, _ := index.Search(context.Background(), "test-docs", []float32{1, 0, 0}, 100)
	if len(hits) != 0 {
		t.Errorf("index still holds %d chunks after delete", len(hits))
	}
}

func TestDelete_NotFound(t *testing.T) {
	s, _ := newTestStore(t, &stubEmbedder{})
	msg := s.Delete(context.Background(), "ghost.txt")
	if msg != "Error: 'ghost.txt' not found." {
		t.Errorf("Delete got %q, want not-found message", msg)
	}
}

func TestDeleteAll(t *testing.T) {
	s, index := newTestStore(t, &stubEmbedder{})
	for i := 0; i < 3; i++ {
		path := filepath.Join(t.TempDir(), fmt.Sprintf("doc%d.txt", i))
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
		s.Ingest(context.Background(), path, fmt.Sprintf("doc%d.txt", i))
	}
	if got := len(s.List()); got != 3 {
		t.Fatalf("setup produced %d documents, want 3", got)
	}

	s.DeleteAll(context.Background())

	if got := len(s.List()); got != 0 {
		t.Errorf("List length got %d after DeleteAll, want 0", got)
	}
	hits, _ := index.Search(context.Background(), "test-docs", []float32{1, 0, 0}, 100)
	if len(hits) != 0 {
		t.Errorf("index still holds %d chunks after DeleteAll", len(hits))
	}
}
