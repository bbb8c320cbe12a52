package docstore

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tkonda/AgentAPI/internal/domain/docModel"
	"github.com/tkonda/AgentAPI/internal/metrics"
	"github.com/tkonda/AgentAPI/internal/rag/embedding"
	"github.com/tkonda/AgentAPI/internal/rag/ingest"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

const embedBatchSize = 100

// Store owns the filename -> chunk-id mapping for every ingested document.
// The vector index owns the vectors; this store decides which ids belong to
// which file so documents can be deleted as a unit.
//
// All outcomes are reported as human-readable status strings, never as
// errors, so callers can surface them directly.
type Store struct {
	mu       sync.Mutex
	records  map[string]docModel.DocumentRecord
	inflight map[string]struct{}

	vector       vectorDB.Index
	embedder     embedding.Embedder
	collection   string
	chunkSize    int
	chunkOverlap int
	logger       *logger_i.Logger
}

// New bootstraps the backing collection with the embedder's dimensionality.
// A dimensionality conflict is a configuration error and fails here, at
// startup, rather than per query.
func New(ctx context.Context, vector vectorDB.Index, embedder embedding.Embedder, collection string, chunkSize, chunkOverlap int) (*Store, error) {
	if err := vector.EnsureCollection(ctx, collection, uint64(embedder.Dimension())); err != nil {
		return nil, fmt.Errorf("collection bootstrap failed: %w", err)
	}
	return &Store{
		records:      make(map[string]docModel.DocumentRecord),
		inflight:     make(map[string]struct{}),
		vector:       vector,
		embedder:     embedder,
		collection:   collection,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger_i.NewLogger("DocStore"),
	}, nil
}

// Ingest loads, chunks, embeds and indexes one document. Re-ingesting a
// filename that already has a record is an idempotent no-op.
func (s *Store) Ingest(ctx context.Context, filePath string, filename string) string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	if _, err := os.Stat(filePath); err != nil {
		return fmt.Sprintf("Error: File '%s' not found.", filePath)
	}

	// Compare-and-insert on the filename: no two concurrent ingests of the
	// same file may both proceed.
	s.mu.Lock()
	if _, exists := s.records[filename]; exists {
		s.mu.Unlock()
		return fmt.Sprintf("'%s' is already uploaded.", filename)
	}
	if _, busy := s.inflight[filename]; busy {
		s.mu.Unlock()
		return fmt.Sprintf("'%s' is already uploaded.", filename)
	}
	s.inflight[filename] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, filename)
		s.mu.Unlock()
	}()

	pages, err := ingest.ExtractText(filePath)
	if err != nil {
		s.logger.Error("Error extracting document", "filename", filename, "error", err)
		return fmt.Sprintf("Error: could not extract text from '%s'.", filename)
	}

	chunks := ingest.PrepareChunks(pages, filename, s.chunkSize, s.chunkOverlap)
	s.logger.Debug("Prepared chunks", "filename", filename, "count", len(chunks))

	chunkIds, err := s.indexChunks(ctx, chunks)
	if err != nil {
		s.logger.Error("Indexing failed, rolling back", "filename", filename, "error", err)
		// Best effort: remove whatever made it into the index so no chunk
		// exists without a record.
		if len(chunkIds) > 0 {
			if cleanupErr := s.vector.DeleteByIds(ctx, s.collection, chunkIds); cleanupErr != nil {
				s.logger.Error("Rollback failed", "filename", filename, "error", cleanupErr)
			}
		}
		return fmt.Sprintf("Error: could not index '%s': the embedding or index service is unavailable.", filename)
	}

	record := docModel.DocumentRecord{
		Filename:   filename,
		ChunkCount: len(chunkIds),
		ChunkIds:   chunkIds,
		IngestedAt: time.Now(),
	}

	s.mu.Lock()
	s.records[filename] = record
	s.mu.Unlock()

	return fmt.Sprintf("Successfully ingested %d chunks from '%s'.", len(chunkIds), filename)
}

func (s *Store) indexChunks(ctx context.Context, chunks []docModel.DocChunk) ([]string, error) {
	var indexed []string
	for i := 0; i < len(chunks); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return indexed, fmt.Errorf("embedding batch failed: %w", err)
		}

		if err := s.vector.UpsertBatch(ctx, s.collection, batch, vectors); err != nil {
			return indexed, fmt.Errorf("upsert failed: %w", err)
		}
		for _, c := range batch {
			indexed = append(indexed, c.ChunkId)
		}
	}
	return indexed, nil
}

// Delete removes a document's record and its vectors. The record goes first:
// a crash mid-deletion can orphan vectors (harmless) but can never leave a
// record pointing at vectors that are already gone.
func (s *Store) Delete(ctx context.Context, filename string) string {
	s.mu.Lock()
	record, ok := s.records[filename]
	if !ok {
		s.mu.Unlock()
		return fmt.Sprintf("Error: '%s' not found.", filename)
	}
	delete(s.records, filename)
	s.mu.Unlock()

	if err := s.vector.DeleteByIds(ctx, s.collection, record.ChunkIds); err != nil {
		s.logger.Error("Vector cleanup failed", "filename", filename, "error", err)
		return fmt.Sprintf("Deleted '%s', but some index entries could not be removed.", filename)
	}
	return fmt.Sprintf("Deleted '%s' (%d chunks removed).", filename, record.ChunkCount)
}

// List returns the managed filenames. Order is not significant.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	return names
}

// DeleteAll removes every managed document. Used on session teardown.
func (s *Store) DeleteAll(ctx context.Context) {
	for _, name := range s.List() {
		s.Delete(ctx, name)
	}
}
