package memoryDB

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/tkonda/AgentAPI/internal/domain/docModel"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

type point struct {
	chunk  docModel.DocChunk
	vector []float32
}

type collection struct {
	dimension uint64
	points    map[string]point
}

// Store is a brute-force cosine-similarity index. It backs tests and keeps
// the service usable when Qdrant is offline.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	logger      *logger_i.Logger
}

func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
		logger:      logger_i.NewLogger("InMem VectorDB"),
	}
}

func (s *Store) EnsureCollection(_ context.Context, collectionName string, dimension uint64) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}
	if dimension == 0 {
		return errors.New("dimension must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.collections[collectionName]; ok {
		if existing.dimension != dimension {
			return errors.New("collection exists with different dimension")
		}
		return nil
	}
	s.collections[collectionName] = &collection{
		dimension: dimension,
		points:    make(map[string]point),
	}
	return nil
}

func (s *Store) UpsertBatch(_ context.Context, collectionName string, chunks []docModel.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[collectionName]
	if !ok {
		return errors.New("unknown collection: " + collectionName)
	}
	for _, v := range vectors {
		if uint64(len(v)) != coll.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, c := range chunks {
		coll.points[c.ChunkId] = point{chunk: c, vector: vectors[i]}
	}
	return nil
}

func (s *Store) Search(_ context.Context, collectionName string, vector []float32, limit uint64) ([]docModel.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.collections[collectionName]
	if !ok {
		return nil, errors.New("unknown collection: " + collectionName)
	}

	hits := make([]docModel.ScoredChunk, 0, len(coll.points))
	for _, p := range coll.points {
		hits = append(hits, docModel.ScoredChunk{
			Text:       p.chunk.Text,
			SourceFile: p.chunk.SourceFile,
			Score:      cosine(vector, p.vector),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if uint64(len(hits)) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *Store) DeleteByIds(_ context.Context, collectionName string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[collectionName]
	if !ok {
		return errors.New("unknown collection: " + collectionName)
	}
	for _, id := range ids {
		delete(coll.points, id)
	}
	return nil
}

func cosine(a, b []float32) float32 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ vectorDB.Index = (*Store)(nil)
