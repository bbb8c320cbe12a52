package docModel

import "time"

// DocumentRecord is the bookkeeping entry for one ingested file. The chunk
// ids are required for targeted deletion from the vector index.
type DocumentRecord struct {
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
	ChunkIds   []string  `json:"chunk_ids"`
	IngestedAt time.Time `json:"ingested_at"`
}

// DocChunk is the unit stored in the vector index.
type DocChunk struct {
	ChunkId    string `json:"chunk_id"`
	Text       string `json:"content"`
	SourceFile string `json:"source_file"`
	Order      int    `json:"chunk_order"`
}

// ScoredChunk is a search hit ordered by similarity.
type ScoredChunk struct {
	Text       string
	SourceFile string
	Score      float32
}
