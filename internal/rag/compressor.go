package rag

import (
	"context"
	"strings"

	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

const compressorSystem = "Extract only the sentences from the passage that are relevant to the question. Return them verbatim. If nothing is relevant, return the passage unchanged."

// Compressor distills a retrieved chunk down to the query-relevant sentences.
// Any failure falls back to the uncompressed chunk.
type Compressor struct {
	llm    llm.Provider
	logger *logger_i.Logger
}

func NewCompressor(provider llm.Provider) *Compressor {
	return &Compressor{
		llm:    provider,
		logger: logger_i.NewLogger("Compressor"),
	}
}

func (c *Compressor) Compress(ctx context.Context, query string, chunk string) string {
	prompt := "Question: " + query + "\n\nPassage:\n" + chunk
	out, err := c.llm.Chat(ctx, compressorSystem, nil, prompt)
	if err != nil {
		c.logger.Debug("Compression failed, keeping raw chunk", "error", err)
		return chunk
	}
	if strings.TrimSpace(out) == "" {
		return chunk
	}
	return out
}
