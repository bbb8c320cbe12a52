package ingest

import (
	"strings"

	"github.com/tkonda/AgentAPI/internal/adapter/utils"
	"github.com/tkonda/AgentAPI/internal/domain/docModel"
)

// PrepareChunks splits extracted pages into overlapping chunks tagged with
// the owning filename. Overlap preserves context continuity across chunk
// boundaries.
func PrepareChunks(pages []rawPage, sourceFile string, chunkSize int, overlap int) []docModel.DocChunk {
	var allChunks []docModel.DocChunk

	order := 0
	for _, page := range pages {
		stringChunks := splitTextIntoChunks(page.Content, chunkSize, overlap)

		for _, text := range stringChunks {
			if strings.TrimSpace(text) == "" {
				continue
			}
			allChunks = append(allChunks, docModel.DocChunk{
				ChunkId:    utils.GetNewUUID(),
				Text:       text,
				SourceFile: sourceFile,
				Order:      order,
			})
			order++
		}
	}

	return allChunks
}

func splitTextIntoChunks(text string, limit int, overlap int) []string {
	var chunks []string

	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	found := false
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:limit]}
	}

	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Start the next chunk with the tail of the previous one
			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}
