package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected docType
	}{
		{"test.pdf", typePDF},
		{"DOC.DOCX", typeDOCX},
		{"notes.txt", typeDOCX},
		{"essay.rtf", typeDOCX},
		{"image.png", typeERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestExtractText_Txt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("hello extraction"), 0644); err != nil {
		t.Fatal(err)
	}

	pages, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if len(pages) != 1 || !strings.Contains(pages[0].Content, "hello extraction") {
		t.Errorf("unexpected pages: %+v", pages)
	}
}

func TestExtractText_UnsupportedType(t *testing.T) {
	if _, err := ExtractText("image.png"); err == nil {
		t.Error("expected error for unsupported document type")
	}
}

func TestSplitTextIntoChunks(t *testing.T) {
	text := "This is a long sentence. This is another sentence that will be split."
	limit := 30
	overlap := 5

	chunks := splitTextIntoChunks(text, limit, overlap)

	if len(chunks) < 2 {
		t.Errorf("Expected multiple chunks, got %d", len(chunks))
	}
}

func TestSplitTextIntoChunks_ShortTextSingleChunk(t *testing.T) {
	text := "short"
	chunks := splitTextIntoChunks(text, 1000, 200)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("short text should stay one chunk, got %v", chunks)
	}
}

func TestPrepareChunks(t *testing.T) {
	pages := []rawPage{
		{Number: 1, Content: "Page one content."},
		{Number: 2, Content: "Page two content."},
	}

	chunks := PrepareChunks(pages, "doc-1.pdf", 1000, 200)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks (one per page), got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.SourceFile != "doc-1.pdf" {
			t.Errorf("chunk %d source got %s, want doc-1.pdf", i, c.SourceFile)
		}
		if c.Order != i {
			t.Errorf("chunk %d order got %d, want %d", i, c.Order, i)
		}
		if c.ChunkId == "" {
			t.Errorf("chunk %d has empty id", i)
		}
	}
}

func TestPrepareChunks_SkipsBlankContent(t *testing.T) {
	pages := []rawPage{
		{Number: 1, Content: "   \n\t  "},
		{Number: 2, Content: "real content"},
	}

	chunks := PrepareChunks(pages, "doc.txt", 1000, 200)
	if len(chunks) != 1 {
		t.Errorf("blank pages must be skipped, got %d chunks", len(chunks))
	}
}
