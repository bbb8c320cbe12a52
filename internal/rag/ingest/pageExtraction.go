package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

type rawPage struct {
	Number  int
	Content string
}

type docType string

const (
	typePDF  docType = "PDF"
	typeDOCX docType = "DOCX"
	typeERR  docType = "ERROR"
)

var logger = logger_i.NewLogger("Document Ingestion")

// ExtractText loads a document from disk and returns its text pages.
// Supported formats: pdf, docx, txt, rtf, odt.
func ExtractText(path string) ([]rawPage, error) {
	switch getDocType(path) {
	case typePDF:
		return extractPDF(path)
	case typeDOCX:
		return extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

func getDocType(docPath string) docType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return typePDF
	case ".docx", ".txt", ".rtf", ".odt":
		return typeDOCX
	default:
		return typeERR
	}
}

func extractPDF(path string) ([]rawPage, error) {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file", "path", path)
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []rawPage
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log and continue with the remaining pages
			logger.Error("Error parsing page content", "page", i, "Error", err)
			continue
		}

		pages = append(pages, rawPage{Number: i, Content: content})
	}
	return pages, nil
}

func extractDocxTxtRtf(path string) ([]rawPage, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "path", path)
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}

	return []rawPage{
		{Number: 1, Content: text},
	}, nil
}

// protectExtract guards against pdf pages whose text extraction hangs.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}
