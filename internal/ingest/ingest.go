package ingest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the content extracted from one ingested file
type Document struct {
	Path    string
	Title   string
	Content string
}

// Files reads the supported local files among paths. Missing files and
// unsupported extensions are silently skipped; a run never fails over a
// bad input document.
func Files(paths []string) []Document {
	var docs []Document
	for _, path := range paths {
		doc, ok := readFile(path)
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

func readFile(path string) (Document, bool) {
	if _, err := os.Stat(path); err != nil {
		return Document{}, false
	}

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".csv":
		raw, err := os.ReadFile(path)
		if err != nil {
			return Document{}, false
		}
		return Document{Path: path, Title: name, Content: string(raw)}, true

	case ".pdf":
		text, err := readPDF(path)
		if err != nil {
			return Document{}, false
		}
		return Document{Path: path, Title: name, Content: text}, true

	default:
		return Document{}, false
	}
}

// readPDF extracts plain text from every page
func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
