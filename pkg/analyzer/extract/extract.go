package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns a source file into raw text.
type Extractor interface {
	Extract(path string) (string, error)
}

// FileExtractor extracts text from local files, dispatching on extension:
// PDFs are read page by page, HTML/XML-like files are reduced to their
// text nodes, and anything else is treated as plain text.
type FileExtractor struct{}

// New creates a FileExtractor.
func New() *FileExtractor {
	return &FileExtractor{}
}

// Extract returns the raw text of the file at path. Callers treat empty
// output as an extraction failure.
func (e *FileExtractor) Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".html", ".htm", ".xhtml", ".xml":
		return extractHTML(path)
	default:
		return extractText(path)
	}
}

// extractPDF concatenates the plain text of every page, with a newline as
// the page separator. Pages that fail to decode are skipped rather than
// failing the whole document.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
