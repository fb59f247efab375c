package store

import (
	"context"
)

// PreviewLen is the number of leading content characters returned in
// document statistics.
const PreviewLen = 200

// Store is the persistence interface for documents and their
// term-frequency entries. Implementations must replace a document and its
// full term set atomically: a failure mid-write leaves the previously
// committed version intact.
type Store interface {
	Close() error

	// Documents
	UpsertDocument(ctx context.Context, d Document) error
	GetDocument(ctx context.Context, filename string) (Document, bool, error)
	DeleteDocument(ctx context.Context, filename string) (bool, error)
	ListDocuments(ctx context.Context) ([]DocumentInfo, error)
	Stats(ctx context.Context, filename string) (DocumentStats, bool, error)

	// Term lookups & corpus aggregates
	TermFrequency(ctx context.Context, filename, term string) (float64, bool, error)
	TermScores(ctx context.Context, terms []string) ([]TermScore, error)
	DocumentFrequencies(ctx context.Context) (map[string]int64, error)
	TotalDocuments(ctx context.Context) (int64, error)
}

// Document is a stored document together with its term entries.
type Document struct {
	ID         int64
	Filename   string
	Content    string
	WordCount  int64
	RevisionID string
	Terms      []TermEntry
}

// TermEntry is one (term, frequency, score) row belonging to a document.
// At most one entry exists per term per document.
type TermEntry struct {
	Term      string
	Frequency int64
	TFScore   float64
}

// DocumentInfo is the listing view of a document.
type DocumentInfo struct {
	Filename  string
	WordCount int64
}

// TermScore is a per-document term-frequency score, used by the ranker.
type TermScore struct {
	DocID    int64
	Filename string
	Term     string
	TFScore  float64
}

// DocumentStats summarizes one document for display.
type DocumentStats struct {
	Filename    string
	WordCount   int64
	UniqueTerms int64
	RevisionID  string
	TopTerms    []TermEntry
	Preview     string
}
