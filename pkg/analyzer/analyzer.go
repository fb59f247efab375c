// Package analyzer ties the ingestion and query pipeline together: text
// extraction, tokenization, term-frequency indexing in a relational store,
// and TF-IDF ranked search over the indexed corpus.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/oklog/ulid/v2"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/extract"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/ingest"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/internalerr"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/rank"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store"
)

// Analyzer is the document analysis service. It is an explicit object: all
// state lives in the store handle it was constructed with.
type Analyzer struct {
	store     store.Store
	tokenizer *ingest.Tokenizer
	extractor extract.Extractor
	topN      int
}

// Options configures an Analyzer instance.
type Options struct {
	Store     store.Store
	Tokenizer *ingest.Tokenizer // nil → default stopword set
	Extractor extract.Extractor // nil → file extractor
	TopN      int               // ≤0 → rank.DefaultTopN
}

// New creates an Analyzer with the given dependencies.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		store:     opts.Store,
		tokenizer: opts.Tokenizer,
		extractor: opts.Extractor,
		topN:      opts.TopN,
	}
	if a.tokenizer == nil {
		a.tokenizer = ingest.NewTokenizer(ingest.DefaultStopwords)
	}
	if a.extractor == nil {
		a.extractor = extract.New()
	}
	if a.topN <= 0 {
		a.topN = rank.DefaultTopN
	}
	return a
}

// Close shuts down the underlying store.
func (a *Analyzer) Close() error {
	return a.store.Close()
}

// ProcessDocument runs one source file through the full ingestion
// pipeline: extraction, tokenization, term-frequency computation, and an
// atomic store upsert keyed by the file's base name. Every step gates the
// next; on any failure the previously committed version of the document
// is left untouched.
func (a *Analyzer) ProcessDocument(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	filename := filepath.Base(path)

	text, err := a.extractor.Extract(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", internalerr.ErrNoText, filename, err)
	}
	if text == "" {
		return fmt.Errorf("%w: %s", internalerr.ErrNoText, filename)
	}

	tokens := a.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrEmptyContent, filename)
	}

	doc := store.Document{
		Filename:   filename,
		Content:    text,
		WordCount:  int64(len(tokens)),
		RevisionID: ulid.Make().String(),
		Terms:      termEntries(ingest.TermFrequency(tokens)),
	}

	if err := a.store.UpsertDocument(ctx, doc); err != nil {
		return fmt.Errorf("%w: saving %s: %v", internalerr.ErrStoreUnavailable, filename, err)
	}
	return nil
}

// Search tokenizes the query and ranks the corpus by summed TF×IDF.
// A query with no surviving terms returns ErrEmptyQuery, which callers
// surface distinctly from a valid query matching nothing. IDF is
// recomputed from current store state on every call.
func (a *Analyzer) Search(ctx context.Context, query string, topN int) ([]rank.Result, error) {
	terms := a.tokenizer.Tokenize(query)
	if len(terms) == 0 {
		return nil, internalerr.ErrEmptyQuery
	}
	if topN <= 0 {
		topN = a.topN
	}

	total, err := a.store.TotalDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: counting documents: %v", internalerr.ErrStoreUnavailable, err)
	}
	dfs, err := a.store.DocumentFrequencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: document frequencies: %v", internalerr.ErrStoreUnavailable, err)
	}
	scores, err := a.store.TermScores(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("%w: term scores: %v", internalerr.ErrStoreUnavailable, err)
	}

	return rank.Rank(terms, rank.IDF(total, dfs), scores, topN), nil
}

// ListDocuments returns all indexed documents ordered by filename.
func (a *Analyzer) ListDocuments(ctx context.Context) ([]store.DocumentInfo, error) {
	return a.store.ListDocuments(ctx)
}

// Stats returns display statistics for one document.
func (a *Analyzer) Stats(ctx context.Context, filename string) (store.DocumentStats, error) {
	st, found, err := a.store.Stats(ctx, filename)
	if err != nil {
		return store.DocumentStats{}, fmt.Errorf("%w: stats for %s: %v", internalerr.ErrStoreUnavailable, filename, err)
	}
	if !found {
		return store.DocumentStats{}, fmt.Errorf("%w: %s", internalerr.ErrNotFound, filename)
	}
	return st, nil
}

// RemoveDocument deletes a document and all its term entries.
func (a *Analyzer) RemoveDocument(ctx context.Context, filename string) error {
	found, err := a.store.DeleteDocument(ctx, filename)
	if err != nil {
		return fmt.Errorf("%w: deleting %s: %v", internalerr.ErrStoreUnavailable, filename, err)
	}
	if !found {
		return fmt.Errorf("%w: %s", internalerr.ErrNotFound, filename)
	}
	return nil
}

func termEntries(tf map[string]ingest.TermCount) []store.TermEntry {
	entries := make([]store.TermEntry, 0, len(tf))
	for term, tc := range tf {
		entries = append(entries, store.TermEntry{
			Term:      term,
			Frequency: tc.Frequency,
			TFScore:   tc.Score,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Term < entries[j].Term })
	return entries
}
