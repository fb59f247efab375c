package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu        sync.RWMutex
	nextID    int64
	docs      map[int64]store.Document
	nameIndex map[string]int64

	// FailWrites makes every UpsertDocument return this error, for
	// exercising rollback paths.
	FailWrites error
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextID:    1,
		docs:      make(map[int64]store.Document),
		nameIndex: make(map[string]int64),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDocument inserts or replaces a document, keyed by filename.
func (s *Store) UpsertDocument(ctx context.Context, d store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	if d.Filename == "" {
		return nil
	}

	id, ok := s.nameIndex[d.Filename]
	if !ok {
		id = s.nextID
		s.nextID++
		s.nameIndex[d.Filename] = id
	}

	d.ID = id
	s.docs[id] = copyDoc(d)
	return nil
}

// GetDocument returns a document by filename.
func (s *Store) GetDocument(ctx context.Context, filename string) (store.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.nameIndex[filename]; ok {
		return copyDoc(s.docs[id]), true, nil
	}
	return store.Document{}, false, nil
}

// DeleteDocument removes a document and its term entries.
func (s *Store) DeleteDocument(ctx context.Context, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.nameIndex[filename]
	if !ok {
		return false, nil
	}
	delete(s.nameIndex, filename)
	delete(s.docs, id)
	return true, nil
}

// ListDocuments returns all documents ordered by filename.
func (s *Store) ListDocuments(ctx context.Context) ([]store.DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := []store.DocumentInfo{}
	for _, doc := range s.docs {
		infos = append(infos, store.DocumentInfo{Filename: doc.Filename, WordCount: doc.WordCount})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Filename < infos[j].Filename
	})
	return infos, nil
}

// Stats returns display statistics for one document.
func (s *Store) Stats(ctx context.Context, filename string) (store.DocumentStats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.nameIndex[filename]
	if !ok {
		return store.DocumentStats{}, false, nil
	}
	doc := s.docs[id]

	top := make([]store.TermEntry, len(doc.Terms))
	copy(top, doc.Terms)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Frequency != top[j].Frequency {
			return top[i].Frequency > top[j].Frequency
		}
		return top[i].Term < top[j].Term
	})
	if len(top) > 10 {
		top = top[:10]
	}

	st := store.DocumentStats{
		Filename:    doc.Filename,
		WordCount:   doc.WordCount,
		UniqueTerms: int64(len(doc.Terms)),
		RevisionID:  doc.RevisionID,
		TopTerms:    top,
	}
	runes := []rune(doc.Content)
	if len(runes) > store.PreviewLen {
		runes = runes[:store.PreviewLen]
	}
	st.Preview = string(runes)
	return st, true, nil
}

// TermFrequency is a point lookup of one document's score for one term.
func (s *Store) TermFrequency(ctx context.Context, filename, term string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.nameIndex[filename]
	if !ok {
		return 0, false, nil
	}
	for _, te := range s.docs[id].Terms {
		if te.Term == term {
			return te.TFScore, true, nil
		}
	}
	return 0, false, nil
}

// TermScores returns every stored (document, term, score) row matching the
// given terms.
func (s *Store) TermScores(ctx context.Context, terms []string) ([]store.TermScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t != "" {
			want[t] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var scores []store.TermScore
	for _, id := range ids {
		doc := s.docs[id]
		for _, te := range doc.Terms {
			if _, ok := want[te.Term]; ok {
				scores = append(scores, store.TermScore{
					DocID:    doc.ID,
					Filename: doc.Filename,
					Term:     te.Term,
					TFScore:  te.TFScore,
				})
			}
		}
	}
	return scores, nil
}

// DocumentFrequencies returns distinct document counts per term.
func (s *Store) DocumentFrequencies(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dfs := make(map[string]int64)
	for _, doc := range s.docs {
		for _, te := range doc.Terms {
			dfs[te.Term]++
		}
	}
	return dfs, nil
}

// TotalDocuments returns the corpus size.
func (s *Store) TotalDocuments(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

func copyDoc(d store.Document) store.Document {
	out := d
	out.Terms = make([]store.TermEntry, len(d.Terms))
	copy(out.Terms, d.Terms)
	return out
}
