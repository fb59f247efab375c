package ingest

// TermCount holds the raw occurrence count and the normalized
// term-frequency score of one term within one document.
type TermCount struct {
	Frequency int64
	Score     float64
}

// TermFrequency computes per-term frequencies for a token sequence.
// Score is occurrences divided by the post-filtering token count, so the
// denominator reflects indexable tokens only. Callers must not pass an
// empty slice.
func TermFrequency(tokens []string) map[string]TermCount {
	counts := make(map[string]int64, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	total := float64(len(tokens))
	scores := make(map[string]TermCount, len(counts))
	for term, n := range counts {
		scores[term] = TermCount{
			Frequency: n,
			Score:     float64(n) / total,
		}
	}
	return scores
}
