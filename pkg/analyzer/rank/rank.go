package rank

import (
	"math"
	"sort"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store"
)

// DefaultTopN is the result-set size used when the caller asks for zero
// or fewer results.
const DefaultTopN = 10

// Result is one ranked document.
type Result struct {
	Filename string
	Score    float64
}

// IDF computes inverse-document-frequency weights from the corpus size
// and per-term distinct document counts: weight = ln(totalDocs / df).
// An empty corpus yields an empty map; a term present in every document
// gets weight 0.
func IDF(totalDocs int64, docFrequencies map[string]int64) map[string]float64 {
	if totalDocs == 0 {
		return map[string]float64{}
	}

	weights := make(map[string]float64, len(docFrequencies))
	for term, df := range docFrequencies {
		if df <= 0 {
			continue
		}
		weights[term] = math.Log(float64(totalDocs) / float64(df))
	}
	return weights
}

// Rank accumulates TF×IDF over the query terms for every document touched
// by at least one term, drops documents whose total is not strictly
// positive, and returns the top N by descending score. Equal scores keep
// ascending document id, i.e. store insertion order. Duplicate query
// terms count once: repeating a word does not multiply its contribution.
func Rank(queryTerms []string, idf map[string]float64, termScores []store.TermScore, topN int) []Result {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(queryTerms) == 0 {
		return nil
	}

	wanted := make(map[string]struct{}, len(queryTerms))
	for _, term := range queryTerms {
		wanted[term] = struct{}{}
	}

	type candidate struct {
		id       int64
		filename string
		score    float64
	}

	byDoc := make(map[int64]*candidate)
	var order []int64
	for _, ts := range termScores {
		if _, ok := wanted[ts.Term]; !ok {
			continue
		}
		weight, ok := idf[ts.Term]
		if !ok {
			continue
		}
		c, ok := byDoc[ts.DocID]
		if !ok {
			c = &candidate{id: ts.DocID, filename: ts.Filename}
			byDoc[ts.DocID] = c
			order = append(order, ts.DocID)
		}
		c.score += ts.TFScore * weight
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	candidates := make([]candidate, 0, len(order))
	for _, id := range order {
		c := byDoc[id]
		if c.score > 0 {
			candidates = append(candidates, *c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = Result{Filename: c.filename, Score: c.score}
	}
	return results
}
