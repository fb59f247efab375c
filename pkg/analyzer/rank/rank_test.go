package rank

import (
	"math"
	"testing"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store"
)

const eps = 1e-9

func TestIDFEmptyCorpus(t *testing.T) {
	idf := IDF(0, map[string]int64{"ghost": 1})
	if len(idf) != 0 {
		t.Errorf("IDF of empty corpus = %v, want empty map", idf)
	}
}

func TestIDFTermInEveryDocument(t *testing.T) {
	idf := IDF(5, map[string]int64{"common": 5})
	if w := idf["common"]; math.Abs(w) > eps {
		t.Errorf("IDF(term in all docs) = %v, want 0", w)
	}
}

func TestIDFTermInOneDocument(t *testing.T) {
	const n = 7
	idf := IDF(n, map[string]int64{"rare": 1})
	if w := idf["rare"]; math.Abs(w-math.Log(n)) > eps {
		t.Errorf("IDF(term in 1 of %d) = %v, want ln(%d) = %v", n, w, n, math.Log(n))
	}
}

// twoDocCorpus builds term scores for:
//
//	doc 1 "A.pdf": machine learning data     (each TF = 1/3)
//	doc 2 "B.pdf": machine learning science  (each TF = 1/3)
func twoDocCorpus() (idf map[string]float64, scores []store.TermScore) {
	idf = IDF(2, map[string]int64{
		"machine": 2, "learning": 2, "data": 1, "science": 1,
	})
	third := 1.0 / 3.0
	scores = []store.TermScore{
		{DocID: 1, Filename: "A.pdf", Term: "machine", TFScore: third},
		{DocID: 1, Filename: "A.pdf", Term: "learning", TFScore: third},
		{DocID: 1, Filename: "A.pdf", Term: "data", TFScore: third},
		{DocID: 2, Filename: "B.pdf", Term: "machine", TFScore: third},
		{DocID: 2, Filename: "B.pdf", Term: "learning", TFScore: third},
		{DocID: 2, Filename: "B.pdf", Term: "science", TFScore: third},
	}
	return idf, scores
}

func TestRankFiltersZeroScores(t *testing.T) {
	idf, scores := twoDocCorpus()

	// "machine" appears in both documents, so its IDF is ln(2/2) = 0 and
	// every accumulated score is exactly 0: no results.
	results := Rank([]string{"machine"}, idf, scores, 10)
	if len(results) != 0 {
		t.Errorf("Rank(machine) = %v, want empty result set", results)
	}
}

func TestRankSingleMatch(t *testing.T) {
	idf, scores := twoDocCorpus()

	results := Rank([]string{"data"}, idf, scores, 10)
	if len(results) != 1 {
		t.Fatalf("Rank(data) returned %d results, want 1", len(results))
	}
	if results[0].Filename != "A.pdf" {
		t.Errorf("Rank(data) top result = %s, want A.pdf", results[0].Filename)
	}
	want := (1.0 / 3.0) * math.Log(2)
	if math.Abs(results[0].Score-want) > eps {
		t.Errorf("Rank(data) score = %v, want %v", results[0].Score, want)
	}
}

func TestRankMultiTermAccumulates(t *testing.T) {
	idf, scores := twoDocCorpus()

	// "data science" matches one distinguishing term per document with
	// identical TF and IDF, so both score equally.
	results := Rank([]string{"data", "science"}, idf, scores, 10)
	if len(results) != 2 {
		t.Fatalf("Rank(data science) returned %d results, want 2", len(results))
	}
	if math.Abs(results[0].Score-results[1].Score) > eps {
		t.Errorf("Scores differ: %v vs %v", results[0].Score, results[1].Score)
	}
	// Ties keep store insertion order (ascending document id).
	if results[0].Filename != "A.pdf" || results[1].Filename != "B.pdf" {
		t.Errorf("Tie order = [%s %s], want [A.pdf B.pdf]", results[0].Filename, results[1].Filename)
	}
}

func TestRankDescendingOrder(t *testing.T) {
	idf := IDF(3, map[string]int64{"quantum": 1})
	scores := []store.TermScore{
		{DocID: 1, Filename: "low.pdf", Term: "quantum", TFScore: 0.1},
		{DocID: 2, Filename: "high.pdf", Term: "quantum", TFScore: 0.5},
		{DocID: 3, Filename: "mid.pdf", Term: "quantum", TFScore: 0.3},
	}

	results := Rank([]string{"quantum"}, idf, scores, 10)
	if len(results) != 3 {
		t.Fatalf("Got %d results, want 3", len(results))
	}
	order := []string{"high.pdf", "mid.pdf", "low.pdf"}
	for i, want := range order {
		if results[i].Filename != want {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Filename, want)
		}
	}
}

func TestRankTruncatesToTopN(t *testing.T) {
	idf := IDF(10, map[string]int64{"term": 1})
	var scores []store.TermScore
	for i := 1; i <= 5; i++ {
		scores = append(scores, store.TermScore{
			DocID:    int64(i),
			Filename: "doc",
			Term:     "term",
			TFScore:  float64(i) * 0.1,
		})
	}

	results := Rank([]string{"term"}, idf, scores, 2)
	if len(results) != 2 {
		t.Errorf("Got %d results, want 2 after truncation", len(results))
	}
}

func TestRankUnknownTermContributesNothing(t *testing.T) {
	idf, scores := twoDocCorpus()

	// A query term absent from the corpus is not an error; it simply adds
	// zero to every document.
	results := Rank([]string{"data", "zeppelin"}, idf, scores, 10)
	if len(results) != 1 || results[0].Filename != "A.pdf" {
		t.Errorf("Rank(data zeppelin) = %v, want only A.pdf", results)
	}
}

func TestRankDuplicateQueryTermsCountOnce(t *testing.T) {
	idf, scores := twoDocCorpus()

	single := Rank([]string{"data"}, idf, scores, 10)
	repeated := Rank([]string{"data", "data"}, idf, scores, 10)

	if len(single) != 1 || len(repeated) != 1 {
		t.Fatalf("Got %d and %d results, want 1 each", len(single), len(repeated))
	}
	if math.Abs(single[0].Score-repeated[0].Score) > eps {
		t.Errorf("Repeated query term changed the score: %v vs %v",
			single[0].Score, repeated[0].Score)
	}
}

func TestRankEmptyQueryTerms(t *testing.T) {
	idf, scores := twoDocCorpus()
	if results := Rank(nil, idf, scores, 10); len(results) != 0 {
		t.Errorf("Rank with no terms = %v, want empty", results)
	}
}
