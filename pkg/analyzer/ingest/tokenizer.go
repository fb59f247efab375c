package ingest

import (
	"strings"
	"unicode"
)

// minTermLen is the shortest token that makes it into the index.
const minTermLen = 3

// Tokenizer handles text normalization and tokenization
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize normalizes text into index-eligible terms: lowercase, strip
// every rune that is not an ASCII letter or whitespace (strip, not split:
// "co2" becomes "co"), split on whitespace, then drop stopwords and terms
// shorter than three letters. Empty input yields an empty slice.
func (t *Tokenizer) Tokenize(text string) []string {
	var cleaned strings.Builder
	cleaned.Grow(len(text))

	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			cleaned.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			cleaned.WriteRune(r + ('a' - 'A'))
		case unicode.IsSpace(r):
			cleaned.WriteRune(' ')
		}
	}

	var tokens []string
	for _, word := range strings.Fields(cleaned.String()) {
		if len(word) < minTermLen {
			continue
		}
		if t.isStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}
