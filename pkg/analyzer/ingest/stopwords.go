package ingest

// DefaultStopwords is the closed list of English function words excluded
// from indexing and querying.
var DefaultStopwords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at",
	"to", "for", "of", "with", "by", "is", "are", "was", "were",
	"be", "been", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "must",
	"this", "that", "these", "those", "i", "you", "he", "she",
	"it", "we", "they", "me", "him", "her", "us", "them",
}
