package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode and foreign keys enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas apply per connection; a single pooled connection keeps them
	// in effect, and SQLite allows one writer at a time anyway.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys so term entries cascade with their document
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT UNIQUE NOT NULL,
	content TEXT NOT NULL,
	word_count INTEGER NOT NULL,
	revision_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS term_frequency (
	document_id INTEGER NOT NULL,
	term TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	tf_score REAL NOT NULL,
	UNIQUE(document_id, term),
	FOREIGN KEY(document_id) REFERENCES documents(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_term_frequency_term ON term_frequency(term);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDocument inserts or replaces a document and its full term set as
// one transaction. Re-ingesting an existing filename keeps its id and
// discards all prior term entries; a failure anywhere rolls back to the
// previously committed version.
func (s *sqliteStore) UpsertDocument(ctx context.Context, d store.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO documents (filename, content, word_count, revision_id)
VALUES (?, ?, ?, ?)
ON CONFLICT(filename) DO UPDATE SET
	content=excluded.content,
	word_count=excluded.word_count,
	revision_id=excluded.revision_id
RETURNING id;
`

	var docID int64
	err = tx.QueryRowContext(ctx, stmt, d.Filename, d.Content, d.WordCount, d.RevisionID).Scan(&docID)
	if err != nil {
		return err
	}

	if err := replaceTermEntries(ctx, tx, docID, d.Terms); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceTermEntries(ctx context.Context, tx *sql.Tx, docID int64, terms []store.TermEntry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM term_frequency WHERE document_id=?`, docID); err != nil {
		return err
	}
	if len(terms) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO term_frequency (document_id, term, frequency, tf_score) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, te := range terms {
		if te.Term == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, docID, te.Term, te.Frequency, te.TFScore); err != nil {
			return err
		}
	}
	return nil
}

// GetDocument retrieves a document and its term entries by filename
func (s *sqliteStore) GetDocument(ctx context.Context, filename string) (store.Document, bool, error) {
	var d store.Document
	err := s.db.QueryRowContext(ctx, `
SELECT id, filename, content, word_count, revision_id
FROM documents
WHERE filename = ?;
`, filename).Scan(&d.ID, &d.Filename, &d.Content, &d.WordCount, &d.RevisionID)
	if err == sql.ErrNoRows {
		return store.Document{}, false, nil
	}
	if err != nil {
		return store.Document{}, false, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT term, frequency, tf_score
FROM term_frequency
WHERE document_id = ?
ORDER BY term;
`, d.ID)
	if err != nil {
		return store.Document{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var te store.TermEntry
		if err := rows.Scan(&te.Term, &te.Frequency, &te.TFScore); err != nil {
			return store.Document{}, false, err
		}
		d.Terms = append(d.Terms, te)
	}
	if err := rows.Err(); err != nil {
		return store.Document{}, false, err
	}
	return d, true, nil
}

// DeleteDocument removes a document; term entries cascade.
func (s *sqliteStore) DeleteDocument(ctx context.Context, filename string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE filename=?`, filename)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListDocuments returns all documents ordered by filename. An empty store
// yields an empty slice, never nil.
func (s *sqliteStore) ListDocuments(ctx context.Context) ([]store.DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, word_count FROM documents ORDER BY filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := []store.DocumentInfo{}
	for rows.Next() {
		var info store.DocumentInfo
		if err := rows.Scan(&info.Filename, &info.WordCount); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Stats returns display statistics for one document.
func (s *sqliteStore) Stats(ctx context.Context, filename string) (store.DocumentStats, bool, error) {
	var (
		st      store.DocumentStats
		content string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT d.filename, d.content, d.word_count, d.revision_id, COUNT(tf.term)
FROM documents d
LEFT JOIN term_frequency tf ON d.id = tf.document_id
WHERE d.filename = ?
GROUP BY d.id;
`, filename).Scan(&st.Filename, &content, &st.WordCount, &st.RevisionID, &st.UniqueTerms)
	if err == sql.ErrNoRows {
		return store.DocumentStats{}, false, nil
	}
	if err != nil {
		return store.DocumentStats{}, false, err
	}

	st.Preview = preview(content, store.PreviewLen)

	rows, err := s.db.QueryContext(ctx, `
SELECT tf.term, tf.frequency, tf.tf_score
FROM term_frequency tf
JOIN documents d ON tf.document_id = d.id
WHERE d.filename = ?
ORDER BY tf.frequency DESC, tf.term
LIMIT 10;
`, filename)
	if err != nil {
		return store.DocumentStats{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var te store.TermEntry
		if err := rows.Scan(&te.Term, &te.Frequency, &te.TFScore); err != nil {
			return store.DocumentStats{}, false, err
		}
		st.TopTerms = append(st.TopTerms, te)
	}
	if err := rows.Err(); err != nil {
		return store.DocumentStats{}, false, err
	}
	return st, true, nil
}

// TermFrequency is a point lookup of one document's score for one term.
func (s *sqliteStore) TermFrequency(ctx context.Context, filename, term string) (float64, bool, error) {
	var score float64
	err := s.db.QueryRowContext(ctx, `
SELECT tf.tf_score
FROM term_frequency tf
JOIN documents d ON tf.document_id = d.id
WHERE d.filename = ? AND tf.term = ?;
`, filename, term).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

// TermScores returns every (document, term, score) row matching the given
// terms, for ranking.
func (s *sqliteStore) TermScores(ctx context.Context, terms []string) ([]store.TermScore, error) {
	unique := uniqueStrings(terms)
	if len(unique) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(unique)), ",")
	args := make([]interface{}, 0, len(unique))
	for _, term := range unique {
		args = append(args, term)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT d.id, d.filename, tf.term, tf.tf_score
FROM term_frequency tf
JOIN documents d ON tf.document_id = d.id
WHERE tf.term IN (`+placeholders+`);
`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []store.TermScore
	for rows.Next() {
		var ts store.TermScore
		if err := rows.Scan(&ts.DocID, &ts.Filename, &ts.Term, &ts.TFScore); err != nil {
			return nil, err
		}
		scores = append(scores, ts)
	}
	return scores, rows.Err()
}

// DocumentFrequencies returns, for every indexed term, the number of
// distinct documents containing it.
func (s *sqliteStore) DocumentFrequencies(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT term, COUNT(DISTINCT document_id)
FROM term_frequency
GROUP BY term;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dfs := make(map[string]int64)
	for rows.Next() {
		var (
			term string
			df   int64
		)
		if err := rows.Scan(&term, &df); err != nil {
			return nil, err
		}
		dfs[term] = df
	}
	return dfs, rows.Err()
}

// TotalDocuments returns the corpus size
func (s *sqliteStore) TotalDocuments(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total)
	return total, err
}

func preview(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n])
}

func uniqueStrings(in []string) []string {
	set := make(map[string]struct{}, len(in))
	var out []string
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
