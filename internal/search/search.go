package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/chatlens/chatlens/internal/archive"
)

type Result struct {
	TranscriptKey string
	MessageIndex  int
	Ts            string
	Sender        string
	Snippet       string
	Rank          float64
}

type Options struct {
	Query  string
	Sender string // "" = all
	Since  string // "" = no filter, e.g. "2024-01-01"
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search runs a keyword query over archived messages. FTS5 handles most
// queries; CJK substrings fall back to LIKE since the unicode61 tokenizer
// does not segment them.
func Search(db *archive.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

func searchFTS(db *archive.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "messages_fts MATCH ?")
	args = append(args, opts.Query)

	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.transcript_key,
			m.message_index,
			m.ts,
			m.sender,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 40) as snip,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *archive.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "m.text LIKE ?")
	args = append(args, "%"+opts.Query+"%")

	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.transcript_key,
			m.message_index,
			m.ts,
			m.sender,
			m.text
		FROM messages m
		WHERE %s
		ORDER BY m.ts DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(
			&r.TranscriptKey, &r.MessageIndex, &r.Ts, &r.Sender, &fullText,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.TranscriptKey, &r.MessageIndex, &r.Ts, &r.Sender, &r.Snippet, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
