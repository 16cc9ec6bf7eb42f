package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chatlens/chatlens/internal/archive"
	"github.com/chatlens/chatlens/internal/parse"
)

func setupArchive(t *testing.T) *archive.DB {
	t.Helper()

	db, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	content := "[01/01/2024, 09:00:00] Alice: planning the birthday party\n" +
		"[02/01/2024, 10:00:00] Bob: cake is ordered\n" +
		"[03/01/2024, 11:00:00] Alice: 我们去公园吧\n"
	src := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	c, err := parse.ParseFile(src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if _, err := archive.Store(db, src, c); err != nil {
		t.Fatalf("Store: %v", err)
	}
	return db
}

func TestSearch_FTS(t *testing.T) {
	t.Parallel()

	db := setupArchive(t)
	results, err := Search(db, Options{Query: "birthday"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results=%v, want 1", results)
	}
	if results[0].Sender != "Alice" {
		t.Errorf("Sender=%q, want Alice", results[0].Sender)
	}
	if !strings.Contains(results[0].Snippet, ">>>") {
		t.Errorf("Snippet=%q, want highlighted match", results[0].Snippet)
	}
}

func TestSearch_SenderFilter(t *testing.T) {
	t.Parallel()

	db := setupArchive(t)
	results, err := Search(db, Options{Query: "cake", Sender: "Alice"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results=%v, Bob's message must not match sender=Alice", results)
	}
}

func TestSearch_CJKFallsBackToLike(t *testing.T) {
	t.Parallel()

	db := setupArchive(t)
	results, err := Search(db, Options{Query: "公园"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results=%v, want 1 LIKE match", results)
	}
	if !strings.Contains(results[0].Snippet, ">>>公园<<<") {
		t.Errorf("Snippet=%q", results[0].Snippet)
	}
}

func TestMakeSnippet(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 100)
	got := makeSnippet(long, "needle", 10)
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("snippet %q missing ellipses", got)
	}
	if !strings.Contains(got, ">>>needle<<<") {
		t.Errorf("snippet %q missing marked match", got)
	}
}
