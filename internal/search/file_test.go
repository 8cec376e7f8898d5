package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileProvider_FiltersBySiteClause(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	fixture := `[
	 {"title":"Go course","url":"https://example.org/course/go","snippet":"learn go"},
	 {"title":"Go course elsewhere","url":"https://other.com/course/go","snippet":"learn go"}
	]`
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &FileProvider{Path: path}
	got, err := p.Search(context.Background(), "go course site:example.org", 5)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].URL != "https://example.org/course/go" {
		t.Fatalf("unexpected url: %q", got[0].URL)
	}
	if got[0].Source != "file" {
		t.Fatalf("unexpected source: %q", got[0].Source)
	}
}

func TestFileProvider_EmptyPath(t *testing.T) {
	p := &FileProvider{}
	if _, err := p.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error for empty path")
	}
}
