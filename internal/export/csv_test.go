package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/coursecrawl/internal/course"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courses.csv")
	rows := []course.Record{
		{
			Title: "Intro to X", Description: "Learn X.", Skills: "X, Y",
			URL: "https://example.org/course/x", Level: "Beginner",
			Duration: course.Sentinel, Rating: "4.5", Price: "Free",
			Platform: "Coursera", CategoryQuery: "AI/ML course",
		},
	}

	written, err := WriteCSV(rows, path)
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if written != path {
		t.Fatalf("expected primary path, got %q", written)
	}

	f, err := os.Open(written)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "course_title" || records[0][9] != "category_query" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Intro to X" || records[1][9] != "AI/ML course" {
		t.Fatalf("unexpected row: %v", records[1])
	}
}

func TestWriteCSV_EmptyIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courses.csv")
	written, err := WriteCSV(nil, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != "" {
		t.Fatalf("expected no file written, got %q", written)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no file should exist for empty input")
	}
}

func TestWriteCSV_FallbackWhenDestinationUnwritable(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination path makes os.Create fail the same way
	// a locked file would.
	path := filepath.Join(dir, "courses.csv")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	rows := []course.Record{{Title: "t", URL: "u"}}
	written, err := WriteCSV(rows, path)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if written == path || !strings.HasPrefix(written, filepath.Join(dir, "courses_")) {
		t.Fatalf("unexpected fallback path %q", written)
	}
	if _, err := os.Stat(written); err != nil {
		t.Fatalf("fallback file missing: %v", err)
	}
}

func TestFallbackPath(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	got := fallbackPath("out/courses.csv", now)
	if got != "out/courses_20250304_050607.csv" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteSummaryPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.pdf")
	rows := []course.Record{
		{Title: "A", Platform: "Coursera", Level: "Beginner", CategoryQuery: "c1"},
		{Title: "B", Platform: "edX", Level: "Advanced", CategoryQuery: "c2"},
	}
	if err := WriteSummaryPDF(rows, path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty pdf, err=%v", err)
	}
}
