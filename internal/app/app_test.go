package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/coursecrawl/internal/search"
)

type stubProvider struct {
	results []search.Result
	err     error
	queries []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, query string, _ int) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func newTestApp(t *testing.T, cfg Config, provider search.Provider) *App {
	t.Helper()
	cfg.APIKey = "test-key"
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	a.Provider = provider
	a.sleep = func(time.Duration) {}
	return a
}

func detailPage(title, desc string) string {
	return fmt.Sprintf(`<html><head>
	<script type="application/ld+json">{"@type":"Course","name":%q,"description":%q}</script>
	</head><body><h1>%s</h1></body></html>`, title, desc, title)
}

func TestRun_EndToEndDetailPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, detailPage("Intro to X", "Learn X basics and more."))
	}))
	defer srv.Close()
	host := mustHost(t, srv.URL)

	dir := t.TempDir()
	out := filepath.Join(dir, "courses.csv")
	cfg := Config{
		Platforms:  []string{host},
		Categories: []string{"Data science course"},
		OutputPath: out,
	}
	provider := &stubProvider{results: []search.Result{{Title: "hit", URL: srv.URL + "/intro-to-x?ref=serp"}}}
	a := newTestApp(t, cfg, provider)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	row := records[1]
	if row[0] != "Intro to X" {
		t.Fatalf("title = %q", row[0])
	}
	if row[1] != "Learn X basics and more." {
		t.Fatalf("description = %q", row[1])
	}
	if row[9] != "Data science course" {
		t.Fatalf("category_query = %q", row[9])
	}
	if len(provider.queries) != 1 || provider.queries[0] != "Data science course site:"+host {
		t.Fatalf("unexpected queries: %v", provider.queries)
	}
}

func TestCrawl_ListingExpansion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/courses/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>All courses</title></head><body>
		<a href="/course/a">Course A</a>
		<a href="/course/b">Course B</a>
		</body></html>`)
	})
	mux.HandleFunc("/course/a", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, detailPage("Course A", "About A."))
	})
	mux.HandleFunc("/course/b", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, detailPage("Course B", "About B."))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	host := mustHost(t, srv.URL)

	cfg := Config{
		Platforms:  []string{host},
		Categories: []string{"Go course"},
	}
	provider := &stubProvider{results: []search.Result{{Title: "listing", URL: srv.URL + "/courses/all"}}}
	a := newTestApp(t, cfg, provider)

	rows := a.Crawl(context.Background())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows from listing expansion, got %d: %v", len(rows), rows)
	}
	if rows[0].Title != "Course A" || rows[1].Title != "Course B" {
		t.Fatalf("unexpected titles: %q, %q", rows[0].Title, rows[1].Title)
	}
	if rows[0].CategoryQuery != "Go course" {
		t.Fatalf("category = %q", rows[0].CategoryQuery)
	}
}

func TestCrawl_DropsRecordsWithoutSignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><ul><li>only a list</li></ul></body></html>`)
	}))
	defer srv.Close()
	host := mustHost(t, srv.URL)

	cfg := Config{Platforms: []string{host}, Categories: []string{"x"}}
	provider := &stubProvider{results: []search.Result{{URL: srv.URL + "/empty-page"}}}
	a := newTestApp(t, cfg, provider)

	if rows := a.Crawl(context.Background()); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestCrawl_SearchErrorSkipsPair(t *testing.T) {
	cfg := Config{Platforms: []string{"example.org"}, Categories: []string{"x", "y"}}
	provider := &stubProvider{err: fmt.Errorf("quota exceeded")}
	a := newTestApp(t, cfg, provider)

	if rows := a.Crawl(context.Background()); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
	if len(provider.queries) != 2 {
		t.Fatalf("both pairs should still be attempted, got %v", provider.queries)
	}
}

func TestCrawl_FetchFailureSkipsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(500)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, detailPage("Good", "Still works."))
	}))
	defer srv.Close()
	host := mustHost(t, srv.URL)

	cfg := Config{Platforms: []string{host}, Categories: []string{"x"}, FetchAttempts: 1}
	provider := &stubProvider{results: []search.Result{
		{URL: srv.URL + "/bad"},
		{URL: srv.URL + "/good-course"},
	}}
	a := newTestApp(t, cfg, provider)

	rows := a.Crawl(context.Background())
	if len(rows) != 1 || rows[0].Title != "Good" {
		t.Fatalf("expected the good URL to survive, got %v", rows)
	}
}

func TestNew_MissingAPIKeyIsFatal(t *testing.T) {
	if _, err := New(Config{}); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNew_FileProviderNeedsNoKey(t *testing.T) {
	a, err := New(Config{SearchFile: "fixtures.json"})
	if err != nil {
		t.Fatalf("file provider should not require a key: %v", err)
	}
	if a.Provider.Name() != "file" {
		t.Fatalf("expected file provider, got %q", a.Provider.Name())
	}
}

func mustHost(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatal(err)
	}
	return u.Host
}
