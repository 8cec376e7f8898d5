package fetch

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate answers whether a URL may be fetched according to the host's
// robots.txt. Rules are fetched once per host and kept for the run. A host
// whose robots.txt cannot be fetched or parsed is treated as allow-all, the
// same stance the rest of the pipeline takes toward missing data.
type RobotsGate struct {
	HTTPClient *http.Client
	UserAgent  string

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}
	data := g.rulesFor(ctx, u)
	if data == nil {
		return true
	}
	agent := g.UserAgent
	if agent == "" {
		agent = "coursecrawl"
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, agent)
}

func (g *RobotsGate) rulesFor(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	host := strings.ToLower(u.Host)
	g.mu.Lock()
	if g.hosts == nil {
		g.hosts = make(map[string]*robotstxt.RobotsData)
	}
	if data, ok := g.hosts[host]; ok {
		g.mu.Unlock()
		return data
	}
	g.mu.Unlock()

	data := g.fetchRules(ctx, u.Scheme, host)

	g.mu.Lock()
	g.hosts[host] = data
	g.mu.Unlock()
	return data
}

func (g *RobotsGate) fetchRules(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	robotsURL := scheme + "://" + host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}
	hc := g.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
