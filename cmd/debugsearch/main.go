package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hyperifyio/coursecrawl/internal/search"
)

func main() {
	key := os.Getenv("SERPAPI_KEY")
	q := "Data science course site:coursera.org"
	if len(os.Args) > 1 {
		q = os.Args[1]
	}
	client := &http.Client{Timeout: 20 * time.Second}
	prov := &search.SerpAPI{APIKey: key, HTTPClient: client, UserAgent: "debugsearch/1.0"}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	res, err := prov.Search(ctx, q, 5)
	fmt.Println("err:", err)
	for i, r := range res {
		fmt.Printf("%d. %s — %s\n", i+1, r.Title, r.URL)
	}
}
