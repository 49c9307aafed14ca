package scrape

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fieldfab/internal/catalog"
	"fieldfab/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

const sitemapXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/products/firelock-coupling</loc></url>
  <url><loc>https://example.com/products/garden-hose</loc></url>
  <url><loc>  </loc></url>
</urlset>`

const couplingHTML = `<html><head>
<meta name="description" content="Grooved  coupling for fire sprinkler
systems.">
</head><body><h1> FireLock Rigid Coupling </h1><p>Details.</p></body></html>`

const hoseHTML = `<html><head></head><body>
<h1>Garden Hose</h1><p>Waters the garden.</p></body></html>`

func testScraper(t *testing.T, pages map[string]string) *Scraper {
	t.Helper()
	cfg := config.Config{
		ScrapeSitemapURL:  "https://example.com/sitemap.xml",
		ScrapeUserAgent:   "fieldfab-test",
		ScrapeRateLimitPS: 1000,
		ScrapeTimeoutMs:   5000,
	}
	s := NewScraper(cfg)
	s.httpClient = &http.Client{
		Timeout: time.Second,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			body, ok := pages[r.URL.String()]
			status := http.StatusOK
			if !ok {
				status = http.StatusNotFound
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}
	return s
}

func testPages() map[string]string {
	return map[string]string{
		"https://example.com/sitemap.xml":                sitemapXML,
		"https://example.com/products/firelock-coupling": couplingHTML,
		"https://example.com/products/garden-hose":       hoseHTML,
	}
}

func TestProductURLs(t *testing.T) {
	s := testScraper(t, testPages())

	urls, err := s.ProductURLs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 {
		t.Fatalf("got %d urls: %v", len(urls), urls)
	}
	if urls[0] != "https://example.com/products/firelock-coupling" {
		t.Errorf("first url: got %q", urls[0])
	}
}

func TestScrapeProduct(t *testing.T) {
	s := testScraper(t, testPages())

	product, err := s.ScrapeProduct(context.Background(), "https://example.com/products/firelock-coupling")
	if err != nil {
		t.Fatal(err)
	}
	if product == nil {
		t.Fatal("fire-protection product was filtered out")
	}
	if product.ProductName != "FireLock Rigid Coupling" {
		t.Errorf("name: got %q", product.ProductName)
	}
	if product.ShortDescription != "Grooved coupling for fire sprinkler systems." {
		t.Errorf("description: got %q", product.ShortDescription)
	}

	hose, err := s.ScrapeProduct(context.Background(), "https://example.com/products/garden-hose")
	if err != nil {
		t.Fatal(err)
	}
	if hose != nil {
		t.Fatalf("non-fire product not filtered: %+v", hose)
	}
}

func TestRunWritesIngestibleCSV(t *testing.T) {
	s := testScraper(t, testPages())
	out := filepath.Join(t.TempDir(), "example_products.csv")

	n, err := s.Run(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("got %d products", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	records := catalog.ParseSource(string(data), out)
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	rec := records[0]
	if rec.ProductName != "FireLock Rigid Coupling" {
		t.Errorf("name: got %q", rec.ProductName)
	}
	if rec.Manufacturer != "Example" {
		t.Errorf("manufacturer: got %q", rec.Manufacturer)
	}
	if !strings.Contains(rec.SearchText, "fire sprinkler") {
		t.Errorf("search text: got %q", rec.SearchText)
	}
}

func TestFetchRetriesOnServerError(t *testing.T) {
	attempts := 0
	s := testScraper(t, nil)
	s.httpClient.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		status := http.StatusServiceUnavailable
		if attempts == 3 {
			status = http.StatusOK
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader("ok")),
			Header:     make(http.Header),
		}, nil
	})

	body, err := s.fetch(context.Background(), "https://example.com/flaky")
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ok" {
		t.Errorf("body: got %q", body)
	}
	if attempts != 3 {
		t.Errorf("got %d attempts", attempts)
	}
}
