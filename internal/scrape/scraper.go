package scrape

import (
	"context"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fieldfab/internal"
	"fieldfab/internal/config"
)

// fireKeywords gate which sitemap products make it into the output CSV.
var fireKeywords = []string{
	"fire", "sprinkler", "firelock", "flame", "suppression",
	"extinguish", "nfpa", "ul listed", "fm approved",
}

var reSpaces = regexp.MustCompile(`\s+`)

type Scraper struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewScraper(cfg config.Config) *Scraper {
	return &Scraper{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.ScrapeTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.ScrapeRateLimitPS),
	}
}

type sitemapURLSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// ProductURLs fetches the products sitemap and returns every listed URL.
func (s *Scraper) ProductURLs(ctx context.Context) ([]string, error) {
	body, err := s.fetch(ctx, s.cfg.ScrapeSitemapURL)
	if err != nil {
		return nil, err
	}

	var set sitemapURLSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		loc := strings.TrimSpace(u.Loc)
		if loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

// ScrapeProduct extracts name and short description from one product page.
// Returns nil when the page is not a fire-protection product.
func (s *Scraper) ScrapeProduct(ctx context.Context, pageURL string) (*internal.ScrapedProduct, error) {
	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	name := extractTitle(doc)
	if name == "" {
		return nil, fmt.Errorf("no product title at %s", pageURL)
	}
	if !isFireProtectionProduct(doc, name) {
		return nil, nil
	}

	return &internal.ScrapedProduct{
		ProductName:      name,
		ProductURL:       pageURL,
		ShortDescription: extractShortDescription(doc),
	}, nil
}

// Run walks the sitemap, scrapes each fire-protection product and writes
// the source CSV. Individual page failures are logged and skipped.
func (s *Scraper) Run(ctx context.Context, outputPath string) (int, error) {
	urls, err := s.ProductURLs(ctx)
	if err != nil {
		return 0, err
	}

	var products []internal.ScrapedProduct
	for _, u := range urls {
		s.limiter.WaitTurn()
		product, err := s.ScrapeProduct(ctx, u)
		if err != nil {
			log.Printf("scrape: skipping %s: %v", u, err)
			continue
		}
		if product == nil {
			continue
		}
		products = append(products, *product)
	}

	if err := WriteSourceCSV(products, outputPath); err != nil {
		return 0, err
	}
	return len(products), nil
}

// WriteSourceCSV writes scraped products in the source-CSV column layout
// the ingestion pipeline consumes.
func WriteSourceCSV(products []internal.ScrapedProduct, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"product_name", "product_url", "short_description"}); err != nil {
		return err
	}
	for _, p := range products {
		if err := w.Write([]string{p.ProductName, p.ProductURL, p.ShortDescription}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", s.cfg.ScrapeUserAgent)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 3 {
				time.Sleep(time.Duration(250*attempt) * time.Millisecond)
				lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
				continue
			}
			return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
		}
		return body, nil
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func extractTitle(doc *goquery.Document) string {
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return cleanText(og)
	}
	return ""
}

func extractShortDescription(doc *goquery.Document) string {
	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && cleanText(meta) != "" {
		return cleanText(meta)
	}
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && cleanText(og) != "" {
		return cleanText(og)
	}
	if p := doc.Find("h1").First().NextAllFiltered("p").First(); p.Length() > 0 {
		if text := cleanText(p.Text()); text != "" {
			return text
		}
	}
	return cleanText(doc.Find("p").First().Text())
}

func isFireProtectionProduct(doc *goquery.Document, title string) bool {
	titleLower := strings.ToLower(title)
	for _, k := range fireKeywords {
		if strings.Contains(titleLower, k) {
			return true
		}
	}
	bodyLower := strings.ToLower(doc.Text())
	for _, k := range fireKeywords {
		if strings.Contains(bodyLower, k) {
			return true
		}
	}
	return false
}

func cleanText(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
