package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fieldfab/internal"
	"fieldfab/internal/storage"
)

// ErrNoData is returned when every source failed or yielded zero usable
// rows; the store is left unpopulated so a later attempt retries from
// scratch.
var ErrNoData = errors.New("catalog: no products loaded from any source")

// Fetcher retrieves the raw CSV text of one source.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// SourceFetcher reads http(s) URLs over the network and anything else from
// the local filesystem.
type SourceFetcher struct {
	httpClient *http.Client
}

func NewSourceFetcher(timeout time.Duration) *SourceFetcher {
	return &SourceFetcher{httpClient: &http.Client{Timeout: timeout}}
}

func (f *SourceFetcher) Fetch(ctx context.Context, location string) (string, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		blob, err := os.ReadFile(location)
		if err != nil {
			return "", err
		}
		return string(blob), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", location, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Ingestor populates the store from an ordered list of sources.
type Ingestor struct {
	db      *storage.DB
	fetcher Fetcher
}

func NewIngestor(db *storage.DB, fetcher Fetcher) *Ingestor {
	return &Ingestor{db: db, fetcher: fetcher}
}

// Populate loads every source, aggregates the parsed records and inserts
// them in one transaction, marking the store populated. It is idempotent:
// once populated it returns (0, nil) without touching the sources. A fetch
// failure on one source never aborts the others.
func (s *Ingestor) Populate(ctx context.Context, sources []string) (int, error) {
	populated, err := s.db.IsPopulated()
	if err != nil {
		return 0, err
	}
	if populated {
		return 0, nil
	}

	var all []internal.ProductRecord
	for _, source := range sources {
		text, err := s.fetcher.Fetch(ctx, source)
		if err != nil {
			log.Printf("catalog: skipping source %s: %v", source, err)
			continue
		}
		products := ParseSource(text, source)
		all = append(all, products...)
	}

	if len(all) == 0 {
		return 0, ErrNoData
	}

	if _, err := s.db.InsertCatalog(all); err != nil {
		return 0, err
	}
	return len(all), nil
}
