package catalog

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"fieldfab/internal"
	"fieldfab/internal/config"
	"fieldfab/internal/storage"
)

// Service is the catalog boundary the UI layer talks to: idempotent init,
// one-time population, ranked search and the filter helpers.
type Service struct {
	db       *storage.DB
	ingestor *Ingestor

	// Serializes population so concurrent callers share one in-flight run
	// instead of ingesting twice.
	populateMu sync.Mutex
}

// NewService builds a service around an injected store, so tests get a
// fresh catalog without shared state.
func NewService(db *storage.DB, fetcher Fetcher) *Service {
	return &Service{db: db, ingestor: NewIngestor(db, fetcher)}
}

var (
	defaultOnce sync.Once
	defaultSvc  *Service
	defaultErr  error
)

// Default returns the process-wide service, opening the store on first
// call. Every later call returns the same instance.
func Default(cfg config.Config) (*Service, error) {
	defaultOnce.Do(func() {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			defaultErr = err
			return
		}
		fetcher := NewSourceFetcher(time.Duration(cfg.FetchTimeoutMs) * time.Millisecond)
		defaultSvc = NewService(db, fetcher)
	})
	return defaultSvc, defaultErr
}

// EnsurePopulated ingests the sources unless the store is already
// populated. A second caller arriving mid-ingestion blocks until the first
// run finishes and then observes the populated flag.
func (s *Service) EnsurePopulated(ctx context.Context, sources []string) (int, error) {
	s.populateMu.Lock()
	defer s.populateMu.Unlock()
	return s.ingestor.Populate(ctx, sources)
}

// Search returns the best-matching records for a free-text query, ranked
// by the scoring tiers and deduplicated by name. Queries under the length
// threshold return nil without touching the store.
func (s *Service) Search(query string, limit int) ([]internal.ProductRecord, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return nil, nil
	}
	products, err := s.db.ListProducts()
	if err != nil {
		return nil, err
	}
	return RankProducts(products, query, limit), nil
}

// Manufacturers lists the distinct manufacturer labels, sorted.
func (s *Service) Manufacturers() ([]string, error) {
	return s.db.Manufacturers()
}

func (s *Service) Count() (int, error) {
	return s.db.CountProducts()
}

func (s *Service) IsPopulated() (bool, error) {
	return s.db.IsPopulated()
}

func (s *Service) Get(id int64) (*internal.ProductRecord, error) {
	return s.db.GetProduct(id)
}

// Clear empties the catalog and resets the populated flag so the next
// EnsurePopulated re-ingests from scratch.
func (s *Service) Clear() error {
	return s.db.Clear()
}

func (s *Service) Close() error {
	return s.db.Close()
}
