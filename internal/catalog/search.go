package catalog

import (
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"fieldfab/internal"
)

const DefaultSearchLimit = 10

// MinQueryLength is the threshold below which no scan is performed, so a
// single keystroke never scores the whole catalog.
const MinQueryLength = 2

type scoredProduct struct {
	product internal.ProductRecord
	score   int
}

// scoreProduct computes the match strength of one record. The tiers are
// mutually exclusive and evaluated strongest first: exact name, name
// prefix, name substring, search-text substring, then per-word overlap.
func scoreProduct(p internal.ProductRecord, queryLower string, queryWords []string) int {
	name := strings.ToLower(p.ProductName)

	switch {
	case name == queryLower:
		return 1000
	case strings.HasPrefix(name, queryLower):
		return 500
	case strings.Contains(name, queryLower):
		return 250
	case strings.Contains(p.SearchText, queryLower):
		return 100
	}

	matching := 0
	for _, word := range queryWords {
		if strings.Contains(p.SearchText, word) {
			matching++
		}
	}
	return matching * 50
}

// RankProducts scores every record against the query, drops non-matches,
// orders by score descending (stable, so insertion order breaks ties),
// dedupes by product name keeping the first occurrence, and truncates to
// limit.
func RankProducts(products []internal.ProductRecord, query string, limit int) []internal.ProductRecord {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < MinQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryLower := strings.ToLower(trimmed)
	queryWords := strings.Fields(queryLower)

	scored := make([]scoredProduct, 0, len(products))
	for _, p := range products {
		if score := scoreProduct(p, queryLower, queryWords); score > 0 {
			scored = append(scored, scoredProduct{product: p, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	// Keep only the highest-scoring record per distinct name. Identically
	// named products from other manufacturers are dropped on purpose.
	seen := map[string]struct{}{}
	out := make([]internal.ProductRecord, 0, limit)
	for _, s := range scored {
		key := strings.ToLower(s.product.ProductName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s.product)
		if len(out) == limit {
			break
		}
	}

	return out
}

// SearchSession hands out monotonically increasing request tokens so a
// caller issuing overlapping keystroke-driven searches can discard results
// that arrive after a newer request has been started.
type SearchSession struct {
	gen atomic.Int64
}

// Begin marks the start of a new request and returns its token. All earlier
// tokens become stale.
func (s *SearchSession) Begin() int64 {
	return s.gen.Add(1)
}

// Current reports whether token still belongs to the most recent request.
func (s *SearchSession) Current(token int64) bool {
	return s.gen.Load() == token
}
