package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/skychart/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
)

// SourceIndex implements sahilm/fuzzy.Source over source names
type SourceIndex struct {
	names []string // Pre-computed lowercase names
}

// NewSourceIndex indexes the names of sources in catalog order
func NewSourceIndex(sources []domain.Source) *SourceIndex {
	idx := &SourceIndex{names: make([]string, len(sources))}
	for i, s := range sources {
		idx.names[i] = strings.ToLower(s.Name)
	}
	return idx
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *SourceIndex) String(i int) string { return idx.names[i] }

// Len returns the number of sources (implements fuzzy.Source)
func (idx *SourceIndex) Len() int { return len(idx.names) }

// FilterMatch is a menu filter hit with match metadata for highlighting
type FilterMatch struct {
	Index          int // Index into the catalog's sources
	MatchedIndexes []int
	Score          int // Higher is better
}

// Filter returns the sources matching query, best first.
// An empty query matches every source in catalog order.
func (idx *SourceIndex) Filter(query string) []FilterMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]FilterMatch, idx.Len())
		for i := range out {
			out[i] = FilterMatch{Index: i}
		}
		return out
	}

	matches := sfuzzy.FindFrom(query, idx)
	out := make([]FilterMatch, len(matches))
	for i, m := range matches {
		out[i] = FilterMatch{Index: m.Index, MatchedIndexes: m.MatchedIndexes, Score: m.Score}
	}
	return out
}

// FindSource resolves a name to a source index using ranked fuzzy matching.
// Exact and prefix matches win over looser ones.
func FindSource(sources []domain.Source, query string) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1, fmt.Errorf("empty source name: %w", domain.ErrSourceNotFound)
	}

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}

	ranks := fuzzy.RankFindFold(query, names)
	if len(ranks) == 0 {
		return -1, fmt.Errorf("%q: %w", query, domain.ErrSourceNotFound)
	}

	lower := strings.ToLower(query)
	sort.SliceStable(ranks, func(i, j int) bool {
		si := matchScore(strings.ToLower(ranks[i].Target), lower, ranks[i].Distance)
		sj := matchScore(strings.ToLower(ranks[j].Target), lower, ranks[j].Distance)
		if si != sj {
			return si < sj
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	return ranks[0].OriginalIndex, nil
}

// matchScore ranks a candidate, lower is better
func matchScore(name, query string, distance int) int {
	switch {
	case name == query:
		return 0
	case strings.HasPrefix(name, query):
		return 10 + distance
	case strings.Contains(name, query):
		return 50 + distance
	default:
		return 100 + distance
	}
}
