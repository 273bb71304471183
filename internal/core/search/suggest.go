// internal/core/search/suggest.go
package search

import (
	"sort"
	"strings"

	"github.com/pawmart/pawmart-be/internal/core/domain"
)

// suggestion sources in merge-tiebreak order
var suggestionSources = []SuggestionSource{SourceName, SourceCategory, SourceLocation}

// Suggest returns up to limit autocomplete candidates for a partial query,
// drawn from listing names, categories and locations. Queries shorter than
// MinQueryLength return nothing; a wildcard scan over one or two characters
// is all noise. Candidates are counted per distinct value within each source
// field, merged, and ordered by count descending with a stable tiebreak
// (source order, then text), so identical data always yields an identical
// sequence.
func Suggest(listings []*domain.Listing, query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinQueryLength {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		limit = MaxSuggestLimit
	}

	counts := map[SuggestionSource]map[string]*Suggestion{
		SourceName:     {},
		SourceCategory: {},
		SourceLocation: {},
	}

	collect := func(source SuggestionSource, value string) {
		if value == "" || !containsFold(value, q) {
			return
		}
		key := strings.ToLower(value)
		if s, ok := counts[source][key]; ok {
			s.Count++
			return
		}
		counts[source][key] = &Suggestion{Text: value, Source: source, Count: 1}
	}

	for _, l := range listings {
		collect(SourceName, l.Name)
		collect(SourceCategory, string(l.Category))
		collect(SourceLocation, l.Location)
	}

	var merged []Suggestion
	for _, source := range suggestionSources {
		for _, s := range counts[source] {
			merged = append(merged, *s)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Source != b.Source {
			return sourceRank(a.Source) < sourceRank(b.Source)
		}
		return strings.ToLower(a.Text) < strings.ToLower(b.Text)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	if merged == nil {
		merged = []Suggestion{}
	}
	return merged
}

func sourceRank(s SuggestionSource) int {
	for i, src := range suggestionSources {
		if s == src {
			return i
		}
	}
	return len(suggestionSources)
}
