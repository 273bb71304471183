// internal/core/search/suggest_test.go
package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

func TestSuggest(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("Golden Retriever Puppy", domain.CategoryDogs, 850, "Portland, OR", 0),
		listing("Golden Retriever Puppy", domain.CategoryDogs, 900, "Austin, TX", 1),
		listing("Golden Lab", domain.CategoryDogs, 500, "Denver, CO", 2),
		listing("Siamese Cat", domain.CategoryCats, 300, "Golden, CO", 3),
	}

	t.Run("ranked_by_count_then_source_then_text", func(t *testing.T) {
		got := search.Suggest(fixtures, "golden", 10)
		require.Len(t, got, 3)

		// Two listings share a name, so it outranks the single-count
		// candidates. Among those, name beats location.
		assert.Equal(t, search.Suggestion{Text: "Golden Retriever Puppy", Source: search.SourceName, Count: 2}, got[0])
		assert.Equal(t, search.Suggestion{Text: "Golden Lab", Source: search.SourceName, Count: 1}, got[1])
		assert.Equal(t, search.Suggestion{Text: "Golden, CO", Source: search.SourceLocation, Count: 1}, got[2])
	})

	t.Run("query_matches_categories_too", func(t *testing.T) {
		got := search.Suggest(fixtures, "dog", 10)
		require.Len(t, got, 1)
		assert.Equal(t, search.Suggestion{Text: "dogs", Source: search.SourceCategory, Count: 3}, got[0])
	})

	t.Run("limit_truncates", func(t *testing.T) {
		got := search.Suggest(fixtures, "golden", 2)
		require.Len(t, got, 2)
		assert.Equal(t, "Golden Retriever Puppy", got[0].Text)
	})

	t.Run("query_shorter_than_minimum_returns_empty", func(t *testing.T) {
		got := search.Suggest(fixtures, "g", 10)
		require.NotNil(t, got)
		assert.Len(t, got, 0)
	})

	t.Run("blank_query_returns_empty", func(t *testing.T) {
		got := search.Suggest(fixtures, "   ", 10)
		require.NotNil(t, got)
		assert.Len(t, got, 0)
	})

	t.Run("no_matches_returns_empty_not_nil", func(t *testing.T) {
		got := search.Suggest(fixtures, "aquarium", 10)
		require.NotNil(t, got)
		assert.Len(t, got, 0)
	})

	t.Run("zero_limit_uses_default", func(t *testing.T) {
		many := make([]*domain.Listing, 0, 10)
		for i := 0; i < 10; i++ {
			many = append(many, listing(fmt.Sprintf("Golden %02d", i), domain.CategoryDogs, 10, "Denver, CO", i))
		}
		got := search.Suggest(many, "golden", 0)
		assert.Len(t, got, search.DefaultSuggestLimit)
	})

	t.Run("excessive_limit_is_capped", func(t *testing.T) {
		many := make([]*domain.Listing, 0, 30)
		for i := 0; i < 30; i++ {
			many = append(many, listing(fmt.Sprintf("Golden %02d", i), domain.CategoryDogs, 10, "Denver, CO", i))
		}
		got := search.Suggest(many, "golden", 500)
		assert.Len(t, got, search.MaxSuggestLimit)
	})
}

func TestSuggest_GroupsCaseInsensitively(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("Golden Lab", domain.CategoryDogs, 500, "Denver, CO", 0),
		listing("golden lab", domain.CategoryDogs, 450, "Denver, CO", 1),
		listing("GOLDEN LAB", domain.CategoryDogs, 400, "Denver, CO", 2),
	}

	got := search.Suggest(fixtures, "golden", 10)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Count)
	// Display text keeps the casing of the first occurrence.
	assert.Equal(t, "Golden Lab", got[0].Text)
}

func TestSuggest_MinLengthCountsRunes(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("Café Crate", domain.CategoryAccessories, 40, "Denver, CO", 0),
	}

	// Two runes but three bytes: still long enough to search.
	got := search.Suggest(fixtures, "fé", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "Café Crate", got[0].Text)
}
