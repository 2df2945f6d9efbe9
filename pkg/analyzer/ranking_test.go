package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keywordsOf(results []KeywordResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Keyword
	}
	return out
}

func TestRank_StableByDocumentCount(t *testing.T) {
	input := []KeywordResult{
		Score("a", 100, 500),
		Score("b", 100, 200),
		Score("c", 100, 200),
		Score("d", 100, 9000),
	}

	ranked := Rank(input)

	assert.Equal(t, []string{"b", "c", "a", "d"}, keywordsOf(ranked))
	assert.Equal(t, []string{"a", "b", "c", "d"}, keywordsOf(input), "input must not be reordered")
}

func TestRank_IgnoresSaturation(t *testing.T) {
	ranked := Rank([]KeywordResult{
		Score("low-volume", 1, 100),
		Score("high-volume", 100000, 200),
	})
	assert.Equal(t, []string{"low-volume", "high-volume"}, keywordsOf(ranked))
}

func TestFilterBySaturation_KeepsOrder(t *testing.T) {
	ranked := []KeywordResult{
		Score("a", 100, 10),
		Score("b", 100, 500),
		Score("c", 100, 100),
		Score("d", 0, 90000),
	}

	kept := FilterBySaturation(ranked, 1.0)
	assert.Equal(t, []string{"a", "c", "d"}, keywordsOf(kept))
}

func TestFilterByMinMonthlySearch(t *testing.T) {
	results := []KeywordResult{
		Score("a", 499, 1),
		Score("b", 500, 1),
		Score("c", 10000, 1),
	}
	assert.Equal(t, []string{"b", "c"}, keywordsOf(FilterByMinMonthlySearch(results, 500)))
	assert.Len(t, FilterByMinMonthlySearch(results, 0), 3)
}

func TestLimit(t *testing.T) {
	results := []KeywordResult{Score("a", 1, 1), Score("b", 1, 1), Score("c", 1, 1)}

	assert.Len(t, Limit(results, 2), 2)
	assert.Len(t, Limit(results, 0), 3)
	assert.Len(t, Limit(results, 10), 3)
}
