package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizer runs raw candidate lines through an ordered filter chain.
type Normalizer struct {
	filters []Filter
}

// New returns a normalizer with the default chain for copied trending lists
// and manual input.
func New() *Normalizer {
	return NewWithSourceLabels(DefaultSourceLabels)
}

// NewWithSourceLabels is New with a custom set of provider labels to reject.
func NewWithSourceLabels(sourceLabels []string) *Normalizer {
	noise := NewDefaultNoiseFilter(sourceLabels)

	// The noise and lower-bound checks run again after the rank prefix is
	// stripped, so that normalizing an already normalized list is a no-op.
	return &Normalizer{
		filters: []Filter{
			NewTrimFilter("trim"),
			noise,
			NewLengthFilter("min_length", MinKeywordLength, 0),
			NewRankPrefixFilter("rank_prefix"),
			noise,
			NewLengthFilter("length_bounds", MinKeywordLength, MaxKeywordLength),
			NewDuplicateFilter("dedup"),
		},
	}
}

// NewWithFilters builds a normalizer with an explicit chain.
func NewWithFilters(filters ...Filter) *Normalizer {
	return &Normalizer{filters: filters}
}

// Filters returns the names of the configured chain, in order.
func (n *Normalizer) Filters() []string {
	names := make([]string, 0, len(n.filters))
	for _, f := range n.filters {
		names = append(names, f.Name())
	}
	return names
}

// Normalize returns the surviving keywords in first-seen order. An empty
// result means there is nothing to analyze.
func (n *Normalizer) Normalize(lines []string) []Keyword {
	current := make([]string, len(lines))
	copy(current, lines)

	for _, filter := range n.filters {
		current = filter.Apply(current)
		if len(current) == 0 {
			return []Keyword{}
		}
	}

	keywords := make([]Keyword, 0, len(current))
	for _, line := range current {
		keywords = append(keywords, Keyword(line))
	}
	return keywords
}

var defaultNormalizer = New()

// Normalize cleans lines with the default chain.
func Normalize(lines []string) []Keyword {
	return defaultNormalizer.Normalize(lines)
}

// Strings converts keywords back to plain strings.
func Strings(keywords []Keyword) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, string(k))
	}
	return out
}

// CompactKey is the join key used to match a keyword against labels echoed
// by external providers: NFC form with every whitespace rune removed.
func CompactKey(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
