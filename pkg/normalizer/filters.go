package normalizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length bounds for an accepted keyword, in characters.
const (
	MinKeywordLength = 2
	MaxKeywordLength = 20
)

// DefaultSourceLabels are trending-list provider names that show up as
// standalone lines when a ranking page is copied wholesale.
var DefaultSourceLabels = []string{"daum", "zum", "nate", "googletrend"}

var (
	rankPrefix = regexp.MustCompile(`^\p{Nd}+[\s\p{Zs}]+`)

	defaultNoisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\p{Nd}+$`),                  // bare rank or count
		regexp.MustCompile(`^\p{Nd}{4}년`),                // "2024년 04월 ..." date headers
		regexp.MustCompile(`실시간 검색어`),                    // live ranking boilerplate
		regexp.MustCompile(`기준$`),                        // "... 기준" collected-as-of suffix
		regexp.MustCompile(`🔍`),                          // search glyph buttons
		regexp.MustCompile(`\p{Nd}+,\p{Nd}+`),            // thousand-separated counts
		regexp.MustCompile(`^\p{Nd}+[\s\p{Zs}]+\p{Nd}+`), // rank followed by a number
	}
)

// NoiseFilter drops lines matching any of its patterns.
type NoiseFilter struct {
	patterns []*regexp.Regexp
	name     string
}

func NewNoiseFilter(name string, patterns []*regexp.Regexp) *NoiseFilter {
	return &NoiseFilter{
		name:     name,
		patterns: patterns,
	}
}

// NewDefaultNoiseFilter builds the noise filter for copied trending lists,
// including an exact, case-insensitive match on the given source labels.
func NewDefaultNoiseFilter(sourceLabels []string) *NoiseFilter {
	patterns := make([]*regexp.Regexp, 0, len(defaultNoisePatterns)+1)
	patterns = append(patterns, defaultNoisePatterns...)

	if len(sourceLabels) > 0 {
		quoted := make([]string, 0, len(sourceLabels))
		for _, label := range sourceLabels {
			quoted = append(quoted, regexp.QuoteMeta(label))
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)^(?:`+strings.Join(quoted, "|")+`)$`))
	}

	return NewNoiseFilter("noise", patterns)
}

func (f *NoiseFilter) Apply(lines []string) []string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if !f.Matches(line) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

// Matches reports whether line is noise.
func (f *NoiseFilter) Matches(line string) bool {
	for _, pattern := range f.patterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func (f *NoiseFilter) Name() string {
	return f.name
}

// LengthFilter keeps lines whose character count is within [min, max].
// A non-positive max disables the upper bound.
type LengthFilter struct {
	minLength int
	maxLength int
	name      string
}

func NewLengthFilter(name string, minLength, maxLength int) *LengthFilter {
	return &LengthFilter{
		name:      name,
		minLength: minLength,
		maxLength: maxLength,
	}
}

func (f *LengthFilter) Apply(lines []string) []string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n < f.minLength {
			continue
		}
		if f.maxLength > 0 && n > f.maxLength {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

func (f *LengthFilter) Name() string {
	return f.name
}

// RankPrefixFilter strips a leading "3 " style rank marker from lines such
// as "3 삼성전자". Lines without a marker pass through unchanged.
type RankPrefixFilter struct {
	name string
}

func NewRankPrefixFilter(name string) *RankPrefixFilter {
	return &RankPrefixFilter{name: name}
}

func (f *RankPrefixFilter) Apply(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, StripRankPrefix(line))
	}
	return out
}

func (f *RankPrefixFilter) Name() string {
	return f.name
}

// StripRankPrefix removes one leading numeral-plus-whitespace token.
func StripRankPrefix(line string) string {
	if loc := rankPrefix.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	return line
}

// TrimFilter trims surrounding whitespace.
type TrimFilter struct {
	name string
}

func NewTrimFilter(name string) *TrimFilter {
	return &TrimFilter{name: name}
}

func (f *TrimFilter) Apply(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

func (f *TrimFilter) Name() string {
	return f.name
}

// DuplicateFilter drops exact (case-sensitive) repeats, keeping the first.
type DuplicateFilter struct {
	name string
}

func NewDuplicateFilter(name string) *DuplicateFilter {
	return &DuplicateFilter{name: name}
}

func (f *DuplicateFilter) Apply(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	filtered := make([]string, 0, len(lines))

	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		filtered = append(filtered, line)
	}

	return filtered
}

func (f *DuplicateFilter) Name() string {
	return f.name
}
