package normalizer

// Keyword is a cleaned, length-bounded candidate search term.
type Keyword string

func (k Keyword) String() string {
	return string(k)
}

// Filter is one stage of the cleaning chain. A filter may drop lines or
// rewrite them, but must keep the relative order of the lines it returns.
type Filter interface {
	Apply(lines []string) []string
	Name() string
}

// KeywordNormalizer turns raw candidate lines into an ordered, duplicate-free
// keyword list.
type KeywordNormalizer interface {
	Normalize(lines []string) []Keyword
}
