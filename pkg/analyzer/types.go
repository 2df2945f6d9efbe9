package analyzer

import (
	"fmt"
	"time"
)

// Tier is the competition class of a keyword, derived from its document count.
type Tier int

const (
	TierEasy Tier = iota
	TierModerate
	TierHard
	TierVeryHard
)

// Document-count upper bounds (inclusive) of each tier
const (
	EasyMaxDocuments     = 1000
	ModerateMaxDocuments = 10000
	HardMaxDocuments     = 50000
)

var tierNames = map[Tier]string{
	TierEasy:     "Easy",
	TierModerate: "Moderate",
	TierHard:     "Hard",
	TierVeryHard: "VeryHard",
}

// Korean display names of the document-count tiers
var tierLabels = map[Tier]string{
	TierEasy:     "쉬움",
	TierModerate: "보통",
	TierHard:     "어려움",
	TierVeryHard: "매우어려움",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Label is the display label used in tables, e.g. "🟢 쉬움"
func (t Tier) Label() string {
	name, ok := tierLabels[t]
	if !ok {
		return ""
	}
	return t.Marker() + " " + name
}

// Marker is the colored circle of the label
func (t Tier) Marker() string {
	switch t {
	case TierEasy:
		return "🟢"
	case TierModerate:
		return "🟡"
	case TierHard:
		return "🟠"
	case TierVeryHard:
		return "🔴"
	}
	return ""
}

func (t Tier) MarshalText() ([]byte, error) {
	if _, ok := tierNames[t]; !ok {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	for tier, name := range tierNames {
		if name == string(text) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(text))
}

// KeywordResult is one scored keyword
type KeywordResult struct {
	Keyword       string  `json:"keyword"`
	MonthlySearch int     `json:"monthly_search"`
	DocumentCount int     `json:"document_count"`
	Saturation    float64 `json:"saturation"`
	Tier          Tier    `json:"tier"`
}

// RelatedTerms holds the suggestions for one ranked keyword
type RelatedTerms struct {
	Keyword string   `json:"keyword"`
	Terms   []string `json:"terms"`
}

// LookupStats counts outbound calls and collapsed failures of one run
type LookupStats struct {
	VolumeBatches      int `json:"volume_batches"`
	VolumeFailures     int `json:"volume_failures"`
	DocumentLookups    int `json:"document_lookups"`
	DocumentFailures   int `json:"document_failures"`
	SuggestionLookups  int `json:"suggestion_lookups"`
	SuggestionFailures int `json:"suggestion_failures"`
}

// Report is the outcome of one Analyze call
type Report struct {
	RunID            string          `json:"run_id"`
	Title            string          `json:"title"`
	StartedAt        time.Time       `json:"started_at"`
	Duration         time.Duration   `json:"duration"`
	Keywords         []string        `json:"keywords"`
	Results          []KeywordResult `json:"results"`
	Related          []RelatedTerms  `json:"related,omitempty"`
	Stats            LookupStats     `json:"stats"`
	NothingToAnalyze bool            `json:"nothing_to_analyze"`
}

// RelatedFor returns the suggestions stored for keyword, if any
func (r *Report) RelatedFor(keyword string) ([]string, bool) {
	for _, rt := range r.Related {
		if rt.Keyword == keyword {
			return rt.Terms, true
		}
	}
	return nil, false
}
