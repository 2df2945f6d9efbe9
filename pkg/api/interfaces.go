package api

import "context"

// VolumeSource returns monthly search volumes for one batch of keywords.
// Keys of the returned map are provider labels with spaces removed; labels
// whose total volume is zero are absent. The map may contain related labels
// that were not requested.
type VolumeSource interface {
	LookupVolumes(ctx context.Context, batch []string) (map[string]int, error)
}

// DocumentCountSource returns the approximate number of existing content
// documents for a keyword.
type DocumentCountSource interface {
	LookupDocumentCount(ctx context.Context, keyword string) (int, error)
}

// SuggestionSource returns related/autocomplete terms for a keyword in
// provider order.
type SuggestionSource interface {
	LookupSuggestions(ctx context.Context, keyword string) ([]string, error)
}

// Pacer spaces outbound calls. Wait blocks until the next call may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Source names used in errors, logs and metrics.
const (
	SourceVolume     = "volume"
	SourceDocuments  = "documents"
	SourceSuggestion = "suggestions"
)
