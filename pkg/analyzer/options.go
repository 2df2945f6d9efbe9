package analyzer

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions is wrapped by every contract violation of New and Analyze.
var ErrInvalidOptions = errors.New("invalid analyzer options")

const (
	DefaultBatchSize           = 5
	DefaultSaturationThreshold = 1.0
	DefaultTopK                = 10
	DefaultMaxSuggestions      = 5
	DefaultDocumentWorkers     = 1
)

// Options tunes one analyzer. Zero values of the optional filters disable them.
type Options struct {
	// BatchSize is the number of keywords per volume lookup.
	BatchSize int `json:"batch_size"`
	// SaturationThreshold keeps results with Saturation <= threshold; 0 keeps all.
	SaturationThreshold float64 `json:"saturation_threshold"`
	// MinMonthlySearch drops keywords below this volume before document lookups.
	MinMonthlySearch int `json:"min_monthly_search"`
	// Limit truncates the ranked list; 0 keeps all.
	Limit int `json:"limit"`
	// TopK is the number of ranked results enriched with suggestions; 0 skips enrichment.
	TopK int `json:"top_k"`
	// MaxSuggestions caps the terms kept per enriched keyword.
	MaxSuggestions int `json:"max_suggestions"`
	// DocumentWorkers bounds concurrent document-count lookups.
	DocumentWorkers int `json:"document_workers"`
}

// DefaultOptions mirrors a manual run: no limit, threshold 1.0, top 10 enriched
func DefaultOptions() Options {
	return Options{
		BatchSize:           DefaultBatchSize,
		SaturationThreshold: DefaultSaturationThreshold,
		TopK:                DefaultTopK,
		MaxSuggestions:      DefaultMaxSuggestions,
		DocumentWorkers:     DefaultDocumentWorkers,
	}
}

// Validate reports the first contract violation
func (o Options) Validate() error {
	switch {
	case o.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidOptions, o.BatchSize)
	case math.IsNaN(o.SaturationThreshold) || o.SaturationThreshold < 0:
		return fmt.Errorf("%w: saturation threshold must be >= 0, got %v", ErrInvalidOptions, o.SaturationThreshold)
	case o.MinMonthlySearch < 0:
		return fmt.Errorf("%w: min monthly search must be >= 0, got %d", ErrInvalidOptions, o.MinMonthlySearch)
	case o.Limit < 0:
		return fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidOptions, o.Limit)
	case o.TopK < 0:
		return fmt.Errorf("%w: top-k must be >= 0, got %d", ErrInvalidOptions, o.TopK)
	case o.MaxSuggestions < 0:
		return fmt.Errorf("%w: max suggestions must be >= 0, got %d", ErrInvalidOptions, o.MaxSuggestions)
	case o.DocumentWorkers < 0:
		return fmt.Errorf("%w: document workers must be >= 0, got %d", ErrInvalidOptions, o.DocumentWorkers)
	}
	return nil
}

func (o Options) workers() int {
	if o.DocumentWorkers < 1 {
		return 1
	}
	return o.DocumentWorkers
}
