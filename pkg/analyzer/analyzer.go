package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"

	"keyword-radar/pkg/api"
	"keyword-radar/pkg/logger"
	"keyword-radar/pkg/metrics"
	"keyword-radar/pkg/normalizer"
	"keyword-radar/pkg/utils"
)

const defaultRunTitle = "keyword analysis"

// Sources bundles the lookup adapters and the pacers spacing their calls.
// Nil pacers never wait.
type Sources struct {
	Volume          api.VolumeSource
	Documents       api.DocumentCountSource
	Suggestions     api.SuggestionSource
	VolumePacer     api.Pacer
	DocumentPacer   api.Pacer
	SuggestionPacer api.Pacer
}

// Analyzer runs the normalize, lookup, score, rank and enrich pipeline.
type Analyzer struct {
	sources    Sources
	opts       Options
	normalizer normalizer.KeywordNormalizer
	log        *logger.Logger
	now        func() time.Time
}

// New validates sources and options. Suggestions may be nil only when
// TopK is 0.
func New(sources Sources, opts Options) (*Analyzer, error) {
	if sources.Volume == nil {
		return nil, fmt.Errorf("%w: volume source is required", ErrInvalidOptions)
	}
	if sources.Documents == nil {
		return nil, fmt.Errorf("%w: document count source is required", ErrInvalidOptions)
	}
	if sources.Suggestions == nil && opts.TopK > 0 {
		return nil, fmt.Errorf("%w: suggestion source is required when top-k is %d", ErrInvalidOptions, opts.TopK)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if sources.VolumePacer == nil {
		sources.VolumePacer = api.NoopPacer{}
	}
	if sources.DocumentPacer == nil {
		sources.DocumentPacer = api.NoopPacer{}
	}
	if sources.SuggestionPacer == nil {
		sources.SuggestionPacer = api.NoopPacer{}
	}

	return &Analyzer{
		sources:    sources,
		opts:       opts,
		normalizer: normalizer.New(),
		log:        logger.GetLogger().WithField("component", "analyzer"),
		now:        time.Now,
	}, nil
}

// Options returns the options the analyzer was built with
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze runs the pipeline with the analyzer's options.
func (a *Analyzer) Analyze(ctx context.Context, lines []string) (*Report, error) {
	return a.AnalyzeWith(ctx, lines, a.opts)
}

// AnalyzeWith runs the pipeline with per-call options. Lookup failures never
// fail the run; they degrade to zero counts and empty suggestions.
func (a *Analyzer) AnalyzeWith(ctx context.Context, lines []string, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.TopK > 0 && a.sources.Suggestions == nil {
		return nil, fmt.Errorf("%w: suggestion source is required when top-k is %d", ErrInvalidOptions, opts.TopK)
	}

	started := a.now()
	report := &Report{
		RunID:     uuid.NewString(),
		Title:     defaultRunTitle,
		StartedAt: started,
		Keywords:  []string{},
		Results:   []KeywordResult{},
	}

	keywords := normalizer.Strings(a.normalizer.Normalize(lines))
	report.Keywords = keywords
	if len(keywords) == 0 {
		report.NothingToAnalyze = true
		report.Duration = a.now().Sub(started)
		a.log.WithField("lines", len(lines)).Info("Nothing to analyze after normalization")
		metrics.RecordRun("empty", report.Duration.Seconds())
		return report, nil
	}

	a.log.WithFields(map[string]interface{}{
		"run_id":   report.RunID,
		"lines":    len(lines),
		"keywords": len(keywords),
	}).Info("Starting keyword analysis")

	provider := a.lookupVolumes(ctx, keywords, opts.BatchSize, &report.Stats)
	volumes := MergeVolumes(keywords, provider)

	candidates := make([]KeywordResult, 0, len(keywords))
	for i, kw := range keywords {
		if volumes[i] < opts.MinMonthlySearch {
			continue
		}
		candidates = append(candidates, KeywordResult{Keyword: kw, MonthlySearch: volumes[i]})
	}

	counts := a.lookupDocumentCounts(ctx, candidates, opts.workers(), &report.Stats)

	results := make([]KeywordResult, len(candidates))
	for i, c := range candidates {
		results[i] = Score(c.Keyword, c.MonthlySearch, counts[i])
		metrics.RecordTier(results[i].Tier.String())
	}

	ranked := Rank(results)
	if opts.SaturationThreshold > 0 {
		ranked = FilterBySaturation(ranked, opts.SaturationThreshold)
	}
	ranked = Limit(ranked, opts.Limit)
	report.Results = ranked

	if opts.TopK > 0 && len(ranked) > 0 {
		report.Related = a.enrich(ctx, ranked, opts.TopK, opts.MaxSuggestions, &report.Stats)
	}

	report.Title = utils.RunTitle(keywords, defaultRunTitle)
	report.Duration = a.now().Sub(started)

	a.log.WithFields(map[string]interface{}{
		"run_id":            report.RunID,
		"scored":            len(results),
		"kept":              len(ranked),
		"volume_failures":   report.Stats.VolumeFailures,
		"document_failures": report.Stats.DocumentFailures,
		"duration":          report.Duration.String(),
	}).Info("Keyword analysis completed")
	metrics.RecordRun("ok", report.Duration.Seconds())

	return report, nil
}

// Enrich looks up suggestions for the first k ranked results using the
// analyzer's suggestion limit.
func (a *Analyzer) Enrich(ctx context.Context, ranked []KeywordResult, k int) ([]RelatedTerms, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: top-k must be >= 0, got %d", ErrInvalidOptions, k)
	}
	if a.sources.Suggestions == nil {
		return nil, fmt.Errorf("%w: no suggestion source configured", ErrInvalidOptions)
	}
	var stats LookupStats
	return a.enrich(ctx, ranked, k, a.opts.MaxSuggestions, &stats), nil
}

// lookupVolumes queries sequential, paced batches and unions the results.
// A label returned by several batches keeps the value of the last one.
func (a *Analyzer) lookupVolumes(ctx context.Context, keywords []string, batchSize int, stats *LookupStats) map[string]int {
	provider := make(map[string]int)

	for start := 0; start < len(keywords); start += batchSize {
		end := start + batchSize
		if end > len(keywords) {
			end = len(keywords)
		}
		batch := keywords[start:end]

		var found map[string]int
		err := a.sources.VolumePacer.Wait(ctx)
		if err == nil {
			stats.VolumeBatches++
			found, err = a.sources.Volume.LookupVolumes(ctx, batch)
		}
		if err != nil {
			stats.VolumeFailures++
		}
		for label, v := range a.collapseVolume(batch, found, err) {
			provider[label] = v
		}
	}

	return provider
}

// lookupDocumentCounts returns one count per candidate, in candidate order.
func (a *Analyzer) lookupDocumentCounts(ctx context.Context, candidates []KeywordResult, workers int, stats *LookupStats) []int {
	counts := make([]int, len(candidates))
	if len(candidates) == 0 {
		return counts
	}

	progress := logger.NewProgressReporter(len(candidates), "Document count lookups")

	type outcome struct {
		count  int
		failed bool
	}

	lookup := func(c *KeywordResult) outcome {
		defer progress.Update(1)

		if err := a.sources.DocumentPacer.Wait(ctx); err != nil {
			return outcome{count: a.collapseCount(c.Keyword, 0, err), failed: true}
		}
		n, err := a.sources.Documents.LookupDocumentCount(ctx, c.Keyword)
		return outcome{count: a.collapseCount(c.Keyword, n, err), failed: err != nil}
	}

	var outcomes []outcome
	if workers <= 1 {
		outcomes = make([]outcome, len(candidates))
		for i := range candidates {
			outcomes[i] = lookup(&candidates[i])
		}
	} else {
		mapper := iter.Mapper[KeywordResult, outcome]{MaxGoroutines: workers}
		outcomes = mapper.Map(candidates, lookup)
	}
	progress.Complete()

	for i, o := range outcomes {
		counts[i] = o.count
		stats.DocumentLookups++
		if o.failed {
			stats.DocumentFailures++
		}
	}
	return counts
}

func (a *Analyzer) enrich(ctx context.Context, ranked []KeywordResult, k, maxTerms int, stats *LookupStats) []RelatedTerms {
	if k <= 0 {
		return []RelatedTerms{}
	}
	head := Limit(ranked, k)

	related := make([]RelatedTerms, 0, len(head))
	for _, r := range head {
		var terms []string
		var err error
		if err = a.sources.SuggestionPacer.Wait(ctx); err == nil {
			stats.SuggestionLookups++
			terms, err = a.sources.Suggestions.LookupSuggestions(ctx, r.Keyword)
		}
		if err != nil {
			stats.SuggestionFailures++
		}
		related = append(related, RelatedTerms{
			Keyword: r.Keyword,
			Terms:   a.collapseSuggestions(r.Keyword, terms, maxTerms, err),
		})
	}
	return related
}
