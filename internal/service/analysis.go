package service

import (
	"context"

	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/logger"
)

// KeywordService runs the analyzer and records every non-empty run.
type KeywordService struct {
	analyzer *analyzer.Analyzer
	history  HistoryService
	log      *logger.Logger
}

// NewKeywordService creates the service; history may be nil
func NewKeywordService(a *analyzer.Analyzer, history HistoryService) *KeywordService {
	return &KeywordService{
		analyzer: a,
		history:  history,
		log:      logger.GetLogger().WithField("component", "keyword_service"),
	}
}

// Analyze runs one analysis. A history failure is logged and does not fail
// the run.
func (s *KeywordService) Analyze(ctx context.Context, lines []string, opts analyzer.Options) (*analyzer.Report, error) {
	report, err := s.analyzer.AnalyzeWith(ctx, lines, opts)
	if err != nil {
		return nil, err
	}

	if s.history != nil && !report.NothingToAnalyze {
		if err := s.history.SaveRun(context.WithoutCancel(ctx), report); err != nil {
			s.log.WithError(err).WithField("run_id", report.RunID).Error("Failed to record run history")
		}
	}
	return report, nil
}

// DefaultOptions returns the configured analysis options
func (s *KeywordService) DefaultOptions() analyzer.Options {
	return s.analyzer.Options()
}
