package service

import (
	"context"
	"time"

	"keyword-radar/pkg/analyzer"
)

// AnalysisService runs keyword analyses for the CLI and the HTTP API.
type AnalysisService interface {
	Analyze(ctx context.Context, lines []string, opts analyzer.Options) (*analyzer.Report, error)
	DefaultOptions() analyzer.Options
}

// HistoryService persists finished runs.
type HistoryService interface {
	SaveRun(ctx context.Context, report *analyzer.Report) error
	LoadRun(ctx context.Context, id string) (*analyzer.Report, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	CountRuns(ctx context.Context) (int, error)
}

// RunSummary is the list view of a stored run
type RunSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	StartedAt    time.Time `json:"started_at"`
	KeywordCount int       `json:"keyword_count"`
	ResultCount  int       `json:"result_count"`
	EasyCount    int       `json:"easy_count"`
}
