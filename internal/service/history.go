package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/logger"
	"keyword-radar/pkg/storage"
)

const (
	runKeyPrefix  = "run/"
	runTimeLayout = "20060102T150405.000000000Z"
)

var csvHeader = []string{
	"run_id", "run_time", "title", "rank", "keyword",
	"monthly_search", "document_count", "saturation", "tier", "related",
}

// HistoryStore keeps run reports in a Storage and mirrors every saved run
// into an append-only CSV file when csvPath is set.
type HistoryStore struct {
	store    storage.Storage
	exporter *storage.DataExporter
	csvPath  string
	log      *logger.Logger
}

// NewHistoryStore creates a history store; csvPath may be empty
func NewHistoryStore(store storage.Storage, csvPath string) *HistoryStore {
	return &HistoryStore{
		store:    store,
		exporter: storage.NewDataExporter(),
		csvPath:  csvPath,
		log:      logger.GetLogger().WithField("component", "history"),
	}
}

func runKey(report *analyzer.Report) string {
	return runKeyPrefix + report.StartedAt.UTC().Format(runTimeLayout) + "/" + report.RunID
}

// SaveRun stores report. Empty runs are not recorded.
func (h *HistoryStore) SaveRun(ctx context.Context, report *analyzer.Report) error {
	if report == nil || report.NothingToAnalyze {
		return nil
	}
	if _, err := uuid.Parse(report.RunID); err != nil {
		return fmt.Errorf("invalid run id %q: %w", report.RunID, err)
	}

	if err := h.store.Save(ctx, runKey(report), report); err != nil {
		return fmt.Errorf("failed to save run %s: %w", report.RunID, err)
	}

	if h.csvPath != "" {
		if err := h.exporter.AppendCSV(h.csvPath, csvHeader, csvRows(report)); err != nil {
			return fmt.Errorf("failed to append run %s to csv: %w", report.RunID, err)
		}
	}

	h.log.WithFields(map[string]interface{}{
		"run_id":  report.RunID,
		"results": len(report.Results),
	}).Debug("Run saved")
	return nil
}

// LoadRun returns the stored report with the given id
func (h *HistoryStore) LoadRun(ctx context.Context, id string) (*analyzer.Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid run id %q", storage.ErrNotFound, id)
	}

	keys, err := h.store.Keys(ctx, runKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	for _, key := range keys {
		if strings.HasSuffix(key, "/"+id) {
			var report analyzer.Report
			if err := h.store.Load(ctx, key, &report); err != nil {
				return nil, err
			}
			return &report, nil
		}
	}
	return nil, fmt.Errorf("%w: run %s", storage.ErrNotFound, id)
}

// ListRuns returns up to limit runs, newest first. limit <= 0 lists all.
func (h *HistoryStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	keys, err := h.store.Keys(ctx, runKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	summaries := make([]RunSummary, 0, len(keys))
	for _, key := range keys {
		var report analyzer.Report
		if err := h.store.Load(ctx, key, &report); err != nil {
			h.log.WithError(err).WithField("key", key).Warn("Skipping unreadable run")
			continue
		}
		summaries = append(summaries, summarize(&report))
	}
	return summaries, nil
}

// CountRuns returns the number of stored runs
func (h *HistoryStore) CountRuns(ctx context.Context) (int, error) {
	keys, err := h.store.Keys(ctx, runKeyPrefix)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func summarize(report *analyzer.Report) RunSummary {
	easy := 0
	for _, r := range report.Results {
		if r.Tier == analyzer.TierEasy {
			easy++
		}
	}
	return RunSummary{
		ID:           report.RunID,
		Title:        report.Title,
		StartedAt:    report.StartedAt,
		KeywordCount: len(report.Keywords),
		ResultCount:  len(report.Results),
		EasyCount:    easy,
	}
}

func csvRows(report *analyzer.Report) [][]string {
	runTime := report.StartedAt.Format(time.RFC3339)
	rows := make([][]string, 0, len(report.Results))
	for i, r := range report.Results {
		related, _ := report.RelatedFor(r.Keyword)
		rows = append(rows, []string{
			report.RunID,
			runTime,
			report.Title,
			strconv.Itoa(i + 1),
			r.Keyword,
			strconv.Itoa(r.MonthlySearch),
			strconv.Itoa(r.DocumentCount),
			strconv.FormatFloat(r.Saturation, 'f', 2, 64),
			r.Tier.String(),
			strings.Join(related, " | "),
		})
	}
	return rows
}
