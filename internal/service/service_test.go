package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/storage"
)

type staticVolume map[string]int

func (s staticVolume) LookupVolumes(_ context.Context, batch []string) (map[string]int, error) {
	out := map[string]int{}
	for _, kw := range batch {
		if v, ok := s[kw]; ok {
			out[kw] = v
		}
	}
	return out, nil
}

type staticDocuments map[string]int

func (s staticDocuments) LookupDocumentCount(_ context.Context, keyword string) (int, error) {
	return s[keyword], nil
}

type staticSuggestions map[string][]string

func (s staticSuggestions) LookupSuggestions(_ context.Context, keyword string) ([]string, error) {
	return s[keyword], nil
}

type failingHistory struct{ calls int }

func (f *failingHistory) SaveRun(context.Context, *analyzer.Report) error {
	f.calls++
	return errors.New("disk full")
}
func (f *failingHistory) LoadRun(context.Context, string) (*analyzer.Report, error) {
	return nil, storage.ErrNotFound
}
func (f *failingHistory) ListRuns(context.Context, int) ([]RunSummary, error) { return nil, nil }
func (f *failingHistory) CountRuns(context.Context) (int, error)               { return 0, nil }

func newTestAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	a, err := analyzer.New(analyzer.Sources{
		Volume:      staticVolume{"삼성전자": 5, "아파트청약": 2000},
		Documents:   staticDocuments{"삼성전자": 3, "아파트청약": 1500},
		Suggestions: staticSuggestions{"삼성전자": {"삼성전자 주가", "삼성전자 배당"}},
	}, analyzer.DefaultOptions())
	require.NoError(t, err)
	return a
}

func sampleReport(started time.Time, keywords ...string) *analyzer.Report {
	results := make([]analyzer.KeywordResult, len(keywords))
	for i, kw := range keywords {
		results[i] = analyzer.Score(kw, 100, (i+1)*600)
	}
	return &analyzer.Report{
		RunID:     uuid.NewString(),
		Title:     strings.Join(keywords, ", "),
		StartedAt: started,
		Keywords:  keywords,
		Results:   results,
		Related:   []analyzer.RelatedTerms{{Keyword: keywords[0], Terms: []string{"a", "b"}}},
	}
}

func TestHistoryStore_SaveListLoad(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryStore(storage.NewMemoryStorage(), "")

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	first := sampleReport(base, "가가", "나나")
	second := sampleReport(base.Add(time.Hour), "다다")
	require.NoError(t, h.SaveRun(ctx, first))
	require.NoError(t, h.SaveRun(ctx, second))

	runs, err := h.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].ID, "newest first")
	assert.Equal(t, 2, runs[1].ResultCount)
	assert.Equal(t, 1, runs[1].EasyCount)

	runs, err = h.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	loaded, err := h.LoadRun(ctx, first.RunID)
	require.NoError(t, err)
	assert.Equal(t, first.Results, loaded.Results)
	assert.Equal(t, first.Related, loaded.Related)

	n, err := h.CountRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHistoryStore_LoadMissing(t *testing.T) {
	h := NewHistoryStore(storage.NewMemoryStorage(), "")

	_, err := h.LoadRun(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = h.LoadRun(context.Background(), "../../etc")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHistoryStore_SkipsEmptyRuns(t *testing.T) {
	h := NewHistoryStore(storage.NewMemoryStorage(), "")

	require.NoError(t, h.SaveRun(context.Background(), &analyzer.Report{NothingToAnalyze: true}))
	n, err := h.CountRuns(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHistoryStore_AppendsCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "history.csv")
	h := NewHistoryStore(storage.NewMemoryStorage(), csvPath)

	report := sampleReport(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), "가가", "나나")
	require.NoError(t, h.SaveRun(context.Background(), report))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff")), "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "run_id,run_time,title,rank,keyword"))
	assert.Contains(t, lines[1], ",1,가가,100,600,6.00,Easy,a | b")
	assert.Contains(t, lines[2], ",2,나나,100,1200,12.00,moderate,")
}

func TestKeywordService_AnalyzeRecordsHistory(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryStore(storage.NewMemoryStorage(), "")
	svc := NewKeywordService(newTestAnalyzer(t), history)

	report, err := svc.Analyze(ctx, []string{"1 삼성전자", "아파트청약"}, svc.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "삼성전자", report.Results[0].Keyword)

	loaded, err := history.LoadRun(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, report.Title, loaded.Title)
}

func TestKeywordService_HistoryFailureDoesNotFailRun(t *testing.T) {
	history := &failingHistory{}
	svc := NewKeywordService(newTestAnalyzer(t), history)

	report, err := svc.Analyze(context.Background(), []string{"삼성전자"}, svc.DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, report.Results, 1)
	assert.Equal(t, 1, history.calls)

	empty, err := svc.Analyze(context.Background(), []string{"123"}, svc.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, empty.NothingToAnalyze)
	assert.Equal(t, 1, history.calls)
}

func TestKeywordService_RejectsInvalidOptions(t *testing.T) {
	svc := NewKeywordService(newTestAnalyzer(t), nil)

	opts := svc.DefaultOptions()
	opts.BatchSize = 0
	_, err := svc.Analyze(context.Background(), []string{"삼성전자"}, opts)
	assert.ErrorIs(t, err, analyzer.ErrInvalidOptions)
}
