package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-radar/internal/service"
	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/storage"
)

type stubAnalysis struct {
	lastLines []string
	lastOpts  analyzer.Options
	report    *analyzer.Report
}

func (s *stubAnalysis) Analyze(_ context.Context, lines []string, opts analyzer.Options) (*analyzer.Report, error) {
	s.lastLines = lines
	s.lastOpts = opts
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.report, nil
}

func (s *stubAnalysis) DefaultOptions() analyzer.Options {
	return analyzer.DefaultOptions()
}

func newTestApp(t *testing.T) (*stubAnalysis, *service.HistoryStore, *Controller) {
	t.Helper()
	report := &analyzer.Report{
		RunID:     uuid.NewString(),
		Title:     "삼성전자",
		StartedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Keywords:  []string{"삼성전자"},
		Results:   []analyzer.KeywordResult{analyzer.Score("삼성전자", 5, 3)},
	}
	stub := &stubAnalysis{report: report}
	history := service.NewHistoryStore(storage.NewMemoryStorage(), "")
	return stub, history, NewController(stub, history, ControllerConfig{AnalyzeTimeout: time.Minute})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestController_Analyze(t *testing.T) {
	stub, _, c := newTestApp(t)
	app := c.App()

	body := `{"sentences":["1 삼성전자","daum"],"text":"아파트 청약\n2024년 결산","top_k":3,"saturation_threshold":0.5}`
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	env := decode(t, resp.Body)
	assert.True(t, env.Success)

	var report analyzer.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, stub.report.RunID, report.RunID)
	assert.Equal(t, 0.6, report.Results[0].Saturation)

	assert.Equal(t, []string{"1 삼성전자", "daum", "아파트 청약", "2024년 결산"}, stub.lastLines)
	assert.Equal(t, 3, stub.lastOpts.TopK)
	assert.Equal(t, 0.5, stub.lastOpts.SaturationThreshold)
	assert.Equal(t, analyzer.DefaultBatchSize, stub.lastOpts.BatchSize)
}

func TestController_AnalyzeRejectsBadInput(t *testing.T) {
	_, _, c := newTestApp(t)
	app := c.App()

	cases := map[string]string{
		"malformed json": `{"sentences":`,
		"negative top k": `{"sentences":["삼성전자"],"top_k":-1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)

			env := decode(t, resp.Body)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestController_History(t *testing.T) {
	stub, history, c := newTestApp(t)
	app := c.App()
	require.NoError(t, history.SaveRun(context.Background(), stub.report))

	resp, err := app.Test(httptest.NewRequest("GET", "/history?limit=5", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var runs []service.RunSummary
	require.NoError(t, json.Unmarshal(decode(t, resp.Body).Data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, stub.report.RunID, runs[0].ID)
	assert.Equal(t, 1, runs[0].EasyCount)

	resp, err = app.Test(httptest.NewRequest("GET", "/history/"+stub.report.RunID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/history/"+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/history?limit=0", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestController_HealthAndMetrics(t *testing.T) {
	_, _, c := newTestApp(t)
	app := c.App()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(decode(t, resp.Body).Data, &status))
	assert.Equal(t, "ok", status.Status)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestController_HistoryDisabled(t *testing.T) {
	stub := &stubAnalysis{}
	app := NewController(stub, nil, ControllerConfig{}).App()

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}
