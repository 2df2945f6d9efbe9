package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"keyword-radar/internal/service"
	"keyword-radar/pkg/analyzer"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGray  = "\033[90m"
)

var printer = message.NewPrinter(language.Korean)

type column struct {
	title string
	right bool
}

var reportColumns = []column{
	{title: "#", right: true},
	{title: "키워드"},
	{title: "월간 검색량", right: true},
	{title: "문서 수", right: true},
	{title: "포화도", right: true},
	{title: "난이도"},
}

// formatReport renders a report as a table followed by the related terms.
//
//	캠핑의자, 감성캠핑 (3개 분석 / 2개 선정) │ 1.2s
//	 #  키워드     월간 검색량  문서 수  포화도  난이도
//	 1  캠핑의자       12,300      850    0.07  🟢 쉬움
func formatReport(report *analyzer.Report) string {
	var sb strings.Builder

	if report.NothingToAnalyze {
		sb.WriteString("분석할 키워드가 없습니다.\n")
		return sb.String()
	}

	sb.WriteString(printer.Sprintf("%s%s%s (%d개 분석 / %d개 선정) │ %s\n",
		colorBold, report.Title, colorReset,
		len(report.Keywords), len(report.Results), report.Duration.Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("%srun %s%s\n", colorGray, report.RunID, colorReset))

	rows := make([][]string, 0, len(report.Results))
	for i, r := range report.Results {
		rows = append(rows, []string{
			printer.Sprintf("%d", i+1),
			r.Keyword,
			printer.Sprintf("%d", r.MonthlySearch),
			printer.Sprintf("%d", r.DocumentCount),
			printer.Sprintf("%.2f", r.Saturation),
			r.Tier.Label(),
		})
	}
	sb.WriteString(formatTable(reportColumns, rows))

	if failures := formatFailures(report.Stats); failures != "" {
		sb.WriteString(fmt.Sprintf("%s%s%s\n", colorGray, failures, colorReset))
	}

	for _, related := range report.Related {
		if len(related.Terms) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s%s%s 연관 검색어: %s\n",
			colorBold, related.Keyword, colorReset, strings.Join(related.Terms, ", ")))
	}

	return sb.String()
}

var runColumns = []column{
	{title: "ID"},
	{title: "시작"},
	{title: "제목"},
	{title: "키워드", right: true},
	{title: "선정", right: true},
	{title: "쉬움", right: true},
}

func formatRuns(runs []service.RunSummary) string {
	if len(runs) == 0 {
		return "기록된 분석이 없습니다.\n"
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Title,
			printer.Sprintf("%d", run.KeywordCount),
			printer.Sprintf("%d", run.ResultCount),
			printer.Sprintf("%d", run.EasyCount),
		})
	}
	return formatTable(runColumns, rows)
}

func formatFailures(stats analyzer.LookupStats) string {
	var parts []string
	if stats.VolumeFailures > 0 {
		parts = append(parts, fmt.Sprintf("검색량 조회 실패 %d/%d", stats.VolumeFailures, stats.VolumeBatches))
	}
	if stats.DocumentFailures > 0 {
		parts = append(parts, fmt.Sprintf("문서 수 조회 실패 %d/%d", stats.DocumentFailures, stats.DocumentLookups))
	}
	if stats.SuggestionFailures > 0 {
		parts = append(parts, fmt.Sprintf("연관 검색어 조회 실패 %d/%d", stats.SuggestionFailures, stats.SuggestionLookups))
	}
	return strings.Join(parts, " │ ")
}

// formatTable pads cells by display width so Hangul and emoji columns line up.
func formatTable(columns []column, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			switch {
			case columns[i].right:
				sb.WriteString(runewidth.FillLeft(cell, widths[i]))
			case i == len(cells)-1:
				sb.WriteString(cell)
			default:
				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.title
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
