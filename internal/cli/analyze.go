package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/storage"
)

const maxLineBytes = 1024 * 1024

var (
	analyzeOut       string
	analyzeJSON      bool
	analyzeThreshold float64
	analyzeTopK      int
	analyzeLimit     int
	analyzeMinVolume int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Analyze candidate phrases, one per line",
	Long: "Reads candidate phrases from a file, or from stdin when the file is omitted or \"-\",\n" +
		"and prints the keywords ranked by document count with their saturation and tier.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOut, "out", "o", "", "Write the full report as JSON to this path")
	f.BoolVar(&analyzeJSON, "json", false, "Print the report as JSON instead of a table")
	f.Float64Var(&analyzeThreshold, "threshold", 0, "Drop keywords whose saturation exceeds this value (0 disables)")
	f.IntVar(&analyzeTopK, "top-k", 0, "Fetch suggestions for the first K ranked keywords")
	f.IntVar(&analyzeLimit, "limit", 0, "Keep at most this many ranked keywords (0 keeps all)")
	f.IntVar(&analyzeMinVolume, "min-volume", 0, "Skip keywords below this monthly search volume")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	lines, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	_, rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := rt.Analysis.DefaultOptions()
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		opts.SaturationThreshold = analyzeThreshold
	}
	if flags.Changed("top-k") {
		opts.TopK = analyzeTopK
	}
	if flags.Changed("limit") {
		opts.Limit = analyzeLimit
	}
	if flags.Changed("min-volume") {
		opts.MinMonthlySearch = analyzeMinVolume
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := rt.Analysis.Analyze(ctx, lines, opts)
	if err != nil {
		return err
	}

	if analyzeOut != "" {
		if err := storage.NewDataExporter().WriteJSON(analyzeOut, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return printReport(cmd.OutOrStdout(), report, analyzeJSON)
}

func printReport(w io.Writer, report *analyzer.Report, asJSON bool) error {
	if asJSON {
		return writeJSON(w, report)
	}
	_, err := io.WriteString(w, formatReport(report))
	return err
}

// readInput returns the raw lines of the named file, or of stdin
func readInput(cmd *cobra.Command, args []string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}
	return readLines(r)
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
