package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/credscan/internal/jdbcscan"
	"github.com/kamusis/credscan/internal/jdbcurl"
	"github.com/kamusis/credscan/internal/record"
	"github.com/kamusis/credscan/internal/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Collect jdbc.user / jdbc.URL pairs from every properties file in a tree",
	Long: `Walk a source tree, read every properties file and pair its jdbc.user lines
with its jdbc.URL lines by position. Files under deployment or build tooling
paths (see --exclude and the scan.denylist config) are left out of the report.

Files with unequal line counts are paired up to the shorter list and reported.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("dir", "", "Root directory to scan (required)")
	scanCmd.Flags().String("out", "jdbc-list.xlsx", "Spreadsheet to write")
	scanCmd.Flags().String("sheet", "Sheet1", "Worksheet name")
	scanCmd.Flags().StringSlice("exclude", nil, "Additional path substrings to exclude")
	scanCmd.Flags().Bool("dry-run", false, "Print the per-file summary without writing a spreadsheet")
}

func summarizeFiles(files []jdbcscan.FileGroup) []record.Reportable {
	out := make([]record.Reportable, 0, len(files))
	for _, f := range files {
		s := record.FileSummaryRecord{File: f.Path, Pairs: len(f.Pairs)}
		if len(f.Pairs) > 0 {
			url := jdbcurl.LineValue(f.Pairs[0].URL)
			s.Engine = jdbcurl.Engine(url)
			s.Endpoint = jdbcurl.Endpoint(url)
		}
		out = append(out, s)
	}
	return out
}

func runScan(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	dir, err := requireFlag(cmd, "dir")
	if err != nil {
		return err
	}

	scanner := jdbcscan.NewScanner(rt.log)
	scanner.Denylist = append([]string(nil), rt.cfg.Scan.Denylist...)
	if extra, _ := cmd.Flags().GetStringSlice("exclude"); len(extra) > 0 {
		scanner.Denylist = append(scanner.Denylist, extra...)
	}
	scanner.Extension = rt.cfg.Scan.Extension
	scanner.Encoding = rt.cfg.Scan.Encoding

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := scanner.Scan(ctx, dir)
	if err != nil {
		return err
	}

	if err := rt.console.Records(summarizeFiles(result.Files), record.FileSummaryRecord{}.Columns()); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	records := result.Records()
	rt.log.Info("scan finished",
		zap.String("dir", dir),
		zap.Int("scanned", result.Scanned),
		zap.Int("files", len(result.Files)),
		zap.Int("excluded", len(result.Excluded)),
		zap.Int("inconsistent", len(result.Inconsistent)),
		zap.Int("pairs", len(records)),
	)
	rt.console.Summary(len(records), "jdbc pairs")

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return nil
	}

	out, _ := cmd.Flags().GetString("out")
	sheet, _ := cmd.Flags().GetString("sheet")
	path := rt.outputPath(out)
	if err := report.WriteWorkbook(path, record.Reportables(records), report.WorkbookOptions{
		Sheet:         sheet,
		GroupBySource: true,
		Columns:       record.JDBCPairRecord{}.Columns(),
	}); err != nil {
		return err
	}
	rt.console.Written(path)
	return nil
}
