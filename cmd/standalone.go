package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/credscan/internal/datasource"
	"github.com/kamusis/credscan/internal/record"
	"github.com/kamusis/credscan/internal/report"
)

var standaloneCmd = &cobra.Command{
	Use:   "standalone",
	Short: "Extract datasource definitions from an application server descriptor",
	Long: `Read a standalone.xml style descriptor and report the JNDI name, username and
URL of every datasource and xa-datasource element that declares a jndi-name.

XA datasources take their URL from <xa-datasource-property name="URL">.
Values that cannot be found are reported as N/A.`,
	Args: cobra.NoArgs,
	RunE: runStandalone,
}

func init() {
	rootCmd.AddCommand(standaloneCmd)

	standaloneCmd.Flags().String("file", "files/standalone-eap8.xml", "Descriptor to read")
	standaloneCmd.Flags().String("out", "standalone_datasource_info.xlsx", "Spreadsheet to write")
	standaloneCmd.Flags().String("sheet", "Datasources", "Worksheet name")
	standaloneCmd.Flags().StringSlice("expect", nil, "JNDI names that must be present (overrides config)")
	standaloneCmd.Flags().Bool("strict", false, "Fail when an expected JNDI name is missing")
	standaloneCmd.Flags().Bool("dry-run", false, "Print the records without writing a spreadsheet")
}

func runStandalone(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	file, err := requireFlag(cmd, "file")
	if err != nil {
		return err
	}

	root, err := datasource.ParseFile(file)
	if err != nil {
		return err
	}

	records := datasource.Extract(root)
	for i := range records {
		records[i].File = file
	}
	rt.log.Debug("extracted datasources", zap.String("file", file), zap.Int("count", len(records)))

	expected := rt.cfg.ExpectedJNDINames
	if cmd.Flags().Changed("expect") {
		expected, _ = cmd.Flags().GetStringSlice("expect")
	}
	strict, _ := cmd.Flags().GetBool("strict")

	if len(records) == 0 {
		rt.console.Summary(0, "datasource configurations")
		if strict && len(expected) > 0 {
			return missingError(expected)
		}
		return nil
	}

	rows := record.Reportables(records)
	if err := rt.console.Records(rows, nil); err != nil {
		return fmt.Errorf("failed to render records: %w", err)
	}

	missing := rt.console.Verify(records, expected)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); !dryRun {
		out, _ := cmd.Flags().GetString("out")
		sheet, _ := cmd.Flags().GetString("sheet")
		path := rt.outputPath(out)
		if err := report.WriteWorkbook(path, rows, report.WorkbookOptions{Sheet: sheet}); err != nil {
			return err
		}
		rt.log.Info("report written", zap.String("path", path), zap.Int("rows", len(rows)))
		rt.console.Written(path)
	}

	rt.console.Summary(len(records), "datasource configurations")

	if strict && len(missing) > 0 {
		return missingError(missing)
	}
	return nil
}

func missingError(missing []string) error {
	return fmt.Errorf("%d expected datasource(s) not found: %v", len(missing), missing)
}
