package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/credscan/internal/properties"
	"github.com/kamusis/credscan/internal/record"
	"github.com/kamusis/credscan/internal/report"
)

var cloakCmd = &cobra.Command{
	Use:   "cloak",
	Short: "Extract region-qualified database credentials from a properties file",
	Long: `Read a properties file using the mariadb.tds.* / dbURL naming conventions
and report every credential group it contains:

  mariadb.tds.db.URL.<REGION>        TDS Main
  mariadb.tds.slave.db.URL.<REGION>  TDS Slave
  dbURL                              Main Database (region SPARKDB)
  mariadb.ideal.slave.db.URL.SG      IDEAL Slave (region SG)`,
	Args: cobra.NoArgs,
	RunE: runCloak,
}

func init() {
	rootCmd.AddCommand(cloakCmd)

	cloakCmd.Flags().String("file", "files/cloak.properties", "Properties file to read")
	cloakCmd.Flags().String("out", "cloak_database_info.xlsx", "Spreadsheet to write")
	cloakCmd.Flags().String("sheet", "Databases", "Worksheet name")
	cloakCmd.Flags().Bool("dry-run", false, "Print the records without writing a spreadsheet")
}

func runCloak(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	file, err := requireFlag(cmd, "file")
	if err != nil {
		return err
	}

	m, err := properties.Load(file, rt.cfg.Encoding)
	if err != nil {
		return err
	}
	rt.log.Debug("parsed properties", zap.String("file", file), zap.Int("keys", m.Len()))

	records := properties.ExtractCredentials(m)
	for i := range records {
		records[i].File = file
	}

	rows := record.Reportables(records)
	if err := rt.console.Records(rows, record.KeyPatternRecord{}.Columns()); err != nil {
		return fmt.Errorf("failed to render records: %w", err)
	}
	rt.console.Summary(len(records), "credential groups")

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return nil
	}

	out, _ := cmd.Flags().GetString("out")
	sheet, _ := cmd.Flags().GetString("sheet")
	path := rt.outputPath(out)
	if err := report.WriteWorkbook(path, rows, report.WorkbookOptions{
		Sheet:   sheet,
		Columns: record.KeyPatternRecord{}.Columns(),
	}); err != nil {
		return err
	}
	rt.log.Info("report written", zap.String("path", path), zap.Int("rows", len(rows)))
	rt.console.Written(path)
	return nil
}
