package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/credscan/internal/config"
	"github.com/kamusis/credscan/internal/logger"
	"github.com/kamusis/credscan/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "credscan",
	Short: "credscan collects database credentials from configuration files",
	Long: `Extract datasource URLs, usernames and passwords from properties files
and application server descriptors, and report them as spreadsheets for audit.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String(
		"config", "",
		"Path to the config file (default: ~/.credscan/config.yaml)",
	)

	// Output configuration (global)
	rootCmd.PersistentFlags().Bool(
		"plain", false,
		"Use plain ASCII output instead of Unicode box-drawing characters and check marks.",
	)
	rootCmd.PersistentFlags().String(
		"color", "",
		"Colorize console output: auto, always, never.",
	)
	rootCmd.PersistentFlags().String(
		"format", "",
		"Console format: table, csv, tsv, yaml.",
	)
	rootCmd.PersistentFlags().String(
		"log-level", "",
		"Diagnostic log level: debug, info, warn, error.",
	)
}

// runtime is the per-invocation state shared by the extraction commands.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	console *report.Console
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("plain") {
		cfg.Output.Plain, _ = cmd.Flags().GetBool("plain")
	}
	if v, _ := cmd.Flags().GetString("color"); v != "" {
		cfg.Output.Color = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Output.Format = report.NormalizeFormat(v)
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}

	console := report.NewConsole(cmd.OutOrStdout(), cfg.Output.Plain)
	console.Format = cfg.Output.Format
	switch cfg.Output.Color {
	case "always":
		console.Color = true
	case "never":
		console.Color = false
	}

	log, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		Color:    console.Color,
	})
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, console: console}, nil
}

// outputPath places a bare file name in the configured output directory.
func (rt *runtime) outputPath(name string) string {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(rt.cfg.Output.Dir, name)
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return "", fmt.Errorf("required flag \"%s\" not set", name)
	}
	return v, nil
}
