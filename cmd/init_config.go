package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/credscan/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
		}

		if err := config.SaveConfig(path, config.Default()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
