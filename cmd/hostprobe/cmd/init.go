package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/config"
)

func newInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write .hostprobe.yaml with the built-in defaults to the current directory.
hostprobe picks it up automatically on the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			path := filepath.Join(cwd, config.ProjectConfigFile)
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration file:", path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return initCmd
}
