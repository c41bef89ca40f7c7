package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

func newShowCmd(a *app) *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a saved report",
		Long: `Print a report previously saved by hostprobe.

Formats:
  text  the same layout hostprobe prints after collecting (default)
  json  the artifact as written
  yaml  the artifact converted to YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			logger := a.logger.WithCommand("show")

			r, err := report.Load(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded report", "path", args[0], "run_id", r.RunID)

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				return report.RenderText(out, r, report.RenderOptions{Color: a.useColor(out)})
			case "json":
				data, err := report.Marshal(r)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "yaml":
				return report.EncodeYAML(out, r)
			default:
				return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
			}
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return showCmd
}
