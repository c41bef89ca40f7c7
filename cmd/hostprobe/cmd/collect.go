package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/config"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/probe"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

func (a *app) runCollect(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	logger := a.logger.WithCommand("collect")

	opts, err := probeOptions(a.cfg)
	if err != nil {
		return err
	}

	collector := a.newCollector(logger.Logger, opts)
	logger.Debug("collecting", "probes", collector.Probes())

	ctx := cmd.Context()
	r := collector.Collect(ctx)
	if ctx.Err() != nil {
		logger.Warn("collection interrupted, saving partial report")
	}

	out := cmd.OutOrStdout()
	if !a.cfg.Quiet {
		if err := report.RenderText(out, r, report.RenderOptions{Color: a.useColor(out)}); err != nil {
			logger.Warn("printing report failed", "error", err)
		}
	}

	name := report.FileName(reportTime(r, a.now), a.cfg.Output.Prefix)
	path, err := report.Write(a.cfg.Output.Dir, name, r)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	logger.Info("report saved", "path", path, "run_id", r.RunID)

	if a.cfg.Quiet {
		_, err = fmt.Fprintln(out, path)
	} else {
		err = report.RenderFooter(out, path)
	}
	if err != nil {
		logger.Warn("printing report path failed", "path", path, "error", err)
	}
	return nil
}

// probeOptions translates configuration into probe settings.
func probeOptions(cfg *config.Config) (probe.Options, error) {
	opts := probe.DefaultOptions()

	for _, name := range cfg.Filesystem.PathNames() {
		opts.Paths = append(opts.Paths, probe.NamedPath{Name: name, Path: cfg.Filesystem.Paths[name]})
	}

	opts.IO.Enabled = cfg.IO.Enabled
	opts.IO.Dir = cfg.IO.Dir
	opts.IO.FileName = cfg.IO.FileName
	if cfg.IO.Enabled {
		size, err := cfg.IO.SizeBytes()
		if err != nil {
			return opts, err
		}
		opts.IO.Size = size
	}

	opts.GPU.Enabled = cfg.GPU.Enabled
	if cfg.GPU.Enabled {
		timeout, err := cfg.GPU.TimeoutDuration()
		if err != nil {
			return opts, err
		}
		opts.GPU.Timeout = timeout
	}
	return opts, nil
}

// reportTime returns the collection time recorded in r so the file name
// matches the timestamp inside it.
func reportTime(r *report.Report, now func() time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, r.Timestamp); err == nil {
		return t
	}
	return now()
}
