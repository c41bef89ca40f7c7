package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/probe"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

// stubProbe fills the report with fixed values.
type stubProbe struct{}

func (stubProbe) Name() string { return "stub" }

func (stubProbe) Run(_ context.Context, r *report.Report) {
	r.Platform.Release = "6.1.0-test"
	r.CPU.Processor = "GenuineIntel"
	r.CPU.Architecture = "x86_64"
	r.CPU.LogicalCPUs = 8
	r.Memory.TotalGB = report.Float(31.25)
	r.Filesystem["tmp"] = report.FilesystemPath{Path: "/tmp", Type: "tmpfs (RAM)"}
}

// isolate points HOME and the working directory at empty temp dirs so no
// real configuration leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	return dir
}

// testApp returns an app whose collector runs only stubProbe and records the
// options it was built with.
func testApp(captured *probe.Options) *app {
	a := newApp()
	a.newCollector = func(logger *slog.Logger, opts probe.Options) *probe.Collector {
		if captured != nil {
			*captured = opts
		}
		return probe.NewCollectorWithProbes(logger, stubProbe{})
	}
	return a
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
