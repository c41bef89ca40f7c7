package probe

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

type funcProbe struct {
	name string
	run  func(ctx context.Context, r *report.Report)
}

func (p funcProbe) Name() string { return p.name }

func (p funcProbe) Run(ctx context.Context, r *report.Report) { p.run(ctx, r) }

func fixedCollector(probes ...Probe) *Collector {
	c := NewCollectorWithProbes(nil, probes...)
	c.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	c.newID = func() string { return "run-1" }
	return c
}

func TestCollect_EmptyProbeListStillHasTimestampAndPlatform(t *testing.T) {
	t.Parallel()
	r := fixedCollector().Collect(context.Background())

	assert.Equal(t, "2024-03-01T09:30:00Z", r.Timestamp)
	assert.Equal(t, "run-1", r.RunID)
	assert.NotEmpty(t, r.Platform.System)
	assert.NotEmpty(t, r.Platform.Go)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "timestamp")
	require.Contains(t, decoded, "platform")
	assert.IsType(t, map[string]any{}, decoded["platform"])
}

func TestCollect_PanickingProbeDoesNotStopOthers(t *testing.T) {
	t.Parallel()
	var ran []string
	c := fixedCollector(
		funcProbe{name: "boom", run: func(context.Context, *report.Report) {
			ran = append(ran, "boom")
			panic("probe exploded")
		}},
		funcProbe{name: "memory", run: func(_ context.Context, r *report.Report) {
			ran = append(ran, "memory")
			r.Memory.TotalGB = report.Float(16)
		}},
	)

	var r *report.Report
	require.NotPanics(t, func() { r = c.Collect(context.Background()) })
	assert.Equal(t, []string{"boom", "memory"}, ran)
	require.NotNil(t, r.Memory.TotalGB)
	assert.Equal(t, 16.0, *r.Memory.TotalGB)
}

func TestCollect_PanicDiscardsPartialWrites(t *testing.T) {
	t.Parallel()
	c := fixedCollector(
		funcProbe{name: "filesystem", run: func(_ context.Context, r *report.Report) {
			r.Filesystem["tmp"] = report.FilesystemPath{Path: "/tmp"}
		}},
		funcProbe{name: "half", run: func(_ context.Context, r *report.Report) {
			r.CPU.Model = "half-written"
			r.Memory.TotalGB = report.Float(64)
			r.Filesystem["home"] = report.FilesystemPath{Path: "/home/dev"}
			r.IOPerformance = &report.IOPerformance{TestSizeMB: 100}
			panic("lookup failed midway")
		}},
	)

	r := c.Collect(context.Background())

	assert.Empty(t, r.CPU.Model)
	assert.Nil(t, r.Memory.TotalGB)
	assert.Nil(t, r.IOPerformance)
	assert.Equal(t, map[string]report.FilesystemPath{"tmp": {Path: "/tmp"}}, r.Filesystem)
	assert.Equal(t, "run-1", r.RunID)
}

func TestCollect_NoopProbesLeaveSectionsEmpty(t *testing.T) {
	t.Parallel()
	noop := func(context.Context, *report.Report) {}
	r := fixedCollector(funcProbe{name: "cpu", run: noop}, funcProbe{name: "memory", run: noop}).
		Collect(context.Background())

	data, err := report.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]any{}, decoded["cpu"])
	assert.Equal(t, map[string]any{}, decoded["memory"])
	assert.Equal(t, map[string]any{}, decoded["filesystem"])
	assert.NotContains(t, decoded, "io_performance")
	assert.NotContains(t, decoded, "gpu")
}

func TestCollect_StopsWhenContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	var ran []string
	c := fixedCollector(
		funcProbe{name: "first", run: func(context.Context, *report.Report) {
			ran = append(ran, "first")
			cancel()
		}},
		funcProbe{name: "second", run: func(context.Context, *report.Report) {
			ran = append(ran, "second")
		}},
	)

	r := c.Collect(ctx)
	require.NotNil(t, r)
	assert.Equal(t, []string{"first"}, ran)
}

func TestDefaultProbes_RespectsOptions(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	assert.Equal(t, []string{"platform", "cpu", "memory", "filesystem", "gpu", "io"},
		NewCollector(nil, opts).Probes())

	opts.IO.Enabled = false
	opts.GPU.Enabled = false
	assert.Equal(t, []string{"platform", "cpu", "memory", "filesystem"},
		NewCollector(nil, opts).Probes())
}

func TestDefaultPaths(t *testing.T) {
	t.Parallel()
	paths := DefaultPaths()
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.Path)
	}
	assert.Contains(t, names, "current_dir")
	assert.Contains(t, names, "tmp")
}

func TestSystemName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"linux":   "Linux",
		"darwin":  "Darwin",
		"windows": "Windows",
		"freebsd": "FreeBSD",
		"plan9":   "Plan9",
		"":        "Unknown",
	}
	for in, want := range tests {
		assert.Equal(t, want, SystemName(in), "SystemName(%q)", in)
	}
}

func TestVirtualization(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", virtualization("", "guest"))
	assert.Equal(t, "kvm", virtualization("kvm", ""))
	assert.Equal(t, "docker (guest)", virtualization("docker", "guest"))
}
