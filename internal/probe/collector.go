package probe

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

// Probe fills one part of a report. Implementations must not return errors;
// anything that fails is simply left out of the report.
type Probe interface {
	Name() string
	Run(ctx context.Context, r *report.Report)
}

// Collector runs probes in order and merges their output into one report.
type Collector struct {
	logger *slog.Logger
	probes []Probe
	now    func() time.Time
	newID  func() string
}

// NewCollector creates a collector with the standard probe sequence.
func NewCollector(logger *slog.Logger, opts Options) *Collector {
	logger = orDiscard(logger)
	return NewCollectorWithProbes(logger, DefaultProbes(logger, opts)...)
}

// NewCollectorWithProbes creates a collector running exactly the given probes.
func NewCollectorWithProbes(logger *slog.Logger, probes ...Probe) *Collector {
	return &Collector{
		logger: orDiscard(logger),
		probes: probes,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// DefaultProbes returns the probe sequence for opts.
func DefaultProbes(logger *slog.Logger, opts Options) []Probe {
	logger = orDiscard(logger)
	probes := []Probe{
		&platformProbe{logger: logger},
		&cpuProbe{logger: logger},
		newMemoryProbe(logger),
		newFilesystemProbe(logger, opts.Paths),
	}
	if opts.GPU.Enabled {
		probes = append(probes, &gpuProbe{logger: logger, timeout: opts.GPU.Timeout})
	}
	if opts.IO.Enabled {
		probes = append(probes, newIOProbe(logger, opts.IO))
	}
	return probes
}

// Probes returns the names of the configured probes in run order.
func (c *Collector) Probes() []string {
	names := make([]string, 0, len(c.probes))
	for _, p := range c.probes {
		names = append(names, p.Name())
	}
	return names
}

// Collect runs every probe and returns the merged report.
// It stops early, returning what was gathered so far, if ctx is cancelled.
func (c *Collector) Collect(ctx context.Context) *report.Report {
	r := report.New(c.now(), c.newID())
	r.Platform = basePlatform()

	for _, p := range c.probes {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("collection interrupted", "next_probe", p.Name(), "error", err)
			break
		}
		c.run(ctx, p, r)
	}
	return r
}

// run executes p against a copy of r and merges the copy back only when p
// returns normally, so a panicking probe contributes no fields.
func (c *Collector) run(ctx context.Context, p Probe, r *report.Report) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Warn("probe panicked", "probe", p.Name(), "panic", rec)
		}
	}()

	scratch := r.Clone()
	p.Run(ctx, scratch)
	*r = *scratch
	c.logger.Debug("probe finished", "probe", p.Name(), "duration", time.Since(start))
}

func basePlatform() report.Platform {
	return report.Platform{
		System: SystemName(runtime.GOOS),
		Go:     runtime.Version(),
	}
}

// SystemName returns the conventional display name for a GOOS value.
func SystemName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
