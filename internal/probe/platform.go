package probe

import (
	"context"
	"log/slog"
	"os"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

type platformProbe struct {
	logger *slog.Logger
}

func (p *platformProbe) Name() string { return "platform" }

func (p *platformProbe) Run(ctx context.Context, r *report.Report) {
	pl := &r.Platform

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		p.logger.Debug("host info unavailable", "error", err)
	}
	if info != nil {
		pl.Release = info.KernelVersion
		pl.Hostname = info.Hostname
		pl.OS = info.OS
		pl.Distribution = info.Platform
		pl.PlatformVersion = info.PlatformVersion
		pl.Virtualization = virtualization(info.VirtualizationSystem, info.VirtualizationRole)
	}

	if pl.Release == "" {
		if v, err := host.KernelVersionWithContext(ctx); err == nil {
			pl.Release = v
		} else {
			p.logger.Debug("kernel version unavailable", "error", err)
		}
	}
	if pl.Hostname == "" {
		if name, err := os.Hostname(); err == nil {
			pl.Hostname = name
		}
	}
}

func virtualization(system, role string) string {
	switch {
	case system == "":
		return ""
	case role == "":
		return system
	default:
		return system + " (" + role + ")"
	}
}
