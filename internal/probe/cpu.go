package probe

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

type cpuProbe struct {
	logger *slog.Logger
}

func (p *cpuProbe) Name() string { return "cpu" }

func (p *cpuProbe) Run(ctx context.Context, r *report.Report) {
	c := &r.CPU
	c.Processor = "Unknown"

	if arch, err := host.KernelArch(); err == nil && arch != "" {
		c.Architecture = arch
	} else {
		c.Architecture = runtime.GOARCH
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		c.LogicalCPUs = n
	} else {
		c.LogicalCPUs = runtime.NumCPU()
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil && n > 0 {
		c.PhysicalCores = n
	} else if err != nil {
		p.logger.Debug("physical core count unavailable", "error", err)
	}

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		p.logger.Debug("cpu info unavailable", "error", err)
	}
	if len(infos) > 0 {
		if v := strings.TrimSpace(infos[0].VendorID); v != "" {
			c.Processor = v
		}
		c.Model = strings.TrimSpace(infos[0].ModelName)
		if infos[0].Mhz > 0 {
			c.MHz = report.Round(infos[0].Mhz, 2)
		}
	}

	platformCPU(c, p.logger)

	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		p.logger.Debug("load average unavailable", "error", err)
		return
	}
	c.LoadAvg1 = report.Float(avg.Load1)
	c.LoadAvg5 = report.Float(avg.Load5)
	c.LoadAvg15 = report.Float(avg.Load15)
}

// parseCPUInfoModel returns the processor model from /proc/cpuinfo content.
// "model name" is preferred; ARM boards only report "Hardware" or "Model".
func parseCPUInfoModel(r io.Reader) string {
	var fallback string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "model name":
			return value
		case "Hardware", "Model":
			if fallback == "" {
				fallback = value
			}
		}
	}
	return fallback
}
