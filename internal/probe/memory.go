package probe

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

const gib = 1024 * 1024 * 1024

type memoryProbe struct {
	logger *slog.Logger

	virtual  func(context.Context) (*mem.VirtualMemoryStat, error)
	swap     func(context.Context) (*mem.SwapMemoryStat, error)
	fallback func(*slog.Logger) (uint64, bool)
}

func newMemoryProbe(logger *slog.Logger) *memoryProbe {
	return &memoryProbe{
		logger:   logger,
		virtual:  mem.VirtualMemoryWithContext,
		swap:     mem.SwapMemoryWithContext,
		fallback: fallbackMemTotal,
	}
}

func (p *memoryProbe) Name() string { return "memory" }

func (p *memoryProbe) Run(ctx context.Context, r *report.Report) {
	m := &r.Memory

	vm, err := p.virtual(ctx)
	if err == nil && vm != nil && vm.Total > 0 {
		m.TotalGB = report.Float(float64(vm.Total) / gib)
		m.AvailableGB = report.Float(float64(vm.Available) / gib)
		m.UsedPercent = report.Float(vm.UsedPercent)
	} else {
		p.logger.Debug("virtual memory unavailable", "error", err)
		if total, ok := p.fallback(p.logger); ok {
			m.TotalGB = report.Float(float64(total) / gib)
		}
	}

	swap, err := p.swap(ctx)
	if err != nil {
		p.logger.Debug("swap memory unavailable", "error", err)
		return
	}
	if swap != nil && swap.Total > 0 {
		m.SwapTotalGB = report.Float(float64(swap.Total) / gib)
		m.SwapUsedPercent = report.Float(swap.UsedPercent)
	}
}

// parseMemTotal returns MemTotal in bytes from /proc/meminfo content.
func parseMemTotal(r io.Reader) (uint64, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb * 1024, true
	}
	return 0, false
}
