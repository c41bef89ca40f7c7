//go:build darwin

package probe

import (
	"log/slog"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

// platformCPU fills the brand string and, on Apple Silicon, the split between
// performance and efficiency cores.
func platformCPU(c *report.CPU, logger *slog.Logger) {
	if brand, err := unix.Sysctl("machdep.cpu.brand_string"); err == nil {
		if brand = strings.TrimSpace(brand); brand != "" {
			c.Model = brand
		}
	} else {
		logger.Debug("sysctl machdep.cpu.brand_string failed", "error", err)
	}

	perf, perfErr := unix.SysctlUint32("hw.perflevel0.physicalcpu")
	eff, effErr := unix.SysctlUint32("hw.perflevel1.physicalcpu")
	if perfErr != nil || effErr != nil {
		logger.Debug("core performance levels unavailable", "perf_error", perfErr, "eff_error", effErr)
		return
	}
	c.PerformanceCores = int(perf)
	c.EfficiencyCores = int(eff)
}

func fallbackMemTotal(logger *slog.Logger) (uint64, bool) {
	size, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		logger.Debug("sysctl hw.memsize failed", "error", err)
		return 0, false
	}
	return size, size > 0
}
