//go:build !darwin

package probe

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

var (
	cpuInfoPath = "/proc/cpuinfo"
	memInfoPath = "/proc/meminfo"
)

// platformCPU fills the model from /proc/cpuinfo when the portable lookup
// came back empty.
func platformCPU(c *report.CPU, logger *slog.Logger) {
	if c.Model != "" || runtime.GOOS != "linux" {
		return
	}
	f, err := os.Open(cpuInfoPath)
	if err != nil {
		logger.Debug("reading cpuinfo failed", "error", err)
		return
	}
	defer f.Close()
	c.Model = parseCPUInfoModel(f)
}

func fallbackMemTotal(logger *slog.Logger) (uint64, bool) {
	if runtime.GOOS != "linux" {
		return 0, false
	}
	f, err := os.Open(memInfoPath)
	if err != nil {
		logger.Debug("reading meminfo failed", "error", err)
		return 0, false
	}
	defer f.Close()
	return parseMemTotal(f)
}
