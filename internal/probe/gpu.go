package probe

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jaypipes/ghw"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

type gpuProbe struct {
	logger  *slog.Logger
	timeout time.Duration
}

func (p *gpuProbe) Name() string { return "gpu" }

func (p *gpuProbe) Run(ctx context.Context, r *report.Report) {
	out, err := runCommand(ctx, p.timeout, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,memory.total,memory.used,temperature.gpu",
		"--format=csv,noheader,nounits")
	if err == nil {
		if gpus := parseNvidiaSMI(out); len(gpus) > 0 {
			r.GPU = gpus
			return
		}
	} else {
		p.logger.Debug("nvidia-smi unavailable", "error", err)
	}

	gpus, err := pciGPUs()
	if err != nil {
		p.logger.Debug("pci gpu enumeration failed", "error", err)
		return
	}
	r.GPU = gpus
}

// parseNvidiaSMI parses `nvidia-smi --format=csv,noheader,nounits` output for the
// name, utilization, memory total, memory used and temperature columns.
// Unparseable values such as "[N/A]" are left out.
func parseNvidiaSMI(out string) []report.GPU {
	var gpus []report.GPU
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			continue
		}
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		gpus = append(gpus, report.GPU{
			Name:        name,
			UtilPercent: parseFloatPtr(fields[1]),
			MemTotalMB:  parseFloatPtr(fields[2]),
			MemUsedMB:   parseFloatPtr(fields[3]),
			TempC:       parseFloatPtr(fields[4]),
		})
	}
	return gpus
}

func parseFloatPtr(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return report.Float(v)
}

func pciGPUs() ([]report.GPU, error) {
	info, err := ghw.GPU()
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}

	gpus := make([]report.GPU, 0, len(info.GraphicsCards))
	for _, card := range info.GraphicsCards {
		name := ""
		if dev := card.DeviceInfo; dev != nil {
			var parts []string
			if dev.Vendor != nil {
				parts = append(parts, dev.Vendor.Name)
			}
			if dev.Product != nil {
				parts = append(parts, dev.Product.Name)
			}
			name = strings.TrimSpace(strings.Join(parts, " "))
		}
		if name == "" {
			name = fmt.Sprintf("GPU %d", card.Index)
		}
		gpus = append(gpus, report.GPU{Name: name})
	}
	return gpus, nil
}
