package report

import (
	"maps"
	"math"
	"slices"
	"time"
)

// Report is the snapshot written at the end of a run.
type Report struct {
	RunID         string                    `json:"run_id" yaml:"run_id"`
	Timestamp     string                    `json:"timestamp" yaml:"timestamp"`
	Platform      Platform                  `json:"platform" yaml:"platform"`
	CPU           CPU                       `json:"cpu" yaml:"cpu"`
	Memory        Memory                    `json:"memory" yaml:"memory"`
	Filesystem    map[string]FilesystemPath `json:"filesystem" yaml:"filesystem"`
	IOPerformance *IOPerformance            `json:"io_performance,omitempty" yaml:"io_performance,omitempty"`
	GPU           []GPU                     `json:"gpu,omitempty" yaml:"gpu,omitempty"`
}

// Platform identifies the host operating system.
type Platform struct {
	System          string `json:"system" yaml:"system"`
	Release         string `json:"release" yaml:"release"`
	Go              string `json:"go" yaml:"go"`
	Hostname        string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	OS              string `json:"os,omitempty" yaml:"os,omitempty"`
	Distribution    string `json:"platform,omitempty" yaml:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty" yaml:"platform_version,omitempty"`
	Virtualization  string `json:"virtualization,omitempty" yaml:"virtualization,omitempty"`
}

// CPU describes the processor.
type CPU struct {
	Processor        string   `json:"processor,omitempty" yaml:"processor,omitempty"`
	Architecture     string   `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	LogicalCPUs      int      `json:"logical_cpus,omitempty" yaml:"logical_cpus,omitempty"`
	PhysicalCores    int      `json:"physical_cores,omitempty" yaml:"physical_cores,omitempty"`
	Model            string   `json:"model,omitempty" yaml:"model,omitempty"`
	MHz              float64  `json:"mhz,omitempty" yaml:"mhz,omitempty"`
	PerformanceCores int      `json:"performance_cores,omitempty" yaml:"performance_cores,omitempty"`
	EfficiencyCores  int      `json:"efficiency_cores,omitempty" yaml:"efficiency_cores,omitempty"`
	LoadAvg1         *float64 `json:"load_avg_1,omitempty" yaml:"load_avg_1,omitempty"`
	LoadAvg5         *float64 `json:"load_avg_5,omitempty" yaml:"load_avg_5,omitempty"`
	LoadAvg15        *float64 `json:"load_avg_15,omitempty" yaml:"load_avg_15,omitempty"`
}

// Memory holds system memory figures in GiB.
type Memory struct {
	TotalGB         *float64 `json:"total_gb,omitempty" yaml:"total_gb,omitempty"`
	AvailableGB     *float64 `json:"available_gb,omitempty" yaml:"available_gb,omitempty"`
	UsedPercent     *float64 `json:"used_percent,omitempty" yaml:"used_percent,omitempty"`
	SwapTotalGB     *float64 `json:"swap_total_gb,omitempty" yaml:"swap_total_gb,omitempty"`
	SwapUsedPercent *float64 `json:"swap_used_percent,omitempty" yaml:"swap_used_percent,omitempty"`
}

// FilesystemPath describes the filesystem backing one inspected path.
type FilesystemPath struct {
	Path        string   `json:"path" yaml:"path"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	MountType   string   `json:"mount_type,omitempty" yaml:"mount_type,omitempty"`
	MountPoint  string   `json:"mount_point,omitempty" yaml:"mount_point,omitempty"`
	Device      string   `json:"device,omitempty" yaml:"device,omitempty"`
	DriveType   string   `json:"drive_type,omitempty" yaml:"drive_type,omitempty"`
	TotalGB     *float64 `json:"total_gb,omitempty" yaml:"total_gb,omitempty"`
	FreeGB      *float64 `json:"free_gb,omitempty" yaml:"free_gb,omitempty"`
	UsedPercent *float64 `json:"used_percent,omitempty" yaml:"used_percent,omitempty"`
}

// IOPerformance holds sequential write/read throughput measured in the output directory.
type IOPerformance struct {
	WriteSpeedMBs *float64 `json:"write_speed_mb_s,omitempty" yaml:"write_speed_mb_s,omitempty"`
	ReadSpeedMBs  *float64 `json:"read_speed_mb_s,omitempty" yaml:"read_speed_mb_s,omitempty"`
	TestSizeMB    float64  `json:"test_size_mb,omitempty" yaml:"test_size_mb,omitempty"`
	Dir           string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Error         string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// GPU holds best-effort accelerator information.
type GPU struct {
	Name        string   `json:"name" yaml:"name"`
	UtilPercent *float64 `json:"util_percent,omitempty" yaml:"util_percent,omitempty"`
	MemTotalMB  *float64 `json:"mem_total_mb,omitempty" yaml:"mem_total_mb,omitempty"`
	MemUsedMB   *float64 `json:"mem_used_mb,omitempty" yaml:"mem_used_mb,omitempty"`
	TempC       *float64 `json:"temp_c,omitempty" yaml:"temp_c,omitempty"`
}

// New creates an empty report stamped with now.
func New(now time.Time, runID string) *Report {
	return &Report{
		RunID:      runID,
		Timestamp:  now.Format(time.RFC3339Nano),
		Filesystem: make(map[string]FilesystemPath),
	}
}

// Clone returns a copy of r whose map, slice and I/O section can be changed
// without affecting r. Numeric pointers are shared; setters replace them.
func (r *Report) Clone() *Report {
	c := *r
	c.Filesystem = maps.Clone(r.Filesystem)
	if c.Filesystem == nil {
		c.Filesystem = make(map[string]FilesystemPath)
	}
	c.GPU = slices.Clone(r.GPU)
	if r.IOPerformance != nil {
		perf := *r.IOPerformance
		c.IOPerformance = &perf
	}
	return &c
}

// Float returns a pointer to v rounded to two decimals.
func Float(v float64) *float64 {
	r := Round(v, 2)
	return &r
}

// Percent returns a pointer to v rounded to one decimal.
func Percent(v float64) *float64 {
	r := Round(v, 1)
	return &r
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
