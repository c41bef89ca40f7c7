package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// Config holds all application configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Output     OutputConfig     `mapstructure:"output"`
	IO         IOConfig         `mapstructure:"io"`
	GPU        GPUConfig        `mapstructure:"gpu"`
	Filesystem FilesystemConfig `mapstructure:"filesystem"`
	NoColor    bool             `mapstructure:"no_color"`
	Quiet      bool             `mapstructure:"quiet"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig configures where the JSON artifact is written.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// IOConfig configures the throughput test.
type IOConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Size     string `mapstructure:"size"`
	Dir      string `mapstructure:"dir"`
	FileName string `mapstructure:"file_name"`
}

// GPUConfig configures GPU detection.
type GPUConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Timeout string `mapstructure:"timeout"`
}

// FilesystemConfig lists extra paths to inspect, keyed by report name.
type FilesystemConfig struct {
	Paths map[string]string `mapstructure:"paths"`
}

// SizeBytes parses the human-readable test size ("100MiB", "512m", "1g").
func (c IOConfig) SizeBytes() (int64, error) {
	n, err := units.RAMInBytes(strings.TrimSpace(c.Size))
	if err != nil {
		return 0, fmt.Errorf("parsing io.size %q: %w", c.Size, err)
	}
	return n, nil
}

// TimeoutDuration parses the GPU command timeout.
func (c GPUConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parsing gpu.timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// PathNames returns the configured extra path names in sorted order.
func (c FilesystemConfig) PathNames() []string {
	names := make([]string, 0, len(c.Paths))
	for name := range c.Paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
