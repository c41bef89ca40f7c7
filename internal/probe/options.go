package probe

import (
	"os"
	"runtime"
	"time"
)

// DefaultIOSize is the size of the I/O throughput test file.
const DefaultIOSize int64 = 100 * 1024 * 1024

// DefaultIOFileName is the name of the I/O throughput test file.
const DefaultIOFileName = "io_test_tmp.bin"

// NamedPath is a filesystem location inspected by the filesystem probe.
type NamedPath struct {
	Name string
	Path string
}

// IOOptions configures the I/O throughput probe.
type IOOptions struct {
	Enabled  bool
	Dir      string
	FileName string
	Size     int64
}

// GPUOptions configures the GPU probe.
type GPUOptions struct {
	Enabled bool
	Timeout time.Duration
}

// Options selects and configures probes.
type Options struct {
	Paths []NamedPath
	IO    IOOptions
	GPU   GPUOptions
}

// DefaultOptions returns options that run every probe with stock settings.
func DefaultOptions() Options {
	return Options{
		Paths: DefaultPaths(),
		IO: IOOptions{
			Enabled:  true,
			FileName: DefaultIOFileName,
			Size:     DefaultIOSize,
		},
		GPU: GPUOptions{
			Enabled: true,
			Timeout: 2 * time.Second,
		},
	}
}

// DefaultPaths returns the working directory, the home directory and the
// temporary directory. Entries whose location cannot be determined are omitted.
func DefaultPaths() []NamedPath {
	var paths []NamedPath
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, NamedPath{Name: "current_dir", Path: cwd})
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, NamedPath{Name: "home", Path: home})
	}
	tmp := "/tmp"
	if runtime.GOOS == "windows" {
		tmp = os.TempDir()
	}
	paths = append(paths, NamedPath{Name: "tmp", Path: tmp})
	return paths
}
