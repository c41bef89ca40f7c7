package config

import (
	"fmt"
	"os"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/fsutil"
)

// DefaultConfigYAML is written by `hostprobe init`. Every key matches the
// built-in defaults.
const DefaultConfigYAML = `# hostprobe configuration
#
# Environment variables override these values, e.g. HOSTPROBE_IO_SIZE=1GiB.

log:
  level: warn     # debug shows every probe that was skipped
  format: auto    # auto, text, json

output:
  dir: .
  prefix: system_info

io:
  enabled: true
  size: 100MiB
  dir: ""         # empty means the working directory
  file_name: io_test_tmp.bin

gpu:
  enabled: true
  timeout: 2s

filesystem:
  # Extra locations to inspect in addition to current_dir, home and tmp.
  paths: {}
  #   scratch: /scratch
`

// WriteDefault writes DefaultConfigYAML to path. An existing file is only
// replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration already exists at %s, use --force to overwrite", path)
	}
	if err := fsutil.WriteFileAtomic(path, []byte(DefaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
