package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the prefix of environment overrides (HOSTPROBE_IO_SIZE, ...).
const DefaultEnvPrefix = "HOSTPROBE"

// ProjectConfigFile is the config file looked up in the working directory.
const ProjectConfigFile = ".hostprobe.yaml"

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

// NewLoaderWithViper creates a loader using an existing viper instance.
// This allows integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: DefaultEnvPrefix,
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (HOSTPROBE_*)
// 3. Config file (--config, ./.hostprobe.yaml, or ~/.config/hostprobe/config.yaml)
// 4. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	path := l.configFile
	if path == "" {
		path = discoverConfigFile()
	}
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// discoverConfigFile returns the first existing default config location.
func discoverConfigFile() string {
	candidates := []string{ProjectConfigFile}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "hostprobe", "config.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "warn")
	l.v.SetDefault("log.format", "auto")

	l.v.SetDefault("output.dir", ".")
	l.v.SetDefault("output.prefix", "system_info")

	l.v.SetDefault("io.enabled", true)
	l.v.SetDefault("io.size", "100MiB")
	l.v.SetDefault("io.dir", "")
	l.v.SetDefault("io.file_name", "io_test_tmp.bin")

	l.v.SetDefault("gpu.enabled", true)
	l.v.SetDefault("gpu.timeout", "2s")

	l.v.SetDefault("filesystem.paths", map[string]string{})

	l.v.SetDefault("no_color", false)
	l.v.SetDefault("quiet", false)
}

// ConfigFile returns the config file path if one was used.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}
