package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/config"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/logging"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/probe"
)

var (
	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

// app carries the state shared by one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string

	skipIO  bool
	skipGPU bool
	paths   map[string]string

	cfg    *config.Config
	logger *logging.Logger

	now          func() time.Time
	newCollector func(*slog.Logger, probe.Options) *probe.Collector
}

func newApp() *app {
	return &app{
		v:            viper.New(),
		now:          time.Now,
		newCollector: probe.NewCollector,
	}
}

// Execute runs the root command. Interrupts cancel outstanding probes.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// SetVersion injects build information.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// GetVersion returns the application version string.
func GetVersion() string {
	return appVersion
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hostprobe",
		Short: "Snapshot host characteristics for benchmark profiling",
		Long: `hostprobe records the CPU, memory, filesystem, GPU and disk throughput
characteristics of the current host. It prints a report and saves it as
system_info_YYYYMMDD_HHMMSS.json so benchmark results can be explained later.

Running 'hostprobe' without arguments runs every probe and writes the
report to the working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runCollect,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "",
		"config file (default: ./.hostprobe.yaml or ~/.config/hostprobe/config.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "auto", "log format (auto, text, json)")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "print only the saved report path")

	f := rootCmd.Flags()
	f.StringP("output-dir", "o", ".", "directory for the JSON report")
	f.String("io-size", "100MiB", "size of the I/O throughput test file")
	f.String("io-dir", "", "directory for the I/O test (default: working directory)")
	f.BoolVar(&a.skipIO, "skip-io", false, "skip the I/O throughput test")
	f.BoolVar(&a.skipGPU, "skip-gpu", false, "skip GPU detection")
	f.StringToStringVar(&a.paths, "path", nil, "extra location to inspect as name=dir (repeatable)")

	// Bind flags to viper (errors are nil when flag exists)
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("no_color", pf.Lookup("no-color"))
	_ = a.v.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = a.v.BindPFlag("output.dir", f.Lookup("output-dir"))
	_ = a.v.BindPFlag("io.size", f.Lookup("io-size"))
	_ = a.v.BindPFlag("io.dir", f.Lookup("io-dir"))

	rootCmd.AddCommand(
		newShowCmd(a),
		newVersionCmd(),
		newInitCmd(),
	)
	return rootCmd
}

// loadConfig reads and validates configuration, then applies flags that have
// no direct config key.
func (a *app) loadConfig() error {
	cfg, err := config.NewLoaderWithViper(a.v).WithConfigFile(a.cfgFile).Load()
	if err != nil {
		return err
	}

	if a.skipIO {
		cfg.IO.Enabled = false
	}
	if a.skipGPU {
		cfg.GPU.Enabled = false
	}
	if len(a.paths) > 0 {
		if cfg.Filesystem.Paths == nil {
			cfg.Filesystem.Paths = make(map[string]string, len(a.paths))
		}
		for name, dir := range a.paths {
			cfg.Filesystem.Paths[name] = dir
		}
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", "file", used)
	}
	return nil
}

// useColor reports whether styled output should be written to w.
func (a *app) useColor(w io.Writer) bool {
	if a.cfg.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return logging.IsTerminal(w)
}
