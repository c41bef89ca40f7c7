package probe

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/fsutil"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

const (
	mib         = 1024 * 1024
	ioChunkSize = 4 * mib
)

type ioProbe struct {
	logger   *slog.Logger
	dir      string
	fileName string
	size     int64

	// write is swapped in tests to simulate device errors.
	write func(w io.Writer, p []byte) (int, error)
}

func newIOProbe(logger *slog.Logger, opts IOOptions) *ioProbe {
	p := &ioProbe{
		logger:   logger,
		dir:      opts.Dir,
		fileName: opts.FileName,
		size:     opts.Size,
		write:    func(w io.Writer, b []byte) (int, error) { return w.Write(b) },
	}
	if p.fileName == "" {
		p.fileName = DefaultIOFileName
	}
	if p.size <= 0 {
		p.size = DefaultIOSize
	}
	return p
}

func (p *ioProbe) Name() string { return "io" }

func (p *ioProbe) Run(ctx context.Context, r *report.Report) {
	res := p.measure(ctx)
	r.IOPerformance = &res
}

// measure writes and reads back a temporary file. The file is removed on every
// path out of this function.
func (p *ioProbe) measure(ctx context.Context) report.IOPerformance {
	res := report.IOPerformance{
		TestSizeMB: report.Round(float64(p.size)/mib, 2),
		Dir:        p.dir,
	}

	chunk := make([]byte, min(p.size, ioChunkSize))
	if _, err := rand.Read(chunk); err != nil {
		res.Error = fmt.Sprintf("generating payload: %v", err)
		return res
	}

	dir := p.dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, p.fileName)
	defer func() {
		if err := fsutil.RemoveIfExists(path); err != nil {
			p.logger.Warn("removing io test file failed", "path", path, "error", err)
		}
	}()

	elapsed, err := p.timedWrite(ctx, path, chunk)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.WriteSpeedMBs = report.Float(throughput(p.size, elapsed))

	elapsed, err = timedRead(path, p.size)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.ReadSpeedMBs = report.Float(throughput(p.size, elapsed))

	p.logger.Debug("io probe finished", "path", path, "size", p.size,
		"write_mb_s", *res.WriteSpeedMBs, "read_mb_s", *res.ReadSpeedMBs)
	return res
}

// timedWrite writes p.size bytes by repeating chunk.
func (p *ioProbe) timedWrite(ctx context.Context, path string, chunk []byte) (time.Duration, error) {
	start := time.Now()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	for remaining := p.size; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n := min(remaining, int64(len(chunk)))
		if _, err := p.write(f, chunk[:n]); err != nil {
			return 0, fmt.Errorf("write %s: %w", path, err)
		}
		remaining -= n
	}
	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("sync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func timedRead(path string, want int64) (time.Duration, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, ioChunkSize)
	var n int64
	for {
		m, err := f.Read(buf)
		n += int64(m)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if n != want {
		return 0, fmt.Errorf("read %s: got %d bytes, want %d", path, n, want)
	}
	return time.Since(start), nil
}

// throughput returns MiB per second. Zero durations are clamped to one
// nanosecond.
func throughput(size int64, d time.Duration) float64 {
	if d <= 0 {
		d = time.Nanosecond
	}
	return float64(size) / mib / d.Seconds()
}
