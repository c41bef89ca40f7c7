package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	bannerWidth = 60
	bannerTitle = "System Information for Benchmark Profiling"
)

var (
	colorTitle = lipgloss.Color("#7C3AED")
	colorKey   = lipgloss.Color("#06B6D4")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	keyStyle     = lipgloss.NewStyle().Foreground(colorKey)
)

// RenderOptions controls text rendering.
type RenderOptions struct {
	Color bool
}

type renderer struct {
	w    io.Writer
	opts RenderOptions
	err  error
}

func (p *renderer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *renderer) style(s lipgloss.Style, text string) string {
	if !p.opts.Color {
		return text
	}
	return s.Render(text)
}

// RenderText writes the banner and every section of r in human-readable form.
func RenderText(w io.Writer, r *Report, opts RenderOptions) error {
	p := &renderer{w: w, opts: opts}
	rule := strings.Repeat("=", bannerWidth)

	p.printf("%s\n%s\n%s\n", rule, p.style(titleStyle, bannerTitle), rule)
	p.printf("Timestamp: %s\n", r.Timestamp)
	p.printf("Platform: %s %s\n", r.Platform.System, r.Platform.Release)
	p.printf("Go: %s\n", r.Platform.Go)
	if r.Platform.Hostname != "" {
		p.printf("Host: %s\n", r.Platform.Hostname)
	}
	if r.RunID != "" {
		p.printf("Run ID: %s\n", r.RunID)
	}
	p.printf("\n")

	for _, s := range r.Sections() {
		p.printf("%s\n", p.style(sectionStyle, s.Title+":"))
		p.fields("  ", s.Fields)
		for _, g := range s.Groups {
			p.printf("  %s:\n", g.Name)
			p.fields("    ", g.Fields)
		}
		p.printf("\n")
	}
	return p.err
}

// RenderFooter writes the closing lines naming the saved artifact.
func RenderFooter(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "Results saved to: %s\n%s\n", path, strings.Repeat("=", bannerWidth))
	return err
}

func (p *renderer) fields(indent string, fields []Field) {
	for _, f := range fields {
		p.printf("%s%s: %v\n", indent, p.style(keyStyle, f.Key), f.Value)
	}
}
