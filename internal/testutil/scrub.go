// Package testutil holds helpers for comparing rendered output in tests.
package testutil

import (
	"regexp"
	"strings"
)

var (
	timestampPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[^\s]*`),
		regexp.MustCompile(`\d{8}_\d{6}`),
	}
	uuidPattern  = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	ansiPattern  = regexp.MustCompile("\x1b\\[[0-9;]*m")
	floatPattern = regexp.MustCompile(`: \d+(\.\d+)?$`)
)

// Normalize normalizes line endings and strips trailing whitespace and newlines.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// ScrubTimestamps replaces RFC 3339 and artifact-name timestamps.
func ScrubTimestamps(s string) string {
	for _, re := range timestampPatterns {
		s = re.ReplaceAllString(s, "[TIMESTAMP]")
	}
	return s
}

// ScrubUUIDs replaces UUIDs.
func ScrubUUIDs(s string) string {
	return uuidPattern.ReplaceAllString(s, "[UUID]")
}

// ScrubPaths replaces basePath with a placeholder.
func ScrubPaths(s, basePath string) string {
	if basePath == "" {
		return s
	}
	return strings.ReplaceAll(s, basePath, "[WORKDIR]")
}

// StripANSI removes terminal color sequences.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// ScrubNumbers replaces trailing numeric values of "key: value" lines, for
// output whose measurements differ between runs.
func ScrubNumbers(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = floatPattern.ReplaceAllString(line, ": [N]")
	}
	return strings.Join(lines, "\n")
}

// ScrubAll applies every scrubber and normalizes the result.
func ScrubAll(s, basePath string) string {
	s = StripANSI(s)
	s = ScrubTimestamps(s)
	s = ScrubUUIDs(s)
	s = ScrubPaths(s, basePath)
	return Normalize(s)
}
