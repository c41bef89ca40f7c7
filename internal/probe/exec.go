package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// runCommand runs an external tool with a deadline and returns its trimmed stdout.
// A missing binary, non-zero exit or timeout is reported as an error.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}
